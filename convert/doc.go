// Package convert runs the geometry to scene pipeline.
//
// A run takes the frames and drawing curves of a [document.Inputs], plus
// every annotation text and text dot in the host's active document, and
// produces a [scene.Scene]:
//
//	snap, err := document.Load("drawing.yaml")
//	if err != nil {
//	    return err
//	}
//	s, report := convert.Convert(document.NewHost(snap), snap.Inputs(), convert.DefaultConfig())
//
// The pipeline degrades instead of failing. References that do not
// resolve to geometry are dropped, missing style metadata falls back to
// the defaults in [Config], and a failure to read document texts leaves
// frames and curves intact. [Report] counts what was dropped.
package convert
