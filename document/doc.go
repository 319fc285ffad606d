// Package document is the boundary between the conversion pipeline and the
// CAD document it reads.
//
// The pipeline only needs a handful of capabilities from the host: look up
// an object by handle, enumerate objects with visibility filters, and read
// layer colors and font metadata. [Document] names exactly those. [Host]
// models the host's mutable "current document" pointer, and [WithContext]
// redirects it for the duration of a call.
//
// [Snapshot] is an in-memory Document decoded from a YAML or JSON file:
//
//	layers:
//	  - name: Default
//	    color: "#1e1e1e"
//	fonts:
//	  - family: Inter
//	    bold: true
//	  - file: fonts/Roboto-Italic.ttf
//	objects:
//	  - id: 6f1c2a34-5b0e-4d8e-9a51-0c7e2f4b9d10
//	    curve:
//	      polyline: {points: [[0, 0], [10, 0], [10, 5]], closed: false}
//	  - text: {text: "Hello", origin: [5, 5], font: 0, height: 2.5}
//	    color: "#ff0000"
//	  - dot: {text: "A", point: [1, 2]}
//	    hidden: true
//	inputs:
//	  frames:
//	    - rect: {min: [0, 0], max: [100, 50]}
//	  drawing:
//	    - 6f1c2a34-5b0e-4d8e-9a51-0c7e2f4b9d10
//	  stroke_weight: 0.5
//
// Curves are given as line, polyline, arc, circle, rect or path (a list of
// move/line/quad/cubic/close segments). Arc angles are in degrees.
package document
