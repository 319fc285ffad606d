// Package scenesync converts CAD drawing geometry into a flat JSON scene
// for a web canvas design tool.
//
// # Overview
//
// A conversion run takes curves, rectangular frames and annotation text from
// a CAD document and emits one ordered list: frames first, then curves,
// then texts. Each curve and text carries the id of the frame it belongs to,
// or null.
//
// This root package holds the geometry the pipeline is built on:
//
//   - [Point], [Rect] - XY plane primitives with inclusive containment
//   - [Curve] - the canonical curve interface (domain, point-at-parameter,
//     length, bounding box, closed flag)
//   - [LineCurve], [Polyline], [Arc], [Path] - curve implementations
//   - [Sample] - length-adaptive discretization
//   - [Classifier] - first-match frame assignment
//
// The pipeline itself lives in the convert package; the document
// capability interface in document; output records in scene.
//
// # Sampling
//
// The number of segments is round(length × density), clamped to
// [MinSegments, MaxSegments]. Parameters are spaced uniformly over the
// curve domain, not by arc length, so high-curvature spans of a Bezier get
// fewer points than their length alone would suggest.
//
// # Coordinate System
//
// Document units, Y up as in the source CAD document. Z is ignored.
// Coordinates are rounded to 3 decimals only when a scene is serialized.
package scenesync
