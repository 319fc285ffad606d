// Package scene holds the output records of a conversion run and their
// JSON form.
//
// A [Scene] marshals to a single JSON array: every frame, then every
// curve, then every text. Consumers rely on that order to index frames
// before placing their children.
//
// Coordinates and sizes are [Number] values, rounded to 3 decimals when
// written and never before.
package scene
