// Package geoerr defines the sentinel error kinds of spec.md §7, so the
// pipeline driver can tell a locally-recoverable geometry failure apart from a
// fatal configuration or input failure without parsing error strings.
package geoerr

import "errors"

// ErrDegenerate marks a geometry-degenerate failure (empty polygon after an
// offset, a zero-area part, a stitch loop that never closed). These are
// handled locally by the component that produced them; the pipeline driver
// never needs to see this sentinel itself, but components use it to decide
// whether to drop/patch a result instead of propagating an error.
var ErrDegenerate = errors.New("geometry: degenerate result")

// ErrOverflow marks an arithmetic-precision failure: an intermediate magnitude
// could not be safely widened for the requested operation.
var ErrOverflow = errors.New("geometry: magnitude overflow")

// ErrConfigRange marks an out-of-range setting value (e.g. an unrecognized
// enum). This is a fail-fast condition surfaced directly to the caller.
var ErrConfigRange = errors.New("configuration: value out of range")

// ErrUnreadableMesh marks an unreadable or empty input mesh. Fatal; returned
// to the caller without attempting to continue slicing.
var ErrUnreadableMesh = errors.New("input: unreadable or empty mesh")
