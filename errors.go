package texpack

import "errors"

// Errors reported by packing. Missing channel data is never an error; every
// unresolved channel degrades to its default value. These sentinels cover
// the two failure classes that abort one material: an unusable graph and an
// unwritable output.
var (
	// ErrNoTerminalNode is returned when a material graph has no terminal
	// shading node to resolve channels against. The material has no
	// evaluable shading tree; other materials in a batch are unaffected.
	ErrNoTerminalNode = errors.New("texpack: material has no terminal shading node")

	// ErrNilGraph is returned when a pack call receives no graph at all.
	ErrNilGraph = errors.New("texpack: nil material graph")
)
