package texpack

// NodeID identifies a node inside a host-owned material graph. Hosts choose
// the identifier scheme; the engine only requires that identifiers stay
// stable for the duration of one pack call. The empty string is never a
// valid node.
type NodeID string

// NodeKind classifies a node for traversal. The engine queries the kind
// once per visited node and never inspects node internals beyond it.
type NodeKind uint8

const (
	// KindOther is any node the search cannot pass through. A branch
	// reaching one simply ends there.
	KindOther NodeKind = iota

	// KindImage is a node that supplies image pixels.
	KindImage

	// KindPassThrough forwards or adjusts upstream data without
	// originating it: reroutes, color adjustments, mix and blend nodes.
	// The search continues through all of its linked inputs.
	KindPassThrough

	// KindTerminal is the output shading node backward traversal starts
	// from. Encountered mid-walk it ends the branch like KindOther.
	KindTerminal
)

// String returns a string representation of the node kind.
func (k NodeKind) String() string {
	switch k {
	case KindImage:
		return "Image"
	case KindPassThrough:
		return "PassThrough"
	case KindTerminal:
		return "Terminal"
	default:
		return "Other"
	}
}

// PixelSource is read-only texel access into a host-owned image at its
// native resolution. Implementations must accept 0 <= x < Width() and
// 0 <= y < Height(); the engine never samples outside those bounds.
type PixelSource interface {
	At(x, y int) RGBA
	Width() int
	Height() int
}

// Graph is a borrowed, read-only view of one material's node graph. The
// engine never mutates the graph and never keeps a reference to it beyond
// the pack call it was passed to, so hosts are free to edit their graphs
// between calls.
//
// Determinism requirement: Slots must return slot names in a stable order.
// That order decides which of two image sources at the same search depth
// wins, so it must not vary between calls on an unchanged graph.
type Graph interface {
	// Terminal returns the terminal shading node, if the material has one.
	Terminal() (NodeID, bool)

	// Kind classifies a node.
	Kind(n NodeID) NodeKind

	// Slots returns the input slot names of a node in stable order.
	Slots(n NodeID) []string

	// Link returns the upstream node and output socket feeding a slot.
	Link(n NodeID, slot string) (from NodeID, socket string, ok bool)

	// Value returns the static value of an unlinked slot. Scalar slots
	// broadcast the value to all four components.
	Value(n NodeID, slot string) (RGBA, bool)

	// Image returns pixel access for a KindImage node.
	Image(n NodeID) (PixelSource, bool)
}

// ImageLister is an optional Graph capability. When a graph implements it,
// profiles that pack ambient occlusion fall back to scanning image nodes by
// name when the slot search finds nothing, matching the common convention
// of occlusion maps that are never wired into the shading node.
type ImageLister interface {
	// ImageNodes returns all KindImage nodes in stable order.
	ImageNodes() []NodeID

	// NodeName returns the display name of a node, typically the image
	// file or datablock name.
	NodeName(n NodeID) string
}
