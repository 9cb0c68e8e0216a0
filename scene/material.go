// Package scene provides an in-memory material graph implementation for
// the packing engine, with image loading and HCL manifest support.
//
// A Material is a node-graph builder implementing texpack.Graph: hosts that
// do not own a real shading graph can describe one in code or load it from
// a manifest file, then hand it straight to a Packer. Slot and node order
// is insertion order, giving the deterministic traversal the engine
// requires.
package scene

import (
	"fmt"
	"path/filepath"

	"github.com/horizonkit/texpack"
)

// TerminalID is the node id of the terminal shading node every new
// material starts with.
const TerminalID texpack.NodeID = "output"

// link records one wired input slot.
type link struct {
	from   texpack.NodeID
	socket string
}

// node is one graph node: its kind, display name, optional pixels, and the
// slots touched so far in insertion order.
type node struct {
	kind   texpack.NodeKind
	name   string
	img    texpack.PixelSource
	slots  []string
	links  map[string]link
	values map[string]texpack.RGBA
}

func newNode(kind texpack.NodeKind, name string) *node {
	return &node{
		kind:   kind,
		name:   name,
		links:  map[string]link{},
		values: map[string]texpack.RGBA{},
	}
}

// touch registers a slot the first time it is linked or given a value,
// fixing its position in the stable slot order.
func (n *node) touch(slot string) {
	if _, ok := n.links[slot]; ok {
		return
	}
	if _, ok := n.values[slot]; ok {
		return
	}
	n.slots = append(n.slots, slot)
}

// Material is an in-memory material graph. The zero value is not usable;
// create materials with NewMaterial. A Material is not safe for concurrent
// mutation, but once built it is read-only to the engine and may be packed
// concurrently with other materials.
type Material struct {
	name     string
	nodes    map[texpack.NodeID]*node
	order    []texpack.NodeID
	terminal texpack.NodeID
}

// NewMaterial creates a material with the given name and an empty terminal
// shading node under TerminalID.
func NewMaterial(name string) *Material {
	m := &Material{
		name:  name,
		nodes: map[texpack.NodeID]*node{},
	}
	m.add(TerminalID, newNode(texpack.KindTerminal, string(TerminalID)))
	m.terminal = TerminalID
	return m
}

// Name returns the material name, including any profile suffix.
func (m *Material) Name() string {
	return m.name
}

func (m *Material) add(id texpack.NodeID, n *node) {
	if _, ok := m.nodes[id]; !ok {
		m.order = append(m.order, id)
	}
	m.nodes[id] = n
}

// AddOutput replaces the terminal node with one under the given id. Used by
// hosts whose graphs carry their own terminal naming.
func (m *Material) AddOutput(id string) {
	nid := texpack.NodeID(id)
	if m.terminal != "" && m.terminal != nid {
		delete(m.nodes, m.terminal)
		for i, existing := range m.order {
			if existing == m.terminal {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
	m.add(nid, newNode(texpack.KindTerminal, id))
	m.terminal = nid
}

// AddNode adds an intermediate node of the given kind, typically
// KindPassThrough for mix and adjustment nodes.
func (m *Material) AddNode(id string, kind texpack.NodeKind) {
	m.add(texpack.NodeID(id), newNode(kind, id))
}

// AddImage adds an image node with in-memory pixels. The node id doubles as
// its display name.
func (m *Material) AddImage(id string, img texpack.PixelSource) {
	m.AddImageNamed(id, id, img)
}

// AddImageNamed adds an image node with an explicit display name. The name
// is what the occlusion-by-name fallback matches against, so it usually
// carries the source file name.
func (m *Material) AddImageNamed(id, name string, img texpack.PixelSource) {
	n := newNode(texpack.KindImage, name)
	n.img = img
	m.add(texpack.NodeID(id), n)
}

// AddImageFile loads an image file through the shared store and wires it
// directly into a slot on the terminal node. The node id is the slot name;
// the display name is the file's base name.
func (m *Material) AddImageFile(slot, path string) error {
	img, err := LoadImage(path)
	if err != nil {
		return fmt.Errorf("scene: material %q: %w", m.name, err)
	}
	m.AddImageNamed(slot, filepath.Base(path), img)
	m.Connect(slot, string(m.terminal), slot)
	return nil
}

// Connect wires node from into the given input slot of node to.
func (m *Material) Connect(from, to, slot string) {
	m.ConnectSocket(from, "", to, slot)
}

// ConnectSocket wires a specific output socket of node from into the given
// input slot of node to. Later links to the same slot replace earlier ones.
func (m *Material) ConnectSocket(from, socket, to, slot string) {
	n, ok := m.nodes[texpack.NodeID(to)]
	if !ok {
		return
	}
	n.touch(slot)
	n.links[slot] = link{from: texpack.NodeID(from), socket: socket}
}

// SetValue sets the static value of an unlinked slot.
func (m *Material) SetValue(id, slot string, v texpack.RGBA) {
	n, ok := m.nodes[texpack.NodeID(id)]
	if !ok {
		return
	}
	n.touch(slot)
	n.values[slot] = v
}

// SetScalar sets a scalar slot value, broadcast across all four components.
func (m *Material) SetScalar(id, slot string, v float64) {
	m.SetValue(id, slot, texpack.RGBA{R: v, G: v, B: v, A: v})
}

// Terminal implements texpack.Graph.
func (m *Material) Terminal() (texpack.NodeID, bool) {
	if m.terminal == "" {
		return "", false
	}
	if _, ok := m.nodes[m.terminal]; !ok {
		return "", false
	}
	return m.terminal, true
}

// Kind implements texpack.Graph.
func (m *Material) Kind(id texpack.NodeID) texpack.NodeKind {
	if n, ok := m.nodes[id]; ok {
		return n.kind
	}
	return texpack.KindOther
}

// Slots implements texpack.Graph. Slot order is insertion order.
func (m *Material) Slots(id texpack.NodeID) []string {
	if n, ok := m.nodes[id]; ok {
		return n.slots
	}
	return nil
}

// Link implements texpack.Graph.
func (m *Material) Link(id texpack.NodeID, slot string) (texpack.NodeID, string, bool) {
	n, ok := m.nodes[id]
	if !ok {
		return "", "", false
	}
	l, ok := n.links[slot]
	if !ok {
		return "", "", false
	}
	return l.from, l.socket, true
}

// Value implements texpack.Graph.
func (m *Material) Value(id texpack.NodeID, slot string) (texpack.RGBA, bool) {
	n, ok := m.nodes[id]
	if !ok {
		return texpack.RGBA{}, false
	}
	v, ok := n.values[slot]
	return v, ok
}

// Image implements texpack.Graph.
func (m *Material) Image(id texpack.NodeID) (texpack.PixelSource, bool) {
	n, ok := m.nodes[id]
	if !ok || n.img == nil {
		return nil, false
	}
	return n.img, true
}

// ImageNodes implements texpack.ImageLister, in insertion order.
func (m *Material) ImageNodes() []texpack.NodeID {
	var out []texpack.NodeID
	for _, id := range m.order {
		if m.nodes[id].kind == texpack.KindImage {
			out = append(out, id)
		}
	}
	return out
}

// NodeName implements texpack.ImageLister.
func (m *Material) NodeName(id texpack.NodeID) string {
	if n, ok := m.nodes[id]; ok {
		return n.name
	}
	return ""
}

var (
	_ texpack.Graph       = (*Material)(nil)
	_ texpack.ImageLister = (*Material)(nil)
)

// Batch converts materials into the engine's batch unit.
func Batch(materials []*Material) []texpack.Material {
	out := make([]texpack.Material, len(materials))
	for i, m := range materials {
		out[i] = texpack.Material{Name: m.name, Graph: m}
	}
	return out
}
