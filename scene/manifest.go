package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/horizonkit/texpack"
)

// Manifest file structure. One file declares any number of materials, each
// with its images, intermediate nodes, links and static slot values:
//
//	material "RockSurface_VXM" {
//	  image "base" {
//	    path = "rock_basecolor.png"
//	  }
//	  link {
//	    from = "base"
//	    to   = "output"
//	    slot = "Base Color"
//	  }
//	  value {
//	    node  = "output"
//	    slot  = "Metallic"
//	    value = 1
//	  }
//	}
type manifestFile struct {
	Materials []*materialBlock `hcl:"material,block"`
}

type materialBlock struct {
	Name    string         `hcl:"name,label"`
	Outputs []*outputBlock `hcl:"output,block"`
	Images  []*imageBlock  `hcl:"image,block"`
	Nodes   []*nodeBlock   `hcl:"node,block"`
	Links   []*linkBlock   `hcl:"link,block"`
	Values  []*valueBlock  `hcl:"value,block"`
}

type outputBlock struct {
	ID string `hcl:"id,label"`
}

type imageBlock struct {
	ID   string `hcl:"id,label"`
	Path string `hcl:"path"`
	Name string `hcl:"name,optional"`
}

type nodeBlock struct {
	ID   string `hcl:"id,label"`
	Kind string `hcl:"kind"`
}

type linkBlock struct {
	From   string `hcl:"from"`
	To     string `hcl:"to"`
	Slot   string `hcl:"slot"`
	Socket string `hcl:"socket,optional"`
}

type valueBlock struct {
	Node  string    `hcl:"node"`
	Slot  string    `hcl:"slot"`
	Value cty.Value `hcl:"value"`
}

// LoadManifest parses an HCL material manifest and builds its materials.
// Relative image paths resolve against the manifest's directory; decoded
// images come from the shared package store.
func LoadManifest(path string) ([]*Material, error) {
	return defaultStore.LoadManifest(path)
}

// LoadManifest parses an HCL material manifest, decoding images through
// this store.
func (s *Store) LoadManifest(path string) ([]*Material, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("scene: parse manifest %s: %w", path, diags)
	}

	var mf manifestFile
	if diags := gohcl.DecodeBody(file.Body, nil, &mf); diags.HasErrors() {
		return nil, fmt.Errorf("scene: decode manifest %s: %w", path, diags)
	}

	dir := filepath.Dir(path)
	materials := make([]*Material, 0, len(mf.Materials))
	for _, mb := range mf.Materials {
		m, err := s.buildMaterial(mb, dir)
		if err != nil {
			return nil, fmt.Errorf("scene: manifest %s: %w", path, err)
		}
		materials = append(materials, m)
	}
	texpack.Logger().Debug("scene: manifest loaded",
		"path", path, "materials", len(materials))
	return materials, nil
}

// buildMaterial turns one decoded material block into a graph.
func (s *Store) buildMaterial(mb *materialBlock, dir string) (*Material, error) {
	m := NewMaterial(mb.Name)

	for _, ob := range mb.Outputs {
		m.AddOutput(ob.ID)
	}

	for _, ib := range mb.Images {
		imgPath := ib.Path
		if !filepath.IsAbs(imgPath) {
			imgPath = filepath.Join(dir, imgPath)
		}
		img, err := s.Load(imgPath)
		if err != nil {
			return nil, fmt.Errorf("material %q: image %q: %w", mb.Name, ib.ID, err)
		}
		name := ib.Name
		if name == "" {
			name = filepath.Base(ib.Path)
		}
		m.AddImageNamed(ib.ID, name, img)
	}

	for _, nb := range mb.Nodes {
		kind, err := parseKind(nb.Kind)
		if err != nil {
			return nil, fmt.Errorf("material %q: node %q: %w", mb.Name, nb.ID, err)
		}
		m.AddNode(nb.ID, kind)
	}

	for _, lb := range mb.Links {
		m.ConnectSocket(lb.From, lb.Socket, lb.To, lb.Slot)
	}

	for _, vb := range mb.Values {
		v, err := valueToRGBA(vb.Value)
		if err != nil {
			return nil, fmt.Errorf("material %q: value for %q.%q: %w",
				mb.Name, vb.Node, vb.Slot, err)
		}
		m.SetValue(vb.Node, vb.Slot, v)
	}

	return m, nil
}

// parseKind maps a manifest kind string to a node kind. Several spellings
// of pass-through are accepted to keep manifests close to host terminology.
func parseKind(kind string) (texpack.NodeKind, error) {
	switch strings.ToLower(kind) {
	case "passthrough", "reroute", "mix", "adjust":
		return texpack.KindPassThrough, nil
	case "other":
		return texpack.KindOther, nil
	default:
		return texpack.KindOther, fmt.Errorf("unknown node kind %q", kind)
	}
}

// valueToRGBA converts a manifest slot value: a bare number broadcasts to
// all four components, a 3-tuple is an opaque color, a 4-tuple a full RGBA.
func valueToRGBA(v cty.Value) (texpack.RGBA, error) {
	switch {
	case v.Type() == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return texpack.RGBA{R: f, G: f, B: f, A: f}, nil

	case v.CanIterateElements():
		var parts []float64
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			if ev.Type() != cty.Number {
				return texpack.RGBA{}, fmt.Errorf("tuple element is not a number")
			}
			f, _ := ev.AsBigFloat().Float64()
			parts = append(parts, f)
		}
		switch len(parts) {
		case 3:
			return texpack.RGBA{R: parts[0], G: parts[1], B: parts[2], A: 1}, nil
		case 4:
			return texpack.RGBA{R: parts[0], G: parts[1], B: parts[2], A: parts[3]}, nil
		default:
			return texpack.RGBA{}, fmt.Errorf("tuple has %d elements, want 3 or 4", len(parts))
		}

	default:
		return texpack.RGBA{}, fmt.Errorf("value must be a number or a tuple")
	}
}
