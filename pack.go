package texpack

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Baker produces a channel image for a material outside the packing engine,
// typically by rendering the host scene. The engine treats the result as an
// ordinary image source; only AmbientOcclusion and Emission are ever baked.
type Baker interface {
	Bake(material string, ch Channel, resolution int) (PixelSource, error)
}

// Option configures a Packer during creation.
type Option func(*Packer)

// WithFilesystem sets the filesystem output files are written to. The
// default is the OS filesystem rooted at the current directory; tests use
// an in-memory filesystem.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(p *Packer) {
		p.fs = fs
	}
}

// WithOutputDir sets the directory, inside the packer's filesystem, that
// output images are written to. Created on demand.
func WithOutputDir(dir string) Option {
	return func(p *Packer) {
		p.outDir = dir
	}
}

// WithDefaultResolution sets the output resolution used when a pack call
// passes zero and no source image is available to infer one from.
func WithDefaultResolution(res int) Option {
	return func(p *Packer) {
		p.defaultRes = res
	}
}

// WithBaker installs an external bake operation, enabled for the given
// channels. With no channels listed, both ambient occlusion and emission
// are baked when missing. Channels other than those two are ignored.
func WithBaker(b Baker, channels ...Channel) Option {
	return func(p *Packer) {
		p.baker = b
		p.bakeSet = map[Channel]bool{}
		if len(channels) == 0 {
			channels = []Channel{AmbientOcclusion, Emission}
		}
		for _, ch := range channels {
			if ch == AmbientOcclusion || ch == Emission {
				p.bakeSet[ch] = true
			}
		}
	}
}

// WithAOSearch toggles the fallback that scans image nodes by name for an
// occlusion map when the slot search finds nothing. On by default.
func WithAOSearch(enabled bool) Option {
	return func(p *Packer) {
		p.aoSearch = enabled
	}
}

// WithWorkers sets the worker count used by PackAll. Zero or less selects
// one worker per CPU, leaving one free.
func WithWorkers(n int) Option {
	return func(p *Packer) {
		p.workers = n
	}
}

// Packer packs materials into channel-packed PNG files. A Packer is
// stateless across materials and safe for concurrent Pack calls.
type Packer struct {
	fs         billy.Filesystem
	outDir     string
	defaultRes int
	baker      Baker
	bakeSet    map[Channel]bool
	aoSearch   bool
	workers    int
}

// NewPacker creates a packer. Without options it writes to the current
// directory at an inferred resolution.
func NewPacker(opts ...Option) *Packer {
	p := &Packer{
		fs:         osfs.New("."),
		outDir:     ".",
		defaultRes: DefaultResolution,
		aoSearch:   true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pack packs one material and returns the paths of the files written,
// relative to the packer's filesystem. A resolution of zero or less selects
// the native width of the first image-backed channel, base color first,
// falling back to the packer's default.
//
// Pack reads the graph only for the duration of the call, writes files
// all-or-nothing for the material, and re-runs byte-identically on an
// unchanged graph.
func (p *Packer) Pack(g Graph, name string, resolution int) ([]string, error) {
	if g == nil {
		return nil, fmt.Errorf("texpack: material %q: %w", name, ErrNilGraph)
	}
	terminal, ok := g.Terminal()
	if !ok {
		return nil, fmt.Errorf("texpack: material %q: %w", name, ErrNoTerminalNode)
	}

	profile, base := Classify(name)
	log := Logger()
	if len(profile.Images) == 0 {
		log.Debug("texpack: profile packs no images",
			"material", name, "profile", profile.Name)
		return nil, nil
	}

	// Resolve every channel the profile touches, once each. Resolution
	// state lives entirely in this call.
	sources := map[Channel]ChannelSource{}
	for _, img := range profile.Images {
		for _, as := range img.Channels {
			if _, done := sources[as.Source]; done {
				continue
			}
			src := resolveChannel(g, terminal, as.Source)
			sources[as.Source] = src
			log.Debug("texpack: channel resolved",
				"material", name, "channel", as.Source,
				"found", src.Found, "extract", src.Extract, "node", src.Node)
		}
	}

	if p.aoSearch {
		p.searchAO(g, name, sources)
	}

	res := resolution
	if res <= 0 {
		res = p.inferResolution(sources)
	}

	p.bakeMissing(name, res, sources)
	p.fillAlphaFromBase(g, terminal, name, sources)

	// Compose and encode everything in memory before touching the
	// filesystem, so a write failure leaves no partial image set.
	type encoded struct {
		name string
		data []byte
	}
	var outputs []encoded
	for _, spec := range profile.Images {
		if spec.Emit == EmitIfAnyPresent && !anyPresent(sources, spec.EmitSet) {
			log.Debug("texpack: image skipped, no source present",
				"material", name, "image", spec.FilenameSuffix)
			continue
		}
		pm := composeImage(spec, sources, res)
		var buf bytes.Buffer
		if err := pm.EncodePNG(&buf); err != nil {
			return nil, fmt.Errorf("texpack: material %q: encode %s: %w",
				name, spec.FilenameSuffix, err)
		}
		outputs = append(outputs, encoded{
			name: sanitizeBase(base) + spec.FilenameSuffix + ".png",
			data: buf.Bytes(),
		})
	}

	if err := p.fs.MkdirAll(p.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("texpack: material %q: create output dir: %w", name, err)
	}

	var written []string
	for _, out := range outputs {
		path := p.fs.Join(p.outDir, out.name)
		if err := p.writeFile(path, out.data); err != nil {
			p.removeAll(written)
			return nil, fmt.Errorf("texpack: material %q: write %s: %w", name, out.name, err)
		}
		written = append(written, path)
	}

	log.Info("texpack: material packed",
		"material", name, "profile", profile.Name,
		"resolution", res, "files", written)
	return written, nil
}

// writeFile writes data to path on the packer's filesystem.
func (p *Packer) writeFile(path string, data []byte) error {
	f, err := p.fs.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// removeAll deletes already-written files after a failure, keeping the
// material's image set all-or-nothing.
func (p *Packer) removeAll(paths []string) {
	for _, path := range paths {
		if err := p.fs.Remove(path); err != nil {
			Logger().Warn("texpack: rollback remove failed",
				"path", path, "error", err)
		}
	}
}

// searchAO falls back to finding an occlusion map by image name. Occlusion
// is conventionally never wired into the shading node, so when the slot
// search yields nothing and the graph can enumerate its images, the first
// image whose name mentions ao, occlusion or ambient is used.
func (p *Packer) searchAO(g Graph, material string, sources map[Channel]ChannelSource) {
	src, tracked := sources[AmbientOcclusion]
	if !tracked || src.HasImage() {
		return
	}
	il, ok := g.(ImageLister)
	if !ok {
		return
	}
	for _, n := range il.ImageNodes() {
		lower := strings.ToLower(il.NodeName(n))
		if !strings.Contains(lower, "ao") &&
			!strings.Contains(lower, "occlusion") &&
			!strings.Contains(lower, "ambient") {
			continue
		}
		if img, ok := g.Image(n); ok {
			sources[AmbientOcclusion] = imageSource(AmbientOcclusion, n, img, ExtractR)
			Logger().Debug("texpack: occlusion found by image name",
				"material", material, "node", n)
			return
		}
	}
}

// bakeMissing invokes the external baker for enabled channels that did not
// resolve to an image. A bake failure is not fatal; the channel keeps its
// resolved value.
func (p *Packer) bakeMissing(material string, res int, sources map[Channel]ChannelSource) {
	if p.baker == nil {
		return
	}
	for ch, enabled := range p.bakeSet {
		if !enabled {
			continue
		}
		src, tracked := sources[ch]
		if !tracked || src.HasImage() {
			continue
		}
		img, err := p.baker.Bake(material, ch, res)
		if err != nil {
			Logger().Warn("texpack: bake failed",
				"material", material, "channel", ch, "error", err)
			continue
		}
		node := NodeID("bake:" + ch.String())
		sources[ch] = imageSource(ch, node, img, channelTable[ch].extract)
	}
}

// fillAlphaFromBase substitutes the base color image's alpha channel when
// the Alpha slot resolved to nothing meaningful. Artists rarely wire
// transparency explicitly; it rides along in the base color texture.
func (p *Packer) fillAlphaFromBase(g Graph, terminal NodeID, material string, sources map[Channel]ChannelSource) {
	src, tracked := sources[Alpha]
	if !tracked || src.HasImage() {
		return
	}
	if src.Found && math.Abs(src.Constant.A-1) > presenceEpsilon {
		// An explicit non-opaque constant wins over the fallback.
		return
	}
	base, ok := sources[BaseColor]
	if !ok {
		base = resolveChannel(g, terminal, BaseColor)
	}
	if !base.HasImage() {
		return
	}
	sources[Alpha] = imageSource(Alpha, base.Node, base.Image, ExtractA)
	Logger().Debug("texpack: alpha taken from base color image",
		"material", material, "node", base.Node)
}

// inferResolution picks the native width of the first image-backed channel
// in fixed priority order.
func (p *Packer) inferResolution(sources map[Channel]ChannelSource) int {
	for _, ch := range resolutionOrder {
		if src, ok := sources[ch]; ok && src.HasImage() {
			return src.Image.Width()
		}
	}
	return p.defaultRes
}

// anyPresent reports whether at least one channel of the set resolved to a
// present source.
func anyPresent(sources map[Channel]ChannelSource, set []Channel) bool {
	for _, ch := range set {
		if sources[ch].Present() {
			return true
		}
	}
	return false
}

// composeImage resamples each assigned channel to the output resolution and
// assembles the quantized pixmap. Destination channels that are unassigned,
// or whose source resolved to nothing, keep the spec's fill value; the fills
// carry each image's per-channel default, e.g. full metallic in a Metal BR
// alpha.
func composeImage(spec ImageSpec, sources map[Channel]ChannelSource, res int) *Pixmap {
	var planes [4]*Plane
	for _, as := range spec.Channels {
		src := sources[as.Source]
		if !src.Found {
			continue
		}
		if as.Dest == DestRGB {
			planes[DestR], planes[DestG], planes[DestB] = resampleRGB(src, res, res)
			continue
		}
		planes[as.Dest] = resamplePlane(src, res, res)
	}

	fill := [4]float64{spec.Fill.R, spec.Fill.G, spec.Fill.B, spec.Fill.A}
	pm := NewPixmap(res, res)
	for y := 0; y < res; y++ {
		for x := 0; x < res; x++ {
			i := y*res + x
			v := fill
			for c := range planes {
				if planes[c] != nil {
					v[c] = planes[c].Pix[i]
				}
			}
			pm.SetPixel(x, y, RGBA{R: v[0], G: v[1], B: v[2], A: v[3]})
		}
	}
	return pm
}

// sanitizeBase replaces filename-unsafe characters in a base name.
func sanitizeBase(base string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) {
			return '_'
		}
		return r
	}, base)
}
