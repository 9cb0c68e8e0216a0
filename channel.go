package texpack

// Channel identifies a semantic material channel the engine can resolve
// from a graph and pack into an output image.
type Channel uint8

const (
	// BaseColor is the albedo color of the surface.
	BaseColor Channel = iota

	// Roughness is the microsurface roughness scalar.
	Roughness

	// Metallic is the metalness scalar.
	Metallic

	// Emission is the emissive color. Packing reduces it to luminance.
	Emission

	// AmbientOcclusion is the baked occlusion scalar.
	AmbientOcclusion

	// Specular is the specular intensity scalar.
	Specular

	// Alpha is the surface transparency.
	Alpha

	// channelCount is the number of channels (for internal use).
	channelCount
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case BaseColor:
		return "BaseColor"
	case Roughness:
		return "Roughness"
	case Metallic:
		return "Metallic"
	case Emission:
		return "Emission"
	case AmbientOcclusion:
		return "AmbientOcclusion"
	case Specular:
		return "Specular"
	case Alpha:
		return "Alpha"
	default:
		return "Unknown"
	}
}

// Slot returns the terminal-node input slot name the channel resolves from.
func (c Channel) Slot() string {
	return channelTable[c].slot
}

// channelSpec is the static convention binding a channel to the terminal
// node's input slot, the component extracted from a resolved source, the
// value used when nothing resolves, and the neutral value that counts as
// "absent" for conditional image emission.
type channelSpec struct {
	slot      string
	aliasSlot string // some shader versions expose the slot under another name
	extract   Extract
	def       RGBA

	neutral    float64
	hasNeutral bool
}

// channelTable is the single static mapping shared by the resolver and the
// packer. Scalar defaults are broadcast across all four components so a
// constant source can be extracted uniformly.
var channelTable = [channelCount]channelSpec{
	BaseColor: {slot: "Base Color", extract: ExtractRGB, def: RGBA{1, 1, 1, 1}},
	Roughness: {slot: "Roughness", extract: ExtractR, def: RGBA{1, 1, 1, 1}},
	Metallic: {
		slot: "Metallic", extract: ExtractR, def: RGBA{0, 0, 0, 0},
		neutral: 0, hasNeutral: true,
	},
	Emission: {
		slot: "Emission Color", extract: ExtractLuminance, def: RGBA{0, 0, 0, 0},
		neutral: 0, hasNeutral: true,
	},
	AmbientOcclusion: {
		slot: "Ambient Occlusion", extract: ExtractR, def: RGBA{1, 1, 1, 1},
		neutral: 1, hasNeutral: true,
	},
	Specular: {
		slot: "Specular", aliasSlot: "Specular IOR Level",
		extract: ExtractR, def: RGBA{0.5, 0.5, 0.5, 0.5},
	},
	Alpha: {slot: "Alpha", extract: ExtractA, def: RGBA{1, 1, 1, 1}},
}

// presenceEpsilon is the tolerance used when deciding whether a constant
// differs from its channel's neutral value.
const presenceEpsilon = 1e-6

// resolutionOrder is the channel priority used to infer an output
// resolution from the first image-backed source.
var resolutionOrder = [...]Channel{
	BaseColor, Roughness, Metallic, Emission, Specular, AmbientOcclusion,
}

// DefaultResolution is the output size used when no channel resolves to an
// image the resolution could be inferred from.
const DefaultResolution = 2048
