package texpack

import (
	"slices"
	"strings"
)

// Dest identifies the destination channel(s) of an output image that one
// resolved source fills.
type Dest uint8

const (
	// DestR fills the red channel.
	DestR Dest = iota

	// DestG fills the green channel.
	DestG

	// DestB fills the blue channel.
	DestB

	// DestA fills the alpha channel.
	DestA

	// DestRGB fills all three color channels from an RGB source.
	DestRGB
)

// String returns a string representation of the destination.
func (d Dest) String() string {
	switch d {
	case DestR:
		return "R"
	case DestG:
		return "G"
	case DestB:
		return "B"
	case DestA:
		return "A"
	case DestRGB:
		return "RGB"
	default:
		return "Unknown"
	}
}

// EmitCondition decides whether an output image is written at all.
type EmitCondition uint8

const (
	// EmitAlways writes the image unconditionally.
	EmitAlways EmitCondition = iota

	// EmitIfAnyPresent writes the image only when at least one channel of
	// the image spec's emit set resolved to a present source. Skipping is
	// a normal outcome, not an error.
	EmitIfAnyPresent
)

// Assignment routes one semantic channel into a destination channel of an
// output image.
type Assignment struct {
	Source Channel
	Dest   Dest
}

// ImageSpec describes one output image of a profile: its filename suffix,
// the fill color of unassigned channels, the channel routing, and the
// emission condition.
type ImageSpec struct {
	// FilenameSuffix is appended to the base name, e.g. "_BR". Unique
	// within a profile.
	FilenameSuffix string

	// Fill initializes every pixel before assignments overwrite their
	// destination channels.
	Fill RGBA

	// Channels routes resolved sources into destination channels. Each
	// destination is assigned at most once; DestRGB counts as R, G and B.
	Channels []Assignment

	// Emit is the emission condition.
	Emit EmitCondition

	// EmitSet lists the channels whose presence triggers emission when
	// Emit is EmitIfAnyPresent.
	EmitSet []Channel
}

// Profile is the fixed rule set associated with a material-name suffix:
// which images are produced, how their channels are filled, and under which
// condition each image is emitted. Profiles are static metadata; callers
// must treat the slices as read-only.
type Profile struct {
	// Name is the display name of the profile.
	Name string

	// Suffix is the canonical material-name suffix, empty for Standard.
	Suffix string

	// Images are the output images in emission order.
	Images []ImageSpec
}

// brSpec builds the BR layout: RGB from base color, alpha from the given
// scalar channel (roughness normally, metallic for the Metal profile).
func brSpec(alpha Channel) ImageSpec {
	return ImageSpec{
		FilenameSuffix: "_BR",
		Fill:           RGBA{1, 1, 1, 1},
		Channels: []Assignment{
			{Source: BaseColor, Dest: DestRGB},
			{Source: alpha, Dest: DestA},
		},
		Emit: EmitAlways,
	}
}

// meoSpec is the MEO layout: metallic, emission luminance and occlusion.
// Emitted only when one of the three actually resolved; alpha stays at the
// fill value of one.
var meoSpec = ImageSpec{
	FilenameSuffix: "_MEO",
	Fill:           RGBA{0, 0, 1, 1},
	Channels: []Assignment{
		{Source: Metallic, Dest: DestR},
		{Source: Emission, Dest: DestG},
		{Source: AmbientOcclusion, Dest: DestB},
	},
	Emit:    EmitIfAnyPresent,
	EmitSet: []Channel{Metallic, Emission, AmbientOcclusion},
}

// baSpec is the BA layout: base color with source transparency.
var baSpec = ImageSpec{
	FilenameSuffix: "_BA",
	Fill:           RGBA{1, 1, 1, 1},
	Channels: []Assignment{
		{Source: BaseColor, Dest: DestRGB},
		{Source: Alpha, Dest: DestA},
	},
	Emit: EmitAlways,
}

// mesaSpec is the MESA layout used by transparent materials.
var mesaSpec = ImageSpec{
	FilenameSuffix: "_MESA",
	Fill:           RGBA{0, 0.5, 0, 1},
	Channels: []Assignment{
		{Source: Metallic, Dest: DestR},
		{Source: Specular, Dest: DestG},
		{Source: Emission, Dest: DestB},
		{Source: Alpha, Dest: DestA},
	},
	Emit: EmitAlways,
}

// The fixed profiles.
var (
	profileStandard = Profile{
		Name:   "Standard",
		Images: []ImageSpec{brSpec(Roughness), meoSpec},
	}
	profileMetal = Profile{
		Name:   "Metal",
		Suffix: "_Metal",
		Images: []ImageSpec{brSpec(Metallic)},
	}
	profileBlend = Profile{
		Name:   "Blend",
		Suffix: "_Blend",
		Images: []ImageSpec{baSpec},
	}
	profileMasked = Profile{
		Name:   "Masked",
		Suffix: "_Masked",
		Images: []ImageSpec{baSpec},
	}
	profileMaskedVXM = Profile{
		Name:   "MaskedVXM",
		Suffix: "_MaskedVXM",
		Images: []ImageSpec{baSpec},
	}
	profileUIO = Profile{
		Name:   "UIO",
		Suffix: "_UIO",
		Images: []ImageSpec{baSpec},
	}
	profileTransparent = Profile{
		Name:   "Transparent",
		Suffix: "_Transparent",
		Images: []ImageSpec{brSpec(Roughness), mesaSpec},
	}
	profileVXC = Profile{
		Name:   "VXC",
		Suffix: "_VXC",
	}
	profileVXM = Profile{
		Name:   "VXM",
		Suffix: "_VXM",
		Images: []ImageSpec{brSpec(Roughness), meoSpec},
	}
)

// suffixRule binds one recognized material-name suffix to its packing
// profile. The one table drives both the classifier and the name
// validator; there is no second suffix list anywhere.
type suffixRule struct {
	suffix   string
	priority int // longer suffixes out-rank shorter ones
	profile  *Profile
}

// suffixTable lists every recognized suffix. "_Unlit" is a valid name
// suffix with no packing profile of its own; it packs as Standard.
var suffixTable = []suffixRule{
	{suffix: "_Transparent", profile: &profileTransparent},
	{suffix: "_Masked", profile: &profileMasked},
	{suffix: "_MaskedVXM", profile: &profileMaskedVXM},
	{suffix: "_VXC", profile: &profileVXC},
	{suffix: "_VXM", profile: &profileVXM},
	{suffix: "_Blend", profile: &profileBlend},
	{suffix: "_Unlit", profile: &profileStandard},
	{suffix: "_UIO", profile: &profileUIO},
	{suffix: "_Metal", profile: &profileMetal},
}

// classifyOrder is the suffix table sorted by descending match priority, so
// "_MaskedVXM" is tested before "_VXM" and "_Masked" ever get a chance.
var classifyOrder = func() []suffixRule {
	rules := slices.Clone(suffixTable)
	for i := range rules {
		rules[i].priority = len(rules[i].suffix)
	}
	slices.SortStableFunc(rules, func(a, b suffixRule) int {
		return b.priority - a.priority
	})
	return rules
}()

// Classify resolves a material name to its output profile and the name with
// the matched suffix stripped. Names without a recognized suffix classify
// as Standard with the base name unchanged.
func Classify(name string) (Profile, string) {
	for _, rule := range classifyOrder {
		if strings.HasSuffix(name, rule.suffix) {
			return *rule.profile, strings.TrimSuffix(name, rule.suffix)
		}
	}
	return profileStandard, name
}

// Profiles returns the distinct packing profiles in table order, for
// reference display. The returned slice is a copy; the profiles inside are
// shared static metadata.
func Profiles() []Profile {
	return []Profile{
		profileStandard,
		profileMetal,
		profileBlend,
		profileMasked,
		profileMaskedVXM,
		profileUIO,
		profileTransparent,
		profileVXC,
		profileVXM,
	}
}

// Suffixes returns every recognized material-name suffix in match-priority
// order.
func Suffixes() []string {
	out := make([]string, len(classifyOrder))
	for i, rule := range classifyOrder {
		out[i] = rule.suffix
	}
	return out
}
