package texpack

import "math"

// Extract selects which component of a resolved source feeds a packed
// channel.
type Extract uint8

const (
	// ExtractR reads the red component.
	ExtractR Extract = iota

	// ExtractG reads the green component.
	ExtractG

	// ExtractB reads the blue component.
	ExtractB

	// ExtractA reads the alpha component.
	ExtractA

	// ExtractLuminance reduces RGB to a scalar with Rec. 709 weights.
	// The reduction happens per texel, before any interpolation.
	ExtractLuminance

	// ExtractRGB keeps all three color components.
	ExtractRGB

	// ExtractConstant means the source is a uniform value with no image
	// behind it.
	ExtractConstant
)

// String returns a string representation of the extract mode.
func (e Extract) String() string {
	switch e {
	case ExtractR:
		return "R"
	case ExtractG:
		return "G"
	case ExtractB:
		return "B"
	case ExtractA:
		return "A"
	case ExtractLuminance:
		return "Luminance"
	case ExtractRGB:
		return "RGB"
	case ExtractConstant:
		return "Constant"
	default:
		return "Unknown"
	}
}

// ChannelSource is the result of resolving one semantic channel against a
// material graph. Sources are created fresh per resolve call and hold no
// graph state beyond the host's pixel access, so materials never leak
// resolution state into each other.
type ChannelSource struct {
	// Channel is the request this source answers.
	Channel Channel

	// Found reports whether an image or an explicit constant was located.
	// When false the channel's default value applies silently.
	Found bool

	// Extract selects the component(s) read from the source.
	Extract Extract

	// Image is native-resolution pixel access. Nil for constant sources.
	Image PixelSource

	// Constant is the uniform value when Extract is ExtractConstant.
	Constant RGBA

	// Node is the graph node the source came from, for diagnostics.
	Node NodeID
}

// imageSource wraps a graph image node as a channel source.
func imageSource(ch Channel, node NodeID, img PixelSource, extract Extract) ChannelSource {
	return ChannelSource{
		Channel: ch,
		Found:   true,
		Extract: extract,
		Image:   img,
		Node:    node,
	}
}

// constantSource wraps an explicit static slot value as a channel source.
func constantSource(ch Channel, node NodeID, v RGBA) ChannelSource {
	return ChannelSource{
		Channel:  ch,
		Found:    true,
		Extract:  ExtractConstant,
		Constant: v,
		Node:     node,
	}
}

// defaultSource is the silent fallback when nothing resolves.
func defaultSource(ch Channel) ChannelSource {
	return ChannelSource{
		Channel:  ch,
		Extract:  ExtractConstant,
		Constant: channelTable[ch].def,
	}
}

// HasImage reports whether the source is backed by image pixels.
func (s ChannelSource) HasImage() bool {
	return s.Image != nil
}

// NativeWidth returns the source image width, or 1 for constants.
func (s ChannelSource) NativeWidth() int {
	if s.Image != nil {
		return s.Image.Width()
	}
	return 1
}

// NativeHeight returns the source image height, or 1 for constants.
func (s ChannelSource) NativeHeight() int {
	if s.Image != nil {
		return s.Image.Height()
	}
	return 1
}

// Present reports whether the source counts for conditional image emission.
// Image sources always count. Constants count only when they differ from
// the channel's neutral value; a metallic of zero or an occlusion of one is
// indistinguishable from the channel being absent.
func (s ChannelSource) Present() bool {
	if !s.Found {
		return false
	}
	if s.Image != nil {
		return true
	}
	spec := &channelTable[s.Channel]
	if !spec.hasNeutral {
		return true
	}
	return math.Abs(s.constantScalar()-spec.neutral) > presenceEpsilon
}

// constantScalar extracts the scalar value of a constant source using the
// channel's extract mode in place of texel access.
func (s ChannelSource) constantScalar() float64 {
	switch channelTable[s.Channel].extract {
	case ExtractG:
		return s.Constant.G
	case ExtractB:
		return s.Constant.B
	case ExtractA:
		return s.Constant.A
	case ExtractLuminance:
		return s.Constant.Luminance()
	default:
		return s.Constant.R
	}
}

// scalarAt returns the extracted scalar of the native texel (x, y).
// Only valid for image-backed sources with a scalar extract mode.
func (s ChannelSource) scalarAt(x, y int) float64 {
	c := s.Image.At(x, y)
	switch s.Extract {
	case ExtractG:
		return c.G
	case ExtractB:
		return c.B
	case ExtractA:
		return c.A
	case ExtractLuminance:
		return c.Luminance()
	default:
		return c.R
	}
}
