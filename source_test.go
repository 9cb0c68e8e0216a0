package texpack

import "testing"

// TestChannelSourcePresent pins the "meaningful absence" rule for
// conditional image emission: images always count, constants count only
// when they differ from the channel's neutral value.
func TestChannelSourcePresent(t *testing.T) {
	img := uniformImage(1, 1, Gray(0.5))
	tests := []struct {
		name string
		src  ChannelSource
		want bool
	}{
		{"metallic image", imageSource(Metallic, "n", img, ExtractR), true},
		{"metallic neutral zero", constantSource(Metallic, "n", RGBA{0, 0, 0, 0}), false},
		{"metallic near-neutral", constantSource(Metallic, "n", Gray(1e-7)), false},
		{"metallic non-neutral", constantSource(Metallic, "n", Gray(0.5)), true},
		{"metallic full", constantSource(Metallic, "n", Gray(1)), true},
		{"occlusion neutral one", constantSource(AmbientOcclusion, "n", Gray(1)), false},
		{"occlusion near-neutral", constantSource(AmbientOcclusion, "n", Gray(1-1e-8)), false},
		{"occlusion darkened", constantSource(AmbientOcclusion, "n", Gray(0.5)), true},
		{"emission black", constantSource(Emission, "n", RGBA{0, 0, 0, 1}), false},
		{"emission dim red", constantSource(Emission, "n", RGBA{0.1, 0, 0, 1}), true},
		{"roughness constant", constantSource(Roughness, "n", Gray(0.5)), true},
		{"roughness default", defaultSource(Roughness), false},
		{"metallic default", defaultSource(Metallic), false},
		{"unresolved zero value", ChannelSource{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.src.Present(); got != tt.want {
				t.Errorf("Present() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestChannelSourceNativeSize verifies constants report 1x1 and images
// report their own dimensions.
func TestChannelSourceNativeSize(t *testing.T) {
	c := constantSource(Roughness, "n", Gray(0.5))
	if c.NativeWidth() != 1 || c.NativeHeight() != 1 {
		t.Errorf("constant size = %dx%d, want 1x1", c.NativeWidth(), c.NativeHeight())
	}

	s := imageSource(BaseColor, "n", uniformImage(16, 8, White), ExtractRGB)
	if s.NativeWidth() != 16 || s.NativeHeight() != 8 {
		t.Errorf("image size = %dx%d, want 16x8", s.NativeWidth(), s.NativeHeight())
	}
}

// TestConstantScalar verifies the extract mode applied to constants matches
// the channel convention.
func TestConstantScalar(t *testing.T) {
	v := RGBA{0.1, 0.2, 0.3, 0.4}
	tests := []struct {
		channel Channel
		want    float64
	}{
		{Roughness, 0.1},
		{Metallic, 0.1},
		{Alpha, 0.4},
		{Emission, v.Luminance()},
	}
	for _, tt := range tests {
		src := constantSource(tt.channel, "n", v)
		if got := src.constantScalar(); got != tt.want {
			t.Errorf("%v constantScalar = %v, want %v", tt.channel, got, tt.want)
		}
	}
}
