// Package texpack packs PBR material channels into game-ready textures.
//
// # Overview
//
// texpack walks a material's shading node graph, pulls out the standard PBR
// channels (base color, roughness, metallic, emission, occlusion, specular,
// alpha), and packs them into the compact multi-channel PNG files a game
// runtime expects. Which files are produced, and which channel lands in
// which byte, is decided by the material's name suffix.
//
// # Quick Start
//
//	import "github.com/horizonkit/texpack"
//
//	// Build or load a material graph (scene.Material implements texpack.Graph)
//	mat := scene.NewMaterial("RockSurface_VXM")
//	mat.AddImageFile("Base Color", "rock_basecolor.png")
//	mat.AddImageFile("Roughness", "rock_roughness.png")
//
//	// Pack it; resolution 0 means infer from the source images
//	packer := texpack.NewPacker(texpack.WithOutputDir("textures"))
//	files, err := packer.Pack(mat, "RockSurface_VXM", 0)
//	// files: [textures/RockSurface_BR.png textures/RockSurface_MEO.png]
//
// # Profiles
//
// A material name like "Crate_Masked" splits into a base name and a suffix.
// The suffix selects a packing profile: which images to emit, how channels
// map into them, and which fill values pad the gaps. Names without a
// recognized suffix use the standard opaque profile. See Classify and
// Profiles.
//
// # Channel Resolution
//
// Each channel is resolved by searching backward from the terminal shading
// node: a direct image wins, pass-through nodes are traversed breadth-first,
// and an unlinked slot yields its constant value. Channels that resolve to
// nothing fall back to neutral defaults, so packing never fails for missing
// textures.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Packer, Graph, Profile, Classify, ValidateName
//   - scene: a concrete Graph with image loading and HCL manifests
//   - internal: imageio (decoding), texcache (decoded image reuse)
//   - cmd/texpack: command line front end
//
// # Determinism
//
// Packing the same graph twice produces byte-identical files. All pixel
// math runs in [0,1] floats and quantizes to 8 bits only at encode time.
package texpack

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
