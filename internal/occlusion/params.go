package occlusion

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Technique selects how a partial alpha becomes a visible pixel.
type Technique uint32

const (
	TechniqueDithered Technique = iota
	TechniqueAlphaBlend
)

func (t Technique) String() string {
	switch t {
	case TechniqueDithered:
		return "dithered"
	case TechniqueAlphaBlend:
		return "alphablend"
	default:
		return fmt.Sprintf("technique(%d)", uint32(t))
	}
}

// blends reports whether the technique writes the occlusion alpha instead of
// dithering. Unknown values blend, as the shaders do.
func (t Technique) blends() bool {
	return t != TechniqueDithered
}

// ParseTechnique accepts the names produced by Technique.String.
func ParseTechnique(s string) (Technique, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dithered", "dither":
		return TechniqueDithered, nil
	case "alphablend", "alpha", "blend":
		return TechniqueAlphaBlend, nil
	}
	return 0, fmt.Errorf("unknown technique %q", s)
}

// Mode selects the occlusion strategy.
type Mode uint32

const (
	ModeNone Mode = iota
	ModeShaderBased
	ModeRegionBased
	ModeHybrid
)

// ModeCount is the number of defined modes, used to cycle through them.
const ModeCount = 4

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeShaderBased:
		return "shader"
	case ModeRegionBased:
		return "region"
	case ModeHybrid:
		return "hybrid"
	default:
		return fmt.Sprintf("mode(%d)", uint32(m))
	}
}

// ParseMode accepts the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off":
		return ModeNone, nil
	case "shader", "shaderbased":
		return ModeShaderBased, nil
	case "region", "regionbased":
		return ModeRegionBased, nil
	case "hybrid":
		return ModeHybrid, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// UsesRegion reports whether the mode runs the region cutout.
func (m Mode) UsesRegion() bool {
	return m == ModeRegionBased || m == ModeHybrid
}

// Shared constants. They are read-only for the life of the process.
const (
	// EdgeSoftness is the width of the horizontal fade at the radius boundary.
	EdgeSoftness float32 = 0.5
	// RegionEpsilon insets the region bounds so faces lying on the boundary stay visible.
	RegionEpsilon float32 = 0.01
	// VerticalEpsilon is the smallest horizontal sightline length treated as a direction.
	VerticalEpsilon float32 = 1e-3
	// MinCombinedAlpha is the combined alpha below which a fragment is dropped outright.
	MinCombinedAlpha float32 = 0.01
)

// Region is a detected interior bounding volume.
type Region struct {
	Min    mgl32.Vec3
	Max    mgl32.Vec3
	Active bool
}

// Params is the per-frame parameter block. The host builds a new value every
// frame; fragment work only ever reads it.
type Params struct {
	PlayerPosition mgl32.Vec3
	CameraPosition mgl32.Vec3

	MinAlpha        float32
	OcclusionRadius float32
	HeightThreshold float32
	FalloffSoftness float32

	Technique Technique
	Mode      Mode

	// HybridFallback runs the analytic fade for fragments outside the region
	// when Mode is ModeHybrid. Off by default, which keeps Hybrid at cutout only.
	HybridFallback bool

	Region Region
}

// DefaultParams returns the tuning used by the viewer at startup.
func DefaultParams() Params {
	return Params{
		MinAlpha:        0.15,
		OcclusionRadius: 3.0,
		HeightThreshold: 1.8,
		FalloffSoftness: 1.5,
		Technique:       TechniqueDithered,
		Mode:            ModeShaderBased,
	}
}
