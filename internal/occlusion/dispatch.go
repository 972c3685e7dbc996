package occlusion

import "github.com/go-gl/mathgl/mgl32"

// Pass identifies which dispatch a fragment belongs to.
type Pass uint8

const (
	// PassPrepass writes depth and the geometry buffer.
	PassPrepass Pass = iota
	// PassColor computes the lit color.
	PassColor
)

func (p Pass) String() string {
	if p == PassPrepass {
		return "prepass"
	}
	return "color"
}

// AlphaMode is a material's own alpha policy, applied after occlusion.
type AlphaMode uint8

const (
	AlphaOpaque AlphaMode = iota
	AlphaMask
	AlphaBlend
)

// Material is the standard surface description carried by a fragment.
type Material struct {
	BaseColor   mgl32.Vec4
	AlphaMode   AlphaMode
	AlphaCutoff float32
}

// Fragment is one shading invocation. It is never persisted.
type Fragment struct {
	WorldPos    mgl32.Vec3
	Normal      mgl32.Vec3
	ScreenPos   mgl32.Vec2 // window pixels, origin bottom-left as gl_FragCoord
	FrontFacing bool
	Pass        Pass
	Material    Material
}

// LightingInput is the structured record the lighting capability produces
// from a fragment and consumes again when lighting it.
type LightingInput struct {
	Material    Material
	WorldPos    mgl32.Vec3
	Normal      mgl32.Vec3
	FrontFacing bool
}

// GBuffer is the deferred geometry record written by the prepass.
type GBuffer struct {
	BaseColor mgl32.Vec4
	Normal    mgl32.Vec3
	WorldPos  mgl32.Vec3
}

// Pipeline is the lighting stack the dispatcher hands fragments to. Shade
// treats it as opaque; implementations must be pure for the renderer's
// two passes to agree.
type Pipeline interface {
	LightingInput(f Fragment) LightingInput
	// AlphaDiscard applies the material's cutoff policy and reports whether
	// the fragment survives.
	AlphaDiscard(m Material, color mgl32.Vec4) (mgl32.Vec4, bool)
	GBuffer(in LightingInput) GBuffer
	ApplyLighting(in LightingInput) mgl32.Vec4
	PostProcess(in LightingInput, color mgl32.Vec4) mgl32.Vec4
}

// Output is the result of one invocation. GBuffer is set for the prepass,
// Color for the color pass. Alpha is the coverage the fragment contributes
// in either pass; below 1 the renderer treats it as translucent.
type Output struct {
	Discarded bool
	GBuffer   GBuffer
	Color     mgl32.Vec4
	Alpha     float32
}

var discarded = Output{Discarded: true}

// Shade runs one fragment through the occlusion state machine. The
// evaluation order is fixed and identical for both passes up to output
// assembly.
func Shade(f Fragment, p *Params, pl Pipeline) Output {
	if RegionDiscard(f.WorldPos, p) {
		return discarded
	}

	in := pl.LightingInput(f)

	if p.analytic() {
		a := Alpha(f.WorldPos, p) * in.Material.BaseColor.W()
		if a < MinCombinedAlpha {
			return discarded
		}
		if p.Technique.blends() {
			in.Material.BaseColor[3] = a
		} else if !Keep(f.ScreenPos.X(), f.ScreenPos.Y(), a) {
			return discarded
		}
	}
	finalAlpha := in.Material.BaseColor.W()

	color, ok := pl.AlphaDiscard(in.Material, in.Material.BaseColor)
	if !ok {
		return discarded
	}
	in.Material.BaseColor = color
	reassert := p.Technique.blends() && p.Mode != ModeNone

	if f.Pass == PassPrepass {
		alpha := color[3]
		if reassert {
			alpha = finalAlpha
		}
		return Output{GBuffer: pl.GBuffer(in), Alpha: alpha}
	}

	out := pl.PostProcess(in, pl.ApplyLighting(in))
	if reassert {
		out[3] = finalAlpha
	}
	return Output{Color: out, Alpha: out[3]}
}

// analytic reports whether the ray estimator runs for this configuration.
func (p *Params) analytic() bool {
	return p.Mode == ModeShaderBased || (p.Mode == ModeHybrid && p.HybridFallback)
}
