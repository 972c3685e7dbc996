// Package shading is the lighting stack used by the renderers: a Lambert
// term over an ambient floor, linear distance fog and a Reinhard tone map.
package shading

import (
	"math"

	"voxfade/internal/config"
	"voxfade/internal/occlusion"

	"github.com/go-gl/mathgl/mgl32"
)

// Standard implements occlusion.Pipeline. All methods are pure so the
// prepass and the color pass agree.
type Standard struct {
	Eye        mgl32.Vec3 // camera position, for fog
	LightDir   mgl32.Vec3 // unit vector towards the light
	LightColor mgl32.Vec3
	Ambient    float32

	FogStart, FogEnd float32
	FogColor         mgl32.Vec3

	// Display applies tone mapping and gamma. Off for linear output.
	Display  bool
	Exposure float32
}

var _ occlusion.Pipeline = Standard{}

// NewStandard returns the default sun-lit pipeline seen from eye, with the
// fog range taken from the render settings.
func NewStandard(eye mgl32.Vec3) Standard {
	start, end := config.GetFogRange()
	return Standard{
		Eye:        eye,
		LightDir:   mgl32.Vec3{0.4, 0.8, 0.3}.Normalize(),
		LightColor: mgl32.Vec3{1.0, 0.96, 0.88},
		Ambient:    0.35,
		FogStart:   start,
		FogEnd:     end,
		FogColor:   mgl32.Vec3{0.62, 0.75, 0.9},
		Display:    true,
		Exposure:   1.6,
	}
}

func (s Standard) LightingInput(f occlusion.Fragment) occlusion.LightingInput {
	n := f.Normal
	if !f.FrontFacing {
		n = n.Mul(-1)
	}
	return occlusion.LightingInput{
		Material:    f.Material,
		WorldPos:    f.WorldPos,
		Normal:      n,
		FrontFacing: f.FrontFacing,
	}
}

// AlphaDiscard applies the material alpha policy: opaque forces alpha to 1,
// mask drops fragments under the cutoff and keeps the rest opaque, blend
// passes alpha through.
func (s Standard) AlphaDiscard(m occlusion.Material, c mgl32.Vec4) (mgl32.Vec4, bool) {
	switch m.AlphaMode {
	case occlusion.AlphaOpaque:
		c[3] = 1
	case occlusion.AlphaMask:
		if c[3] < m.AlphaCutoff {
			return c, false
		}
		c[3] = 1
	}
	return c, true
}

func (s Standard) GBuffer(in occlusion.LightingInput) occlusion.GBuffer {
	return occlusion.GBuffer{
		BaseColor: in.Material.BaseColor,
		Normal:    in.Normal,
		WorldPos:  in.WorldPos,
	}
}

func (s Standard) ApplyLighting(in occlusion.LightingInput) mgl32.Vec4 {
	base := in.Material.BaseColor
	ndotl := float32(math.Max(0, float64(in.Normal.Dot(s.LightDir))))
	k := s.Ambient + (1-s.Ambient)*ndotl
	return mgl32.Vec4{
		base[0] * k * s.LightColor[0],
		base[1] * k * s.LightColor[1],
		base[2] * k * s.LightColor[2],
		base[3],
	}
}

func (s Standard) PostProcess(in occlusion.LightingInput, c mgl32.Vec4) mgl32.Vec4 {
	rgb := s.fog(in.WorldPos, c.Vec3())
	rgb = s.Resolve(rgb)
	return rgb.Vec4(c[3])
}

func (s Standard) fog(pos, rgb mgl32.Vec3) mgl32.Vec3 {
	if s.FogEnd <= s.FogStart {
		return rgb
	}
	d := pos.Sub(s.Eye).Len()
	f := mgl32.Clamp((d-s.FogStart)/(s.FogEnd-s.FogStart), 0, 1)
	return rgb.Mul(1 - f).Add(s.FogColor.Mul(f))
}

// Resolve maps a linear color to the output space: Reinhard and gamma 2.2
// when Display is set, unchanged otherwise.
func (s Standard) Resolve(rgb mgl32.Vec3) mgl32.Vec3 {
	if !s.Display {
		return rgb
	}
	e := s.Exposure
	if e <= 0 {
		e = 1
	}
	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		v := rgb[i] * e
		v = v / (1 + v)
		out[i] = float32(math.Pow(float64(v), 1/2.2))
	}
	return out
}

// Sky returns the linear background color for a view direction
func (s Standard) Sky(dir mgl32.Vec3) mgl32.Vec3 {
	t := mgl32.Clamp(dir.Normalize().Y()*0.5+0.5, 0, 1)
	horizon := s.FogColor
	zenith := mgl32.Vec3{0.3, 0.5, 0.85}
	return horizon.Mul(1 - t).Add(zenith.Mul(t))
}
