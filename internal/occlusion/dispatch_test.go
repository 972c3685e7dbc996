package occlusion_test

import (
	"math"
	"testing"

	"voxfade/internal/occlusion"

	"github.com/go-gl/mathgl/mgl32"
)

// passthrough is a minimal lighting stack: it returns the material color
// unlit and counts how often material assembly ran.
type passthrough struct {
	assembled int
}

func (s *passthrough) LightingInput(f occlusion.Fragment) occlusion.LightingInput {
	s.assembled++
	return occlusion.LightingInput{
		Material:    f.Material,
		WorldPos:    f.WorldPos,
		Normal:      f.Normal,
		FrontFacing: f.FrontFacing,
	}
}

func (s *passthrough) AlphaDiscard(m occlusion.Material, c mgl32.Vec4) (mgl32.Vec4, bool) {
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

func (s *passthrough) GBuffer(in occlusion.LightingInput) occlusion.GBuffer {
	return occlusion.GBuffer{BaseColor: in.Material.BaseColor, Normal: in.Normal, WorldPos: in.WorldPos}
}

func (s *passthrough) ApplyLighting(in occlusion.LightingInput) mgl32.Vec4 {
	return in.Material.BaseColor
}

func (s *passthrough) PostProcess(_ occlusion.LightingInput, c mgl32.Vec4) mgl32.Vec4 {
	return c
}

func scenarioA() occlusion.Params {
	return occlusion.Params{
		PlayerPosition:  mgl32.Vec3{0, 0, 0},
		CameraPosition:  mgl32.Vec3{0, 5, 10},
		MinAlpha:        0.1,
		OcclusionRadius: 3,
		HeightThreshold: 0.5,
		FalloffSoftness: 2,
		Mode:            occlusion.ModeShaderBased,
		Technique:       occlusion.TechniqueAlphaBlend,
	}
}

func fragment(pos mgl32.Vec3, pass occlusion.Pass, alpha float32) occlusion.Fragment {
	return occlusion.Fragment{
		WorldPos:    pos,
		Normal:      mgl32.Vec3{0, 1, 0},
		ScreenPos:   mgl32.Vec2{10.5, 7.5},
		FrontFacing: true,
		Pass:        pass,
		Material: occlusion.Material{
			BaseColor: mgl32.Vec4{0.6, 0.4, 0.2, alpha},
			AlphaMode: occlusion.AlphaBlend,
		},
	}
}

func TestShadeScenarioA(t *testing.T) {
	p := scenarioA()
	pl := &passthrough{}

	pos := mgl32.Vec3{0, 3, 5}
	out := occlusion.Shade(fragment(pos, occlusion.PassColor, 0.8), &p, pl)
	if out.Discarded {
		t.Fatalf("expected fragment to be kept")
	}
	want := occlusion.Alpha(pos, &p) * 0.8
	if math.Abs(float64(out.Color.W()-want)) > 1e-6 {
		t.Errorf("expected combined alpha %f, got %f", want, out.Color.W())
	}
	if want > 0.3*0.8 {
		t.Errorf("expected alpha near min alpha, got %f", want)
	}
}

func TestShadeScenarioB(t *testing.T) {
	p := occlusion.Params{
		Mode: occlusion.ModeRegionBased,
		Region: occlusion.Region{
			Min:    mgl32.Vec3{0, 0, 0},
			Max:    mgl32.Vec3{10, 5, 10},
			Active: true,
		},
	}
	pl := &passthrough{}
	for _, pass := range []occlusion.Pass{occlusion.PassPrepass, occlusion.PassColor} {
		out := occlusion.Shade(fragment(mgl32.Vec3{5, 20, 5}, pass, 1), &p, pl)
		if !out.Discarded {
			t.Errorf("%v: expected discard above the region", pass)
		}
	}
	if pl.assembled != 0 {
		t.Errorf("expected no material assembly for region discards, got %d", pl.assembled)
	}
}

func TestShadeScenarioC(t *testing.T) {
	region := occlusion.Params{
		Mode: occlusion.ModeRegionBased,
		Region: occlusion.Region{
			Min: mgl32.Vec3{0, 0, 0},
			Max: mgl32.Vec3{10, 5, 10},
		},
	}
	none := occlusion.Params{Mode: occlusion.ModeNone}
	pl := &passthrough{}
	for _, pos := range []mgl32.Vec3{{5, 20, 5}, {5, 1, 5}, {-3, 2, 1}} {
		for _, pass := range []occlusion.Pass{occlusion.PassPrepass, occlusion.PassColor} {
			f := fragment(pos, pass, 1)
			got := occlusion.Shade(f, &region, pl)
			want := occlusion.Shade(f, &none, pl)
			if got != want {
				t.Errorf("%v %v: inactive region %+v differs from mode none %+v", pos, pass, got, want)
			}
		}
	}
}

func TestShadePassesAgree(t *testing.T) {
	base := scenarioA()
	base.Region = occlusion.Region{Min: mgl32.Vec3{-2, 0, -2}, Max: mgl32.Vec3{2, 3, 2}, Active: true}
	pl := &passthrough{}

	for mode := occlusion.Mode(0); mode < occlusion.ModeCount; mode++ {
		for _, tech := range []occlusion.Technique{occlusion.TechniqueDithered, occlusion.TechniqueAlphaBlend} {
			p := base
			p.Mode = mode
			p.Technique = tech
			for x := float32(-4); x <= 4; x += 0.5 {
				for y := float32(0); y <= 5; y += 0.5 {
					for z := float32(-4); z <= 8; z += 0.5 {
						pos := mgl32.Vec3{x, y, z}
						f := fragment(pos, occlusion.PassPrepass, 0.9)
						f.ScreenPos = mgl32.Vec2{x*7 + 100, z*5 + 100}
						pre := occlusion.Shade(f, &p, pl)
						f.Pass = occlusion.PassColor
						col := occlusion.Shade(f, &p, pl)
						if pre.Discarded != col.Discarded {
							t.Fatalf("mode %v technique %v pos %v: prepass discarded=%v, color discarded=%v",
								mode, tech, pos, pre.Discarded, col.Discarded)
						}
						if !pre.Discarded && pre.Alpha != col.Alpha {
							t.Fatalf("mode %v technique %v pos %v: prepass alpha %f, color alpha %f",
								mode, tech, pos, pre.Alpha, col.Alpha)
						}
					}
				}
			}
		}
	}
}

func TestShadeDitheredDependsOnScreenPosition(t *testing.T) {
	p := scenarioA()
	p.Technique = occlusion.TechniqueDithered
	pl := &passthrough{}
	pos := mgl32.Vec3{0, 3, 5} // alpha = min alpha = 0.1

	kept := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			f := fragment(pos, occlusion.PassColor, 1)
			f.ScreenPos = mgl32.Vec2{float32(x), float32(y)}
			out := occlusion.Shade(f, &p, pl)
			if !out.Discarded {
				kept++
				if out.Color.W() != 1 {
					t.Errorf("dithered output should keep material alpha, got %f", out.Color.W())
				}
			}
		}
	}
	// Thresholds below 0.1 are 0/16 and 1/16.
	if kept != 2 {
		t.Errorf("expected 2 of 16 pixels kept, got %d", kept)
	}
}

func TestShadeDropsNearlyTransparent(t *testing.T) {
	p := scenarioA()
	pl := &passthrough{}
	out := occlusion.Shade(fragment(mgl32.Vec3{0, 3, 5}, occlusion.PassColor, 0.05), &p, pl)
	if !out.Discarded {
		t.Errorf("expected discard for combined alpha 0.005")
	}
}

func TestShadeAppliesMaterialCutoff(t *testing.T) {
	p := occlusion.Params{Mode: occlusion.ModeNone}
	pl := &passthrough{}
	f := fragment(mgl32.Vec3{0, 0, 0}, occlusion.PassPrepass, 0.3)
	f.Material.AlphaMode = occlusion.AlphaMask
	f.Material.AlphaCutoff = 0.5
	if out := occlusion.Shade(f, &p, pl); !out.Discarded {
		t.Errorf("expected mask cutoff to discard")
	}
	f.Material.BaseColor[3] = 0.7
	if out := occlusion.Shade(f, &p, pl); out.Discarded {
		t.Errorf("expected mask cutoff to keep")
	}
}

func TestShadeReassertsAlphaForOpaqueMaterials(t *testing.T) {
	p := scenarioA()
	pl := &passthrough{}
	f := fragment(mgl32.Vec3{0, 3, 5}, occlusion.PassColor, 1)
	f.Material.AlphaMode = occlusion.AlphaOpaque
	out := occlusion.Shade(f, &p, pl)
	if out.Discarded {
		t.Fatalf("unexpected discard")
	}
	if math.Abs(float64(out.Color.W()-0.1)) > 1e-6 {
		t.Errorf("expected coverage alpha 0.1 after opaque cutoff, got %f", out.Color.W())
	}

	f.Pass = occlusion.PassPrepass
	if pre := occlusion.Shade(f, &p, pl); math.Abs(float64(pre.Alpha-0.1)) > 1e-6 {
		t.Errorf("expected prepass to report coverage 0.1, got %f", pre.Alpha)
	}
	f.Pass = occlusion.PassColor

	p.Mode = occlusion.ModeNone
	out = occlusion.Shade(f, &p, pl)
	if out.Color.W() != 1 {
		t.Errorf("mode none should leave opaque alpha at 1, got %f", out.Color.W())
	}
}

func TestShadeHybrid(t *testing.T) {
	p := scenarioA()
	p.Mode = occlusion.ModeHybrid
	p.Region = occlusion.Region{Min: mgl32.Vec3{-1, 0, -1}, Max: mgl32.Vec3{1, 2, 1}, Active: true}
	pl := &passthrough{}

	inside := fragment(mgl32.Vec3{0, 4, 0}, occlusion.PassColor, 1)
	if out := occlusion.Shade(inside, &p, pl); !out.Discarded {
		t.Errorf("hybrid: expected cutout inside region")
	}

	// Outside the region but on the sightline: untouched unless the analytic
	// leg is enabled.
	outside := fragment(mgl32.Vec3{0, 3, 5}, occlusion.PassColor, 1)
	if out := occlusion.Shade(outside, &p, pl); out.Discarded || out.Color.W() != 1 {
		t.Errorf("hybrid without fallback: expected opaque, got %+v", out)
	}
	p.HybridFallback = true
	out := occlusion.Shade(outside, &p, pl)
	if out.Discarded || math.Abs(float64(out.Color.W()-0.1)) > 1e-6 {
		t.Errorf("hybrid with fallback: expected alpha 0.1, got %+v", out)
	}
}

func TestShadeUnknownTechniqueBlends(t *testing.T) {
	pl := &passthrough{}
	blend := scenarioA()
	odd := scenarioA()
	odd.Technique = occlusion.Technique(7)

	for _, pass := range []occlusion.Pass{occlusion.PassPrepass, occlusion.PassColor} {
		f := fragment(mgl32.Vec3{0, 3, 5}, pass, 1)
		want := occlusion.Shade(f, &blend, pl)
		got := occlusion.Shade(f, &odd, pl)
		if got.Discarded || got.Alpha != want.Alpha || got.Color != want.Color {
			t.Errorf("%v: expected unknown technique to blend like %+v, got %+v", pass, want, got)
		}
		if math.Abs(float64(got.Alpha-0.1)) > 1e-6 {
			t.Errorf("%v: expected alpha 0.1, got %f", pass, got.Alpha)
		}
	}
}

func BenchmarkShade(b *testing.B) {
	p := scenarioA()
	p.Technique = occlusion.TechniqueDithered
	pl := &passthrough{}
	f := fragment(mgl32.Vec3{0.4, 2, 5}, occlusion.PassColor, 1)
	for i := 0; i < b.N; i++ {
		_ = occlusion.Shade(f, &p, pl)
	}
}
