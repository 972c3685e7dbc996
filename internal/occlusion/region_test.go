package occlusion_test

import (
	"testing"

	"voxfade/internal/occlusion"

	"github.com/go-gl/mathgl/mgl32"
)

func houseRegion(active bool) occlusion.Region {
	return occlusion.Region{
		Min:    mgl32.Vec3{0, 0, 0},
		Max:    mgl32.Vec3{10, 5, 10},
		Active: active,
	}
}

func TestRegionInactiveNeverContains(t *testing.T) {
	r := houseRegion(false)
	for _, pos := range []mgl32.Vec3{{5, 1, 5}, {5, 20, 5}, {0.5, 0.5, 0.5}} {
		if r.Contains(pos) {
			t.Errorf("inactive region reported %v as inside", pos)
		}
	}
}

func TestRegionInsetBoundary(t *testing.T) {
	r := houseRegion(true)
	outside := []mgl32.Vec3{
		{0.01, 1, 5}, // on min.x inset
		{9.99, 1, 5}, // on max.x inset
		{5, 1, 0.01},
		{5, 1, 9.99},
		{5, 0.01, 5}, // on the floor inset
		{0, 1, 5},
		{10, 1, 5},
		{-1, 1, 5},
		{5, -1, 5},
		{5, 1, 11},
	}
	for _, pos := range outside {
		if r.Contains(pos) {
			t.Errorf("expected %v to be outside", pos)
		}
	}
	inside := []mgl32.Vec3{
		{0.02, 1, 5},
		{9.98, 1, 5},
		{5, 0.02, 5},
		{5, 4.9, 5},
	}
	for _, pos := range inside {
		if !r.Contains(pos) {
			t.Errorf("expected %v to be inside", pos)
		}
	}
}

func TestRegionHasNoCeiling(t *testing.T) {
	r := houseRegion(true)
	for _, y := range []float32{5, 6, 20, 1000} {
		if !r.Contains(mgl32.Vec3{5, y, 5}) {
			t.Errorf("expected y=%f above the region to count as inside", y)
		}
	}
}

func TestRegionDiscardOnlyForRegionModes(t *testing.T) {
	p := occlusion.Params{Region: houseRegion(true)}
	pos := mgl32.Vec3{5, 20, 5}
	want := map[occlusion.Mode]bool{
		occlusion.ModeNone:        false,
		occlusion.ModeShaderBased: false,
		occlusion.ModeRegionBased: true,
		occlusion.ModeHybrid:      true,
	}
	for mode, expected := range want {
		p.Mode = mode
		if got := occlusion.RegionDiscard(pos, &p); got != expected {
			t.Errorf("mode %v: expected %v, got %v", mode, expected, got)
		}
	}
}
