package occlusion

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMarshalStd140Layout(t *testing.T) {
	p := Params{
		PlayerPosition:  mgl32.Vec3{1, 2, 3},
		CameraPosition:  mgl32.Vec3{4, 5, 6},
		MinAlpha:        0.25,
		OcclusionRadius: 3,
		HeightThreshold: 1.5,
		FalloffSoftness: 2,
		Technique:       TechniqueAlphaBlend,
		Mode:            ModeHybrid,
		HybridFallback:  true,
		Region: Region{
			Min:    mgl32.Vec3{-1, 0, -2},
			Max:    mgl32.Vec3{7, 4, 9},
			Active: true,
		},
	}
	buf := p.MarshalStd140()
	if len(buf) != BlockSize {
		t.Fatalf("expected %d bytes, got %d", BlockSize, len(buf))
	}

	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	u := func(off int) uint32 { return binary.LittleEndian.Uint32(buf[off:]) }

	floats := map[int]float32{
		0: 1, 4: 2, 8: 3, 12: 0,
		16: 4, 20: 5, 24: 6, 28: 0,
		32: 0.25, 36: 3, 40: 1.5, 44: 2,
		64: -1, 68: 0, 72: -2, 76: 0,
		80: 7, 84: 4, 88: 9, 92: 1,
	}
	for off, want := range floats {
		if got := f(off); got != want {
			t.Errorf("offset %d: expected %f, got %f", off, want, got)
		}
	}
	if got := u(48); got != 1 {
		t.Errorf("technique: expected 1, got %d", got)
	}
	if got := u(52); got != 3 {
		t.Errorf("mode: expected 3, got %d", got)
	}
	if got := u(56); got != 1 {
		t.Errorf("flags: expected 1, got %d", got)
	}
	if got := u(60); got != 0 {
		t.Errorf("reserved: expected 0, got %d", got)
	}

	back, err := UnmarshalStd140(buf)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != p {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, p)
	}
}

func TestUnmarshalActiveFlagThreshold(t *testing.T) {
	p := Params{Region: Region{Max: mgl32.Vec3{1, 1, 1}}}
	buf := p.MarshalStd140()

	putFloat(buf[offRegionMax+12:], 0.5)
	if got, _ := UnmarshalStd140(buf); got.Region.Active {
		t.Errorf("flag 0.5 should read as inactive")
	}
	putFloat(buf[offRegionMax+12:], 0.51)
	if got, _ := UnmarshalStd140(buf); !got.Region.Active {
		t.Errorf("flag 0.51 should read as active")
	}
	// The min corner's fourth component carries no meaning.
	putFloat(buf[offRegionMax+12:], 0)
	putFloat(buf[offRegionMin+12:], 1)
	if got, _ := UnmarshalStd140(buf); got.Region.Active {
		t.Errorf("min corner flag must be ignored")
	}
}

func TestUnmarshalShortBuffer(t *testing.T) {
	if _, err := UnmarshalStd140(make([]byte, BlockSize-1)); err == nil {
		t.Errorf("expected error for short buffer")
	}
}
