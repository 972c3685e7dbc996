package config

import (
	"sync"

	"voxfade/internal/occlusion"
)

// OcclusionSettings holds the user-facing occlusion configuration. The frame
// builder snapshots it once per frame.
type OcclusionSettings struct {
	mu              sync.RWMutex
	mode            occlusion.Mode
	technique       occlusion.Technique
	minAlpha        float32
	radius          float32
	heightThreshold float32
	falloffSoftness float32
	hybridFallback  bool
}

// Occlusion is a read-only copy of the settings.
type Occlusion struct {
	Mode            occlusion.Mode
	Technique       occlusion.Technique
	MinAlpha        float32
	Radius          float32
	HeightThreshold float32
	FalloffSoftness float32
	HybridFallback  bool
}

var globalOcclusion = newOcclusionSettings()

func newOcclusionSettings() *OcclusionSettings {
	d := occlusion.DefaultParams()
	return &OcclusionSettings{
		mode:            d.Mode,
		technique:       d.Technique,
		minAlpha:        d.MinAlpha,
		radius:          d.OcclusionRadius,
		heightThreshold: d.HeightThreshold,
		falloffSoftness: d.FalloffSoftness,
	}
}

// GetOcclusion returns a snapshot of the current settings
func GetOcclusion() Occlusion {
	s := globalOcclusion
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Occlusion{
		Mode:            s.mode,
		Technique:       s.technique,
		MinAlpha:        s.minAlpha,
		Radius:          s.radius,
		HeightThreshold: s.heightThreshold,
		FalloffSoftness: s.falloffSoftness,
		HybridFallback:  s.hybridFallback,
	}
}

// ResetOcclusion restores the defaults
func ResetOcclusion() {
	fresh := newOcclusionSettings()
	s := globalOcclusion
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = fresh.mode
	s.technique = fresh.technique
	s.minAlpha = fresh.minAlpha
	s.radius = fresh.radius
	s.heightThreshold = fresh.heightThreshold
	s.falloffSoftness = fresh.falloffSoftness
	s.hybridFallback = false
}

// SetMode sets the occlusion strategy. Unknown values fall back to none.
func SetMode(m occlusion.Mode) {
	if m >= occlusion.ModeCount {
		m = occlusion.ModeNone
	}
	globalOcclusion.mu.Lock()
	defer globalOcclusion.mu.Unlock()
	globalOcclusion.mode = m
}

// CycleMode advances to the next strategy and returns it
func CycleMode() occlusion.Mode {
	globalOcclusion.mu.Lock()
	defer globalOcclusion.mu.Unlock()
	globalOcclusion.mode = (globalOcclusion.mode + 1) % occlusion.ModeCount
	return globalOcclusion.mode
}

// SetTechnique sets the transparency technique. Unknown values fall back to dithering.
func SetTechnique(t occlusion.Technique) {
	if t > occlusion.TechniqueAlphaBlend {
		t = occlusion.TechniqueDithered
	}
	globalOcclusion.mu.Lock()
	defer globalOcclusion.mu.Unlock()
	globalOcclusion.technique = t
}

// CycleTechnique toggles between dithering and blending and returns the new value
func CycleTechnique() occlusion.Technique {
	globalOcclusion.mu.Lock()
	defer globalOcclusion.mu.Unlock()
	if globalOcclusion.technique == occlusion.TechniqueDithered {
		globalOcclusion.technique = occlusion.TechniqueAlphaBlend
	} else {
		globalOcclusion.technique = occlusion.TechniqueDithered
	}
	return globalOcclusion.technique
}

// SetMinAlpha sets the transparency floor
func SetMinAlpha(a float32) {
	// Clamp to [0,1]
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	globalOcclusion.mu.Lock()
	defer globalOcclusion.mu.Unlock()
	globalOcclusion.minAlpha = a
}

// SetRadius sets the horizontal sightline capture radius
func SetRadius(r float32) {
	globalOcclusion.mu.Lock()
	defer globalOcclusion.mu.Unlock()
	globalOcclusion.radius = nonNegative(r)
}

// SetHeightThreshold sets how far above the player the fade may begin
func SetHeightThreshold(h float32) {
	globalOcclusion.mu.Lock()
	defer globalOcclusion.mu.Unlock()
	globalOcclusion.heightThreshold = nonNegative(h)
}

// SetFalloffSoftness sets the vertical ramp length
func SetFalloffSoftness(s float32) {
	globalOcclusion.mu.Lock()
	defer globalOcclusion.mu.Unlock()
	globalOcclusion.falloffSoftness = nonNegative(s)
}

// SetHybridFallback enables the analytic fade outside the region in hybrid mode
func SetHybridFallback(enabled bool) {
	globalOcclusion.mu.Lock()
	defer globalOcclusion.mu.Unlock()
	globalOcclusion.hybridFallback = enabled
}

func nonNegative(v float32) float32 {
	if v < 0 || v != v {
		return 0
	}
	return v
}
