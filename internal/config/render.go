package config

import "sync"

// RenderSettings holds render configuration shared by the GL viewer and the
// offline renderer.
type RenderSettings struct {
	mu          sync.RWMutex
	fogStart    float32
	fogEnd      float32
	samples     int // multisample count used for alpha-to-coverage
	workerCount int // 0 = one per CPU
	fpsLimit    int // 0 = uncapped
}

var globalRenderSettings = &RenderSettings{
	fogStart: 24,
	fogEnd:   64,
	samples:  4,
	fpsLimit: 120,
}

// GetFogRange returns the linear fog start and end distances
func GetFogRange() (start, end float32) {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fogStart, globalRenderSettings.fogEnd
}

// SetFogRange sets the linear fog distances. End is kept past start.
func SetFogRange(start, end float32) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if start < 0 {
		start = 0
	}
	if end <= start {
		end = start + 1
	}
	globalRenderSettings.fogStart = start
	globalRenderSettings.fogEnd = end
}

// GetSamples returns the multisample count
func GetSamples() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.samples
}

// SetSamples sets the multisample count, rounded down to 1, 2 or 4
func SetSamples(n int) {
	switch {
	case n >= 4:
		n = 4
	case n >= 2:
		n = 2
	default:
		n = 1
	}
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.samples = n
}

// GetWorkerCount returns the configured renderer worker count (0 = auto)
func GetWorkerCount() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.workerCount
}

// SetWorkerCount sets the renderer worker count; negative values mean auto
func SetWorkerCount(n int) {
	if n < 0 {
		n = 0
	}
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.workerCount = n
}

// GetFPSLimit returns the viewer frame cap (0 = uncapped)
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the viewer frame cap; non-positive values disable it
func SetFPSLimit(n int) {
	if n < 0 {
		n = 0
	}
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.fpsLimit = n
}
