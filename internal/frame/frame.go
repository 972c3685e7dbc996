// Package frame builds the per-frame occlusion parameter block from the
// user settings and the player's surroundings, and publishes it to the
// renderers.
package frame

import (
	"sync/atomic"

	"voxfade/internal/config"
	"voxfade/internal/interior"
	"voxfade/internal/logging"
	"voxfade/internal/occlusion"
	"voxfade/internal/profiling"
	"voxfade/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Detector finds the interior region around the player
type Detector func(w *world.World, player mgl32.Vec3) occlusion.Region

// Builder is the single writer of the parameter block. Renderers read the
// published block with Current.
type Builder struct {
	world  *world.World
	detect Detector

	current    atomic.Pointer[occlusion.Params]
	lastActive bool
	lastMode   occlusion.Mode
}

// NewBuilder returns a builder using the flood-fill interior detector
func NewBuilder(w *world.World) *Builder {
	opt := interior.DefaultOptions()
	return NewBuilderWithDetector(w, func(w *world.World, player mgl32.Vec3) occlusion.Region {
		return interior.Detect(w, player, opt)
	})
}

// NewBuilderWithDetector returns a builder with a custom detector
func NewBuilderWithDetector(w *world.World, d Detector) *Builder {
	b := &Builder{world: w, detect: d}
	p := occlusion.DefaultParams()
	b.current.Store(&p)
	b.lastMode = p.Mode
	return b
}

// Build snapshots the settings, runs interior detection when the selected
// mode needs it, publishes the result and returns it.
func (b *Builder) Build(player, camera mgl32.Vec3) occlusion.Params {
	defer profiling.Track("frame.Build")()

	s := config.GetOcclusion()
	p := occlusion.Params{
		PlayerPosition:  player,
		CameraPosition:  camera,
		MinAlpha:        s.MinAlpha,
		OcclusionRadius: s.Radius,
		HeightThreshold: s.HeightThreshold,
		FalloffSoftness: s.FalloffSoftness,
		Technique:       s.Technique,
		Mode:            s.Mode,
		HybridFallback:  s.HybridFallback,
	}
	if p.Mode.UsesRegion() && b.detect != nil && b.world != nil {
		p.Region = b.detect(b.world, player)
	}

	b.Publish(p)
	return p
}

// Publish replaces the current block
func (b *Builder) Publish(p occlusion.Params) {
	if p.Mode != b.lastMode {
		logging.Logger().Info("occlusion mode changed", "mode", p.Mode.String(), "technique", p.Technique.String())
		b.lastMode = p.Mode
	}
	if p.Region.Active != b.lastActive {
		logging.Logger().Debug("interior region", "active", p.Region.Active, "min", p.Region.Min, "max", p.Region.Max)
		b.lastActive = p.Region.Active
	}
	b.current.Store(&p)
}

// Current returns the last published block. Safe to call from any goroutine.
func (b *Builder) Current() occlusion.Params {
	return *b.current.Load()
}
