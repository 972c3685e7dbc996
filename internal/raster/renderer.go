// Package raster is a CPU reference renderer for voxel worlds. Each sample
// runs a depth prepass and a color pass over the blocks its ray enters, both
// through occlusion.Shade, so the two passes can be checked against each
// other.
package raster

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	"voxfade/internal/config"
	"voxfade/internal/logging"
	"voxfade/internal/meshing"
	"voxfade/internal/occlusion"
	"voxfade/internal/physics"
	"voxfade/internal/profiling"
	"voxfade/internal/shading"
	"voxfade/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

const (
	bandRows = 8
	// prepass decisions remembered per sample for the cross-pass check
	maxTracked = 32
)

// Options configures a Renderer
type Options struct {
	Width, Height int
	// Samples per pixel (1, 2 or 4). Zero uses the render settings.
	Samples int
	// Workers rendering row bands concurrently. Zero uses the render
	// settings, then one per CPU.
	Workers     int
	MaxDistance float32 // zero means 160
	// DrawPlayer adds the player's bounding box as an opaque marker. The
	// marker does not go through occlusion.
	DrawPlayer bool
	// Shading overrides the default pipeline. Its Eye is replaced by the
	// camera position.
	Shading *shading.Standard
}

// PlayerColor is the base color of the player marker
var PlayerColor = mgl32.Vec4{0.2, 0.35, 0.85, 1}

var samplePatterns = map[int][]mgl32.Vec2{
	1: {{0.5, 0.5}},
	2: {{0.25, 0.25}, {0.75, 0.75}},
	4: {{0.375, 0.125}, {0.875, 0.375}, {0.125, 0.625}, {0.625, 0.875}},
}

var ErrInvalidSize = errors.New("invalid frame size")

// Renderer renders frames with fixed options. It holds no per-frame state
// and can be shared.
type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

type scene struct {
	w       *world.World
	cam     Camera
	p       *occlusion.Params
	sh      shading.Standard
	width   int
	height  int
	pattern []mgl32.Vec2
	maxDist float32
	player  bool
}

// Render draws the world as seen by cam under the given parameter block.
// Row bands render concurrently; cancelling ctx aborts the remaining bands
// and returns the context error.
func (r *Renderer) Render(ctx context.Context, w *world.World, cam Camera, p *occlusion.Params) (*Frame, error) {
	defer profiling.Track("raster.Render")()

	width, height := r.opts.Width, r.opts.Height
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if w == nil || p == nil {
		return nil, errors.New("render: world and params are required")
	}

	s := &scene{
		w:       w,
		cam:     cam,
		p:       p,
		width:   width,
		height:  height,
		pattern: samplePatterns[normalizeSamples(r.opts.Samples)],
		maxDist: r.opts.MaxDistance,
		player:  r.opts.DrawPlayer,
	}
	if s.maxDist <= 0 {
		s.maxDist = 160
	}
	if r.opts.Shading != nil {
		s.sh = *r.opts.Shading
		s.sh.Eye = cam.Eye
	} else {
		s.sh = shading.NewStandard(cam.Eye)
	}

	workers := r.opts.Workers
	if workers <= 0 {
		workers = config.GetWorkerCount()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	frame := newFrame(width, height)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y0 := 0; y0 < height; y0 += bandRows {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			var st Stats
			for y := y0; y < min(y0+bandRows, height); y++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				for x := 0; x < width; x++ {
					frame.Pix[y*width+x] = s.pixel(x, y, &st)
				}
			}
			atomic.AddInt64(&frame.Stats.Samples, st.Samples)
			atomic.AddInt64(&frame.Stats.Fragments, st.Fragments)
			atomic.AddInt64(&frame.Stats.PrepassDiscards, st.PrepassDiscards)
			atomic.AddInt64(&frame.Stats.Mismatches, st.Mismatches)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	// The group's context is always done after Wait; only the caller's counts.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	if frame.Stats.Mismatches > 0 {
		logging.Logger().Warn("prepass and color pass disagree",
			"mismatches", frame.Stats.Mismatches, "mode", p.Mode.String(), "technique", p.Technique.String())
	}
	return frame, nil
}

func normalizeSamples(n int) int {
	if n <= 0 {
		n = config.GetSamples()
	}
	switch {
	case n >= 4:
		return 4
	case n >= 2:
		return 2
	default:
		return 1
	}
}

// pixel resolves all samples of a pixel by averaging
func (s *scene) pixel(x, y int, st *Stats) mgl32.Vec4 {
	var sum mgl32.Vec3
	for _, o := range s.pattern {
		sum = sum.Add(s.sample(x, y, o, st))
	}
	avg := sum.Mul(1 / float32(len(s.pattern)))
	return avg.Vec4(1)
}

func (s *scene) sample(x, y int, offset mgl32.Vec2, st *Stats) mgl32.Vec3 {
	st.Samples++
	eye := s.cam.Eye
	dir := s.cam.Ray(float32(x)+offset.X(), float32(y)+offset.Y(), s.width, s.height)
	screen := s.screenPos(x, y)

	limit := s.maxDist
	tPlayer, nPlayer, hitPlayer := s.playerHit(dir)
	if hitPlayer && tPlayer < limit {
		limit = tPlayer
	} else {
		hitPlayer = false
	}

	// Depth prepass: the first opaque surviving fragment sets the depth.
	// Translucent survivors do not write depth.
	var decisions [maxTracked]bool
	n := 0
	depth := limit
	opaque := false
	physics.Traverse(eye, dir, limit, s.w, func(h physics.Hit) bool {
		if !meshing.FaceVisible(s.w, h.Block[0], h.Block[1], h.Block[2], h.Face) {
			return true
		}
		out := occlusion.Shade(s.fragment(h, dir, screen, occlusion.PassPrepass), s.p, s.sh)
		if n < maxTracked {
			decisions[n] = out.Discarded
		}
		n++
		if out.Discarded {
			st.PrepassDiscards++
			return true
		}
		if out.Alpha >= 1 {
			depth = h.Distance
			opaque = true
			return false
		}
		return true
	})

	// Color pass over everything up to the depth, composited front to back
	var rgb mgl32.Vec3
	var alpha float32
	i := 0
	physics.Traverse(eye, dir, depth, s.w, func(h physics.Hit) bool {
		if !meshing.FaceVisible(s.w, h.Block[0], h.Block[1], h.Block[2], h.Face) {
			return true
		}
		out := occlusion.Shade(s.fragment(h, dir, screen, occlusion.PassColor), s.p, s.sh)
		st.Fragments++
		if i < n && i < maxTracked && out.Discarded != decisions[i] {
			st.Mismatches++
		}
		i++
		if out.Discarded {
			return true
		}
		a := clamp01(out.Alpha)
		rgb = rgb.Add(out.Color.Vec3().Mul((1 - alpha) * a))
		alpha += (1 - alpha) * a
		return alpha < 0.999
	})
	if opaque || alpha >= 0.999 {
		return rgb
	}

	var bg mgl32.Vec3
	if hitPlayer {
		bg = s.shadePlayer(eye.Add(dir.Mul(tPlayer)), nPlayer)
	} else {
		bg = s.sh.Resolve(s.sh.Sky(dir))
	}
	return rgb.Add(bg.Mul(1 - alpha))
}

// screenPos maps a top-down pixel to the window coordinates the GL fragment
// stage sees: the pixel center with rows counted up from the bottom edge.
func (s *scene) screenPos(x, y int) mgl32.Vec2 {
	return mgl32.Vec2{float32(x) + 0.5, float32(s.height-1-y) + 0.5}
}

func (s *scene) fragment(h physics.Hit, dir mgl32.Vec3, screen mgl32.Vec2, pass occlusion.Pass) occlusion.Fragment {
	surf := world.GetSurface(h.Type)
	m := occlusion.Material{BaseColor: surf.Color, AlphaMode: occlusion.AlphaOpaque}
	if surf.Cutout {
		m.AlphaMode = occlusion.AlphaMask
		m.AlphaCutoff = surf.Cutoff
	}
	n := h.Normal()
	return occlusion.Fragment{
		WorldPos:    h.Point,
		Normal:      n,
		ScreenPos:   screen,
		FrontFacing: n.Dot(dir) < 0,
		Pass:        pass,
		Material:    m,
	}
}

func (s *scene) shadePlayer(pos, normal mgl32.Vec3) mgl32.Vec3 {
	in := occlusion.LightingInput{
		Material:    occlusion.Material{BaseColor: PlayerColor},
		WorldPos:    pos,
		Normal:      normal,
		FrontFacing: true,
	}
	return s.sh.PostProcess(in, s.sh.ApplyLighting(in)).Vec3()
}

// playerHit intersects the ray with the player's bounding box (slab test)
func (s *scene) playerHit(dir mgl32.Vec3) (float32, mgl32.Vec3, bool) {
	if !s.player {
		return 0, mgl32.Vec3{}, false
	}
	pos := s.p.PlayerPosition
	lo := pos.Sub(mgl32.Vec3{physics.PlayerHalfWidth, 0, physics.PlayerHalfWidth})
	hi := pos.Add(mgl32.Vec3{physics.PlayerHalfWidth, physics.PlayerHeight, physics.PlayerHalfWidth})
	eye := s.cam.Eye

	tmin, tmax := float32(0), float32(math.Inf(1))
	axis, sign := -1, float32(0)
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if eye[i] < lo[i] || eye[i] > hi[i] {
				return 0, mgl32.Vec3{}, false
			}
			continue
		}
		t1 := (lo[i] - eye[i]) / dir[i]
		t2 := (hi[i] - eye[i]) / dir[i]
		n := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			n = 1
		}
		if t1 > tmin {
			tmin, axis, sign = t1, i, n
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, mgl32.Vec3{}, false
		}
	}
	if axis < 0 {
		// eye inside the box
		return 0, mgl32.Vec3{}, false
	}
	var normal mgl32.Vec3
	normal[axis] = sign
	return tmin, normal, true
}
