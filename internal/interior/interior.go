// Package interior finds the roofed room the player stands in.
package interior

import (
	"voxfade/internal/occlusion"
	"voxfade/internal/physics"
	"voxfade/internal/profiling"
	"voxfade/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Options bounds the search
type Options struct {
	// MaxCeiling is how far above the floor a roof is looked for.
	MaxCeiling float32
	// MaxCells caps the flood fill; larger roofed areas are not treated as rooms.
	MaxCells int
}

func DefaultOptions() Options {
	return Options{MaxCeiling: 12, MaxCells: 1024}
}

var up = mgl32.Vec3{0, 1, 0}

type cell struct{ x, z int }

// Detect flood-fills the roofed floor area around the player at foot level and
// returns its bounds. The region starts just below the lowest ceiling so that
// walls and furniture stay while everything overhead is cut. It is inactive
// when the player is not under a roof, when the fill is too large, or when the
// player's own cell touches open sky.
func Detect(w *world.World, player mgl32.Vec3, opt Options) occlusion.Region {
	defer profiling.Track("interior.Detect")()

	if opt.MaxCells <= 0 || opt.MaxCeiling <= 0 {
		return occlusion.Region{}
	}
	feet := world.BlockAt(player.Add(mgl32.Vec3{0, 0.01, 0}))
	y := feet[1]
	if w.IsSolid(feet[0], y, feet[2]) {
		return occlusion.Region{}
	}

	type roof struct {
		y  int
		ok bool
	}
	ceilings := make(map[cell]roof)
	ceiling := func(c cell) (int, bool) {
		if r, ok := ceilings[c]; ok {
			return r.y, r.ok
		}
		origin := mgl32.Vec3{float32(c.x) + 0.5, float32(y) + 0.5, float32(c.z) + 0.5}
		hit := physics.Raycast(origin, up, 0, opt.MaxCeiling, w)
		r := roof{y: hit.HitPosition[1], ok: hit.Hit}
		ceilings[c] = r
		return r.y, r.ok
	}
	open := func(c cell) bool {
		if w.IsSolid(c.x, y, c.z) {
			return false
		}
		_, roofed := ceiling(c)
		return !roofed
	}
	// A cell belongs to the room when it is roofed air and none of its
	// horizontal neighbours is open sky
	inside := func(c cell) bool {
		if w.IsSolid(c.x, y, c.z) {
			return false
		}
		if _, roofed := ceiling(c); !roofed {
			return false
		}
		for _, n := range neighbours(c) {
			if open(n) {
				return false
			}
		}
		return true
	}

	start := cell{feet[0], feet[2]}
	if !inside(start) {
		return occlusion.Region{}
	}

	visited := map[cell]bool{start: true}
	queue := []cell{start}
	minX, maxX, minZ, maxZ := start.x, start.x, start.z, start.z
	lowest, _ := ceiling(start)

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		minX, maxX = min(minX, c.x), max(maxX, c.x)
		minZ, maxZ = min(minZ, c.z), max(maxZ, c.z)
		if h, _ := ceiling(c); h < lowest {
			lowest = h
		}

		for _, n := range neighbours(c) {
			if visited[n] || !inside(n) {
				continue
			}
			visited[n] = true
			if len(visited) > opt.MaxCells {
				return occlusion.Region{}
			}
			queue = append(queue, n)
		}
	}

	// Top of the tallest roof stack above the footprint
	top := lowest + 1
	for c := range visited {
		h, _ := ceiling(c)
		for w.IsSolid(c.x, h, c.z) {
			h++
		}
		top = max(top, h)
	}

	return occlusion.Region{
		Min:    mgl32.Vec3{float32(minX), float32(lowest) - 2*occlusion.RegionEpsilon, float32(minZ)},
		Max:    mgl32.Vec3{float32(maxX + 1), float32(top), float32(maxZ + 1)},
		Active: true,
	}
}

func neighbours(c cell) [4]cell {
	return [4]cell{{c.x + 1, c.z}, {c.x - 1, c.z}, {c.x, c.z + 1}, {c.x, c.z - 1}}
}
