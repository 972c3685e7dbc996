package physics

import (
	"math"

	"voxfade/internal/profiling"
	"voxfade/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 5.0
)

// Hit is one solid block entered by a ray
type Hit struct {
	Block    [3]int
	Type     world.BlockType
	Face     world.BlockFace // face the ray entered through
	Distance float32         // along the normalized direction
	Point    mgl32.Vec3
}

// Normal returns the outward normal of the entered face
func (h Hit) Normal() mgl32.Vec3 {
	return h.Face.Normal()
}

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int
	Face             world.BlockFace
	Distance         float32
	Hit              bool
}

var inf = float32(math.Inf(1))

// Traverse walks the grid cells along a ray with a 3D DDA and calls visit for
// every solid block it enters, nearest first, until visit returns false or the
// ray passes maxDist. The block containing the origin is never reported.
func Traverse(origin, direction mgl32.Vec3, maxDist float32, w *world.World, visit func(Hit) bool) {
	l := direction.Len()
	if l == 0 || maxDist <= 0 || l != l {
		return
	}
	dir := direction.Mul(1 / l)
	cell := world.BlockAt(origin)
	min, max := w.Bounds()

	var step [3]int
	var tMax, tDelta [3]float32
	for i := 0; i < 3; i++ {
		switch {
		case dir[i] > 0:
			step[i] = 1
			tDelta[i] = 1 / dir[i]
			tMax[i] = (float32(cell[i]+1) - origin[i]) / dir[i]
		case dir[i] < 0:
			step[i] = -1
			tDelta[i] = -1 / dir[i]
			tMax[i] = (float32(cell[i]) - origin[i]) / dir[i]
		default:
			tMax[i], tDelta[i] = inf, inf
		}
	}

	for {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t := tMax[axis]
		if t > maxDist {
			return
		}
		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]

		// Nothing beyond the grid can be hit once we leave it
		if (step[axis] < 0 && cell[axis] < min[axis]) || (step[axis] > 0 && cell[axis] >= max[axis]) {
			return
		}

		b := w.Get(cell[0], cell[1], cell[2])
		if b == world.BlockTypeAir {
			continue
		}
		var n [3]int
		n[axis] = -step[axis]
		hit := Hit{
			Block:    cell,
			Type:     b,
			Face:     world.FaceFromNormal(n[0], n[1], n[2]),
			Distance: t,
			Point:    origin.Add(dir.Mul(t)),
		}
		if !visit(hit) {
			return
		}
	}
}

// Raycast returns the first solid block along the ray between minDist and maxDist
func Raycast(start mgl32.Vec3, direction mgl32.Vec3, minDist, maxDist float32, w *world.World) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	result := RaycastResult{Hit: false}

	Traverse(start, direction, maxDist, w, func(h Hit) bool {
		if h.Distance < minDist {
			return true
		}
		n := world.FaceNormals[h.Face]
		result.HitPosition = h.Block
		result.AdjacentPosition = [3]int{h.Block[0] + n[0], h.Block[1] + n[1], h.Block[2] + n[2]}
		result.Face = h.Face
		result.Distance = h.Distance
		result.Hit = true
		return false
	})

	return result
}
