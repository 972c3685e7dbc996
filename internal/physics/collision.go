package physics

import (
	"math"

	"voxfade/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// PlayerHalfWidth is half the horizontal extent of the player's bounding box
	PlayerHalfWidth = 0.3
	PlayerHeight    = 1.8
)

// Collides reports whether a player box with its feet at pos overlaps any solid block
func Collides(pos mgl32.Vec3, playerHeight float32, w *world.World) bool {
	minX := floorInt(pos.X() - PlayerHalfWidth)
	maxX := floorInt(pos.X() + PlayerHalfWidth)
	minY := floorInt(pos.Y())
	maxY := floorInt(pos.Y() + playerHeight)
	minZ := floorInt(pos.Z() - PlayerHalfWidth)
	maxZ := floorInt(pos.Z() + PlayerHalfWidth)

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if w.IsAir(x, y, z) {
					continue
				}
				// Block occupies [x,x+1) on each axis; touching is not overlapping
				if pos.X()-PlayerHalfWidth < float32(x+1) && pos.X()+PlayerHalfWidth > float32(x) &&
					pos.Y() < float32(y+1) && pos.Y()+playerHeight > float32(y) &&
					pos.Z()-PlayerHalfWidth < float32(z+1) && pos.Z()+PlayerHalfWidth > float32(z) {
					return true
				}
			}
		}
	}
	return false
}

// FindGroundLevel returns the top surface of the highest solid block under the
// player's footprint at or below fromY. If there is none, minY of the world is returned.
func FindGroundLevel(x, z, fromY float32, w *world.World) float32 {
	minX := floorInt(x - PlayerHalfWidth)
	maxX := floorInt(x + PlayerHalfWidth)
	minZ := floorInt(z - PlayerHalfWidth)
	maxZ := floorInt(z + PlayerHalfWidth)
	lo, _ := w.Bounds()

	ground := float32(lo[1])
	for bx := minX; bx <= maxX; bx++ {
		for bz := minZ; bz <= maxZ; bz++ {
			for by := floorInt(fromY) - 1; by >= lo[1]; by-- {
				if w.IsSolid(bx, by, bz) {
					if top := float32(by + 1); top > ground {
						ground = top
					}
					break
				}
			}
		}
	}
	return ground
}

func floorInt(v float32) int {
	return int(math.Floor(float64(v)))
}
