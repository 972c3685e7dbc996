package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// World is a bounded voxel grid. The block at integer coordinates (x,y,z)
// occupies the unit cube [x,x+1) x [y,y+1) x [z,z+1).
type World struct {
	minX, minY, minZ    int
	sizeX, sizeY, sizeZ int
	blocks              []BlockType
}

// New creates an empty world covering [min, min+size) on each axis
func New(minX, minY, minZ, sizeX, sizeY, sizeZ int) *World {
	if sizeX < 0 {
		sizeX = 0
	}
	if sizeY < 0 {
		sizeY = 0
	}
	if sizeZ < 0 {
		sizeZ = 0
	}
	return &World{
		minX: minX, minY: minY, minZ: minZ,
		sizeX: sizeX, sizeY: sizeY, sizeZ: sizeZ,
		blocks: make([]BlockType, sizeX*sizeY*sizeZ),
	}
}

func (w *World) index(x, y, z int) (int, bool) {
	ix, iy, iz := x-w.minX, y-w.minY, z-w.minZ
	if ix < 0 || ix >= w.sizeX || iy < 0 || iy >= w.sizeY || iz < 0 || iz >= w.sizeZ {
		return 0, false
	}
	return (iy*w.sizeZ+iz)*w.sizeX + ix, true
}

// Get returns the block at the given coordinates; outside the bounds is air
func (w *World) Get(x, y, z int) BlockType {
	i, ok := w.index(x, y, z)
	if !ok {
		return BlockTypeAir
	}
	return w.blocks[i]
}

// Set stores a block; writes outside the bounds are ignored
func (w *World) Set(x, y, z int, b BlockType) {
	i, ok := w.index(x, y, z)
	if !ok {
		return
	}
	w.blocks[i] = b
}

// Fill sets every block in the inclusive box [x0..x1] x [y0..y1] x [z0..z1]
func (w *World) Fill(x0, y0, z0, x1, y1, z1 int, b BlockType) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if z0 > z1 {
		z0, z1 = z1, z0
	}
	for y := y0; y <= y1; y++ {
		for z := z0; z <= z1; z++ {
			for x := x0; x <= x1; x++ {
				w.Set(x, y, z, b)
			}
		}
	}
}

// IsAir reports whether the block at the given coordinates is empty
func (w *World) IsAir(x, y, z int) bool {
	return w.Get(x, y, z) == BlockTypeAir
}

// IsSolid reports whether the block at the given coordinates is not air
func (w *World) IsSolid(x, y, z int) bool {
	return w.Get(x, y, z) != BlockTypeAir
}

// Bounds returns the inclusive minimum and exclusive maximum block coordinates
func (w *World) Bounds() (min, max [3]int) {
	return [3]int{w.minX, w.minY, w.minZ},
		[3]int{w.minX + w.sizeX, w.minY + w.sizeY, w.minZ + w.sizeZ}
}

// Contains reports whether the block coordinates are inside the grid
func (w *World) Contains(x, y, z int) bool {
	_, ok := w.index(x, y, z)
	return ok
}

// BlockAt returns the coordinates of the block containing a world position
func BlockAt(p mgl32.Vec3) [3]int {
	return [3]int{floor(p.X()), floor(p.Y()), floor(p.Z())}
}

func floor(v float32) int {
	i := int(v)
	if float32(i) > v {
		i--
	}
	return i
}

// ForEachSolid calls fn for every non-air block
func (w *World) ForEachSolid(fn func(x, y, z int, b BlockType)) {
	for iy := 0; iy < w.sizeY; iy++ {
		for iz := 0; iz < w.sizeZ; iz++ {
			row := (iy*w.sizeZ + iz) * w.sizeX
			for ix := 0; ix < w.sizeX; ix++ {
				if b := w.blocks[row+ix]; b != BlockTypeAir {
					fn(ix+w.minX, iy+w.minY, iz+w.minZ, b)
				}
			}
		}
	}
}
