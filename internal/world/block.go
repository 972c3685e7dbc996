package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

type BlockType uint16

const (
	BlockTypeAir BlockType = iota
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeStone
	BlockTypePlanks
	BlockTypeBrick
	BlockTypeRoof
	BlockTypeGlass
	BlockTypeLeaves
)

// BlockSize is the edge length of one block in world units
const BlockSize = 1.0

// BlockFace identifies a face of a block
type BlockFace int

const (
	FaceNorth BlockFace = iota // +Z
	FaceSouth                  // -Z
	FaceEast                   // +X
	FaceWest                   // -X
	FaceTop                    // +Y
	FaceBottom                 // -Y
)

// FaceNormals maps each face to its outward unit normal
var FaceNormals = [6][3]int{
	FaceNorth:  {0, 0, 1},
	FaceSouth:  {0, 0, -1},
	FaceEast:   {1, 0, 0},
	FaceWest:   {-1, 0, 0},
	FaceTop:    {0, 1, 0},
	FaceBottom: {0, -1, 0},
}

// Normal returns the outward normal of the face
func (f BlockFace) Normal() mgl32.Vec3 {
	n := FaceNormals[f]
	return mgl32.Vec3{float32(n[0]), float32(n[1]), float32(n[2])}
}

// FaceFromNormal returns the face whose outward normal is (nx,ny,nz)
func FaceFromNormal(nx, ny, nz int) BlockFace {
	switch {
	case nz > 0:
		return FaceNorth
	case nz < 0:
		return FaceSouth
	case nx > 0:
		return FaceEast
	case nx < 0:
		return FaceWest
	case ny > 0:
		return FaceTop
	default:
		return FaceBottom
	}
}

// Surface describes how a block looks
type Surface struct {
	Color mgl32.Vec4
	// Cutout surfaces are alpha-tested against Cutoff rather than being opaque.
	Cutout bool
	Cutoff float32
}

var palette = map[BlockType]Surface{
	BlockTypeGrass:  {Color: mgl32.Vec4{0.36, 0.62, 0.25, 1}},
	BlockTypeDirt:   {Color: mgl32.Vec4{0.47, 0.33, 0.21, 1}},
	BlockTypeStone:  {Color: mgl32.Vec4{0.52, 0.52, 0.54, 1}},
	BlockTypePlanks: {Color: mgl32.Vec4{0.70, 0.55, 0.33, 1}},
	BlockTypeBrick:  {Color: mgl32.Vec4{0.62, 0.28, 0.22, 1}},
	BlockTypeRoof:   {Color: mgl32.Vec4{0.35, 0.18, 0.14, 1}},
	BlockTypeGlass:  {Color: mgl32.Vec4{0.75, 0.88, 0.95, 0.35}, Cutout: true, Cutoff: 0.2},
	BlockTypeLeaves: {Color: mgl32.Vec4{0.22, 0.48, 0.18, 0.9}, Cutout: true, Cutoff: 0.5},
}

// GetSurface returns the surface of a block type
func GetSurface(b BlockType) Surface {
	if s, ok := palette[b]; ok {
		return s
	}
	return Surface{Color: mgl32.Vec4{0.5, 0.5, 0.5, 1}} // Gray (fallback)
}
