package world

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene is a world together with a suggested player spawn.
type Scene struct {
	World *World
	Spawn mgl32.Vec3 // feet position
}

var houseSpawn = mgl32.Vec3{0.5, 1, 0.5}

// NewFlatScene returns a grass plane with its surface at y=1 and nothing on it
func NewFlatScene(halfSize int) Scene {
	w := New(-halfSize, -2, -halfSize, 2*halfSize, 24, 2*halfSize)
	w.Fill(-halfSize, -2, -halfSize, halfSize-1, -1, halfSize-1, BlockTypeDirt)
	w.Fill(-halfSize, 0, -halfSize, halfSize-1, 0, halfSize-1, BlockTypeGrass)
	return Scene{World: w, Spawn: mgl32.Vec3{0.5, 1, 0.5}}
}

// NewHouseScene returns the demo scene: a walled brick house with a door,
// glass windows and a two-layer roof on a grass plane, with a tree next to it.
// The player spawns inside the house.
func NewHouseScene() Scene {
	s := NewFlatScene(16)
	placeHouse(s.World)
	s.Spawn = houseSpawn
	return s
}

// placeHouse builds the house with its floor at y=0. Interior air is
// x,z in [-3,3], y in [1,4]; the roof slab sits at y=5.
func placeHouse(w *World) {
	w.Fill(-3, 0, -3, 3, 0, 3, BlockTypePlanks)
	for y := 1; y <= 4; y++ {
		for i := -4; i <= 4; i++ {
			w.Set(i, y, -4, BlockTypeBrick)
			w.Set(i, y, 4, BlockTypeBrick)
			w.Set(-4, y, i, BlockTypeBrick)
			w.Set(4, y, i, BlockTypeBrick)
		}
	}
	// Door in the +Z wall
	w.Set(0, 1, 4, BlockTypeAir)
	w.Set(0, 2, 4, BlockTypeAir)
	// Windows
	w.Set(-4, 2, 0, BlockTypeGlass)
	w.Set(-4, 3, 0, BlockTypeGlass)
	w.Set(4, 2, -1, BlockTypeGlass)
	w.Set(4, 2, 1, BlockTypeGlass)

	// Roof: a full slab over the walls and a smaller ridge layer on top
	w.Fill(-4, 5, -4, 4, 5, 4, BlockTypeRoof)
	w.Fill(-2, 6, -2, 2, 6, 2, BlockTypeRoof)

	// Furnishings
	w.Set(-3, 1, -3, BlockTypePlanks)
	w.Set(3, 1, -3, BlockTypeStone)

	// Tree
	w.Fill(8, 1, -6, 8, 4, -6, BlockTypePlanks)
	w.Fill(6, 5, -8, 10, 6, -4, BlockTypeLeaves)
	w.Fill(7, 7, -7, 9, 7, -5, BlockTypeLeaves)
}

// SceneNames lists the names accepted by LoadScene
var SceneNames = []string{"house", "hills", "flat"}

// LoadScene builds a demo scene by name. Seed only affects "hills".
func LoadScene(name string, seed int64) (Scene, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "house":
		return NewHouseScene(), nil
	case "hills":
		return NewHillScene(seed), nil
	case "flat":
		return NewFlatScene(16), nil
	}
	return Scene{}, fmt.Errorf("unknown scene %q (want one of %s)", name, strings.Join(SceneNames, ", "))
}
