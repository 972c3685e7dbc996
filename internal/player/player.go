// Package player holds the viewer's avatar and the third-person orbit camera
// that looks at it. It has no window or GL dependency; the viewer feeds it
// an Input each frame.
package player

import (
	"voxfade/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	PlayerEyeHeight = 1.62

	Gravity          = 32.0
	TerminalVelocity = -78.4

	WalkSpeed       = 4.3
	SprintSpeed     = 5.6
	JumpVelocity    = 9.4
	GroundAccel     = 40.0
	AirAccel        = 8.0
	GroundSnapDelta = 0.08
)

// Input is one frame of movement intent. Forward and Strafe are in [-1,1],
// relative to the camera's heading.
type Input struct {
	Forward float32
	Strafe  float32
	Jump    bool
	Sprint  bool
}

type Player struct {
	Position mgl32.Vec3 // feet
	Velocity mgl32.Vec3
	OnGround bool

	Camera OrbitCamera

	World *world.World
}

// New places a player at spawn with the default camera
func New(w *world.World, spawn mgl32.Vec3) *Player {
	return &Player{
		Position: spawn,
		Camera:   DefaultOrbitCamera(),
		World:    w,
	}
}

// Head returns the point the camera orbits
func (p *Player) Head() mgl32.Vec3 {
	return p.Position.Add(mgl32.Vec3{0, PlayerEyeHeight, 0})
}

// Eye returns the camera position for the current orbit
func (p *Player) Eye() mgl32.Vec3 {
	return p.Camera.Eye(p.Head())
}
