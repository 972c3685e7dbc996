package player

import (
	"math"

	"voxfade/internal/physics"
	"voxfade/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Update advances the player by dt seconds. Collisions are resolved one axis
// at a time, vertical first, so walls never lift the player.
func (p *Player) Update(dt float64, in Input) {
	defer profiling.Track("player.Update")()
	if dt <= 0 || p.World == nil {
		return
	}
	step := float32(dt)

	// Desired horizontal velocity from the camera heading
	fx, fz := p.Camera.Heading()
	sx, sz := -fz, fx
	wx := fx*in.Forward + sx*in.Strafe
	wz := fz*in.Forward + sz*in.Strafe
	if l := float32(math.Hypot(float64(wx), float64(wz))); l > 1 {
		wx, wz = wx/l, wz/l
	}
	speed := float32(WalkSpeed)
	if in.Sprint {
		speed = SprintSpeed
	}
	wx, wz = wx*speed, wz*speed

	accel := float32(AirAccel)
	if p.OnGround {
		accel = GroundAccel
	}
	p.Velocity[0] = approach(p.Velocity[0], wx, accel*step)
	p.Velocity[2] = approach(p.Velocity[2], wz, accel*step)

	if in.Jump && p.OnGround {
		p.Velocity[1] = JumpVelocity
		p.OnGround = false
	}
	p.Velocity[1] -= Gravity * step
	if p.Velocity[1] < TerminalVelocity {
		p.Velocity[1] = TerminalVelocity
	}

	p.moveY(p.Velocity[1] * step)
	p.moveHorizontal(0, p.Velocity[0]*step)
	p.moveHorizontal(2, p.Velocity[2]*step)
	p.settle()
}

func (p *Player) moveY(dy float32) {
	next := p.Position
	next[1] += dy
	if !physics.Collides(next, physics.PlayerHeight, p.World) {
		p.Position = next
		p.OnGround = false
		return
	}
	if dy <= 0 {
		p.Position[1] = physics.FindGroundLevel(p.Position.X(), p.Position.Z(), p.Position.Y(), p.World)
		p.OnGround = true
	}
	p.Velocity[1] = 0
}

func (p *Player) moveHorizontal(axis int, d float32) {
	if d == 0 {
		return
	}
	next := p.Position
	next[axis] += d
	if physics.Collides(next, physics.PlayerHeight, p.World) {
		p.Velocity[axis] = 0
		return
	}
	p.Position = next
}

// settle snaps to the ground when hovering just above it
func (p *Player) settle() {
	if p.Velocity[1] > 0 {
		return
	}
	ground := physics.FindGroundLevel(p.Position.X(), p.Position.Z(), p.Position.Y()+GroundSnapDelta, p.World)
	if delta := p.Position.Y() - ground; delta >= -0.001 && delta <= GroundSnapDelta {
		p.Position[1] = ground
		p.Velocity[1] = 0
		p.OnGround = true
	}
}

func approach(v, target, maxDelta float32) float32 {
	switch {
	case v < target:
		return mgl32.Clamp(v+maxDelta, v, target)
	case v > target:
		return mgl32.Clamp(v-maxDelta, target, v)
	}
	return v
}
