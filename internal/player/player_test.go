package player

import (
	"math"
	"testing"

	"voxfade/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const frame = 1.0 / 60.0

func run(p *Player, in Input, frames int) {
	for i := 0; i < frames; i++ {
		p.Update(frame, in)
	}
}

func TestPlayerFallsToGround(t *testing.T) {
	s := world.NewFlatScene(8)
	p := New(s.World, mgl32.Vec3{0.5, 5, 0.5})
	run(p, Input{}, 120)

	if !p.OnGround {
		t.Error("Expected player on ground")
	}
	if math.Abs(float64(p.Position.Y()-1)) > 1e-4 {
		t.Errorf("Expected feet at y=1, got %f", p.Position.Y())
	}
	if p.Velocity.Y() != 0 {
		t.Errorf("Expected no vertical velocity, got %f", p.Velocity.Y())
	}
}

func TestPlayerWalksAlongHeading(t *testing.T) {
	s := world.NewFlatScene(16)
	p := New(s.World, s.Spawn)
	run(p, Input{}, 10)
	start := p.Position

	// Yaw 0 faces -Z
	run(p, Input{Forward: 1}, 60)
	d := p.Position.Sub(start)
	if d.Z() > -2 {
		t.Errorf("Expected to move toward -Z, moved %v", d)
	}
	if math.Abs(float64(d.X())) > 1e-3 {
		t.Errorf("Expected no sideways drift, moved %v", d)
	}

	start = p.Position
	run(p, Input{Strafe: 1}, 60)
	if p.Position.X()-start.X() < 1 {
		t.Errorf("Expected strafe toward +X, moved %v", p.Position.Sub(start))
	}
}

func TestPlayerBlockedByHouseWall(t *testing.T) {
	s := world.NewHouseScene()
	p := New(s.World, s.Spawn)
	// Face -X: the west wall is at x=-4
	p.Camera.Yaw = -90
	run(p, Input{Forward: 1}, 240)

	if p.Position.X() < -3+0.3-1e-3 {
		t.Errorf("Expected wall to stop the player at x=-2.7, got %f", p.Position.X())
	}
	if p.Position.X() > -2.6 {
		t.Errorf("Expected player to reach the wall, got %f", p.Position.X())
	}
	if p.Position.Y() != 1 {
		t.Errorf("Expected player to stay on the floor, got %f", p.Position.Y())
	}
}

func TestPlayerJump(t *testing.T) {
	s := world.NewFlatScene(8)
	p := New(s.World, s.Spawn)
	run(p, Input{}, 5)
	run(p, Input{Jump: true}, 1)
	if p.OnGround {
		t.Fatal("Expected player airborne after jump")
	}
	peak := p.Position.Y()
	for i := 0; i < 120; i++ {
		p.Update(frame, Input{})
		peak = max(peak, p.Position.Y())
	}
	if peak < 2 {
		t.Errorf("Expected jump to clear one block, peak %f", peak)
	}
	if !p.OnGround || p.Position.Y() != 1 {
		t.Errorf("Expected to land at y=1, got %f", p.Position.Y())
	}
}

func TestUpdateIgnoresZeroStep(t *testing.T) {
	s := world.NewFlatScene(8)
	p := New(s.World, mgl32.Vec3{0.5, 4, 0.5})
	p.Update(0, Input{Forward: 1})
	if p.Position != (mgl32.Vec3{0.5, 4, 0.5}) {
		t.Errorf("Expected no movement, got %v", p.Position)
	}
}
