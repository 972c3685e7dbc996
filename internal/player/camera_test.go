package player

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestOrbitEyeBehindAndAbove(t *testing.T) {
	c := OrbitCamera{Yaw: 0, Pitch: 90, Distance: 10}
	eye := c.Eye(mgl32.Vec3{1, 2, 3})
	if !eye.ApproxEqualThreshold(mgl32.Vec3{1, 12, 3}, 1e-4) {
		t.Errorf("Expected eye straight above, got %v", eye)
	}

	c = OrbitCamera{Yaw: 0, Pitch: 0, Distance: 5}
	eye = c.Eye(mgl32.Vec3{})
	// Facing -Z, so the camera sits at +Z
	if !eye.ApproxEqualThreshold(mgl32.Vec3{0, 0, 5}, 1e-4) {
		t.Errorf("Expected eye behind the target, got %v", eye)
	}
}

func TestOrbitDistanceIsKept(t *testing.T) {
	c := OrbitCamera{Yaw: 37, Pitch: 41, Distance: 9}
	target := mgl32.Vec3{4, 1, -2}
	d := c.Eye(target).Sub(target).Len()
	if math.Abs(float64(d-9)) > 1e-4 {
		t.Errorf("Expected distance 9, got %f", d)
	}
}

func TestMouseMovementClamps(t *testing.T) {
	c := DefaultOrbitCamera()
	c.HandleMouseMovement(100, 100)
	if c.Pitch != 55 || c.Yaw != 0 {
		t.Errorf("Expected first sample to only record the cursor, got yaw %f pitch %f", c.Yaw, c.Pitch)
	}
	c.HandleMouseMovement(200, 10000)
	if c.Pitch != MaxPitch {
		t.Errorf("Expected pitch clamped to %f, got %f", MaxPitch, c.Pitch)
	}
	if math.Abs(c.Yaw-15) > 1e-9 {
		t.Errorf("Expected yaw 15, got %f", c.Yaw)
	}

	c.Scroll(100)
	if c.Distance != MinDistance {
		t.Errorf("Expected distance clamped to %f, got %f", MinDistance, c.Distance)
	}
}
