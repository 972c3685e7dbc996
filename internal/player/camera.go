package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera is a third-person camera circling the player's head. Yaw 0
// looks along -Z; positive pitch looks down.
type OrbitCamera struct {
	Yaw      float64 // degrees
	Pitch    float64 // degrees
	Distance float32

	LastMouseX float64
	LastMouseY float64
	FirstMouse bool
}

const (
	MinPitch    = -10.0
	MaxPitch    = 89.0
	MinDistance = 2.0
	MaxDistance = 40.0

	MouseSensitivity = 0.15
)

// DefaultOrbitCamera looks down at the player from behind and above
func DefaultOrbitCamera() OrbitCamera {
	return OrbitCamera{Yaw: 0, Pitch: 55, Distance: 14, FirstMouse: true}
}

// HandleMouseMovement orbits by the cursor delta since the last call
func (c *OrbitCamera) HandleMouseMovement(xpos, ypos float64) {
	if c.FirstMouse {
		c.LastMouseX = xpos
		c.LastMouseY = ypos
		c.FirstMouse = false
		return
	}
	dx := xpos - c.LastMouseX
	dy := ypos - c.LastMouseY
	c.LastMouseX = xpos
	c.LastMouseY = ypos

	c.Yaw += dx * MouseSensitivity
	c.Pitch += dy * MouseSensitivity
	c.clamp()
}

// Scroll moves the camera toward or away from the player
func (c *OrbitCamera) Scroll(offset float64) {
	c.Distance -= float32(offset)
	c.clamp()
}

func (c *OrbitCamera) clamp() {
	c.Pitch = math.Max(MinPitch, math.Min(MaxPitch, c.Pitch))
	c.Distance = mgl32.Clamp(c.Distance, MinDistance, MaxDistance)
	c.Yaw = math.Mod(c.Yaw, 360)
}

// Heading returns the unit ground-plane direction the camera faces
func (c *OrbitCamera) Heading() (x, z float32) {
	y := mgl32.DegToRad(float32(c.Yaw))
	return float32(math.Sin(float64(y))), -float32(math.Cos(float64(y)))
}

// Eye returns the camera position when orbiting target
func (c *OrbitCamera) Eye(target mgl32.Vec3) mgl32.Vec3 {
	hx, hz := c.Heading()
	pitch := float64(mgl32.DegToRad(float32(c.Pitch)))
	horiz := c.Distance * float32(math.Cos(pitch))
	up := c.Distance * float32(math.Sin(pitch))
	return target.Add(mgl32.Vec3{-hx * horiz, up, -hz * horiz})
}
