package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a pinhole camera looking from Eye at Target
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	FOV    float32 // vertical, degrees
}

func (c Camera) basis() (fwd, right, up mgl32.Vec3) {
	fwd = c.Target.Sub(c.Eye)
	if fwd.Len() == 0 {
		fwd = mgl32.Vec3{0, 0, -1}
	}
	fwd = fwd.Normalize()
	worldUp := mgl32.Vec3{0, 1, 0}
	if math.Abs(float64(fwd.Dot(worldUp))) > 0.999 {
		worldUp = mgl32.Vec3{0, 0, -1}
	}
	right = fwd.Cross(worldUp).Normalize()
	up = right.Cross(fwd)
	return fwd, right, up
}

// Ray returns the direction through the continuous pixel position (sx, sy)
// of a width x height image with its origin top-left.
func (c Camera) Ray(sx, sy float32, width, height int) mgl32.Vec3 {
	fwd, right, up := c.basis()
	fov := c.FOV
	if fov <= 0 || fov >= 180 {
		fov = 60
	}
	h := float32(math.Tan(float64(mgl32.DegToRad(fov)) / 2))
	aspect := float32(width) / float32(height)
	x := (2*sx/float32(width) - 1) * h * aspect
	y := (1 - 2*sy/float32(height)) * h
	return fwd.Add(right.Mul(x)).Add(up.Mul(y)).Normalize()
}
