package graphics

import (
	"voxfade/internal/raster"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera handles the view and projection matrices
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	Eye    mgl32.Vec3
	Target mgl32.Vec3
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		FOV:       60.0,
		NearPlane: 0.1,
		FarPlane:  500.0,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio; a zero height keeps the previous one
func (c *Camera) SetViewport(width, height int) {
	if height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	dir := c.Target.Sub(c.Eye)
	if dir.Len() > 0 && absf(dir.Normalize().Y()) > 0.999 {
		up = mgl32.Vec3{0, 0, -1}
	}
	return mgl32.LookAtV(c.Eye, c.Target, up)
}

// Raster returns the same view for the software renderer
func (c *Camera) Raster() raster.Camera {
	return raster.Camera{Eye: c.Eye, Target: c.Target, FOV: c.FOV}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
