package renderer

import (
	"voxfade/internal/graphics"
	"voxfade/internal/occlusion"
	"voxfade/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Camera *graphics.Camera
	World  *world.World
	// Params is the frame's occlusion block, already uploaded to the GPU
	Params *occlusion.Params
	// Player is the feet position
	Player mgl32.Vec3
	DT     float64
	View   mgl32.Mat4
	Proj   mgl32.Mat4
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}

// DepthPrepass is implemented by renderables that take part in the depth
// prepass. The renderer calls RenderPrepass for all of them before any
// Render call of the frame.
type DepthPrepass interface {
	RenderPrepass(ctx RenderContext)
}
