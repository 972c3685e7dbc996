package renderer

import (
	"voxfade/internal/graphics"
	"voxfade/internal/occlusion"
	"voxfade/internal/profiling"
	"voxfade/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera
	params      *graphics.OcclusionBuffer

	// FOV transition
	targetFOV  float32
	currentFOV float32
}

// NewRenderer creates a new renderer with the given renderables
func NewRenderer(width, height int, rs ...Renderable) (*Renderer, error) {
	// Configure OpenGL
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.MULTISAMPLE)

	camera := graphics.NewCamera(width, height)

	renderer := &Renderer{
		renderables: rs,
		camera:      camera,
		params:      graphics.NewOcclusionBuffer(),
		targetFOV:   camera.FOV,
		currentFOV:  camera.FOV,
	}

	// Initialize all renderables
	for _, r := range rs {
		if err := r.Init(); err != nil {
			return nil, err
		}
		r.SetViewport(width, height)
	}

	return renderer, nil
}

// Render draws one frame: upload the occlusion block, run the depth prepass,
// then the color pass.
func (r *Renderer) Render(w *world.World, p *occlusion.Params, dt float64) {
	defer profiling.Track("renderer.frame")()

	gl.ClearColor(0.53, 0.81, 0.92, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	// Ease toward the zoom target
	step := float32(dt) * 100
	switch {
	case r.currentFOV < r.targetFOV:
		r.currentFOV = min(r.currentFOV+step, r.targetFOV)
	case r.currentFOV > r.targetFOV:
		r.currentFOV = max(r.currentFOV-step, r.targetFOV)
	}
	r.camera.FOV = r.currentFOV

	func() {
		defer profiling.Track("renderer.upload")()
		r.params.Upload(p)
	}()

	ctx := RenderContext{
		Camera: r.camera,
		World:  w,
		Params: p,
		Player: p.PlayerPosition,
		DT:     dt,
		View:   r.camera.GetViewMatrix(),
		Proj:   r.camera.GetProjectionMatrix(),
	}

	// Both passes resolve partial alpha through coverage so they cover the
	// same samples.
	gl.Enable(gl.SAMPLE_ALPHA_TO_COVERAGE)

	func() {
		defer profiling.Track("renderer.prepass")()
		gl.ColorMask(false, false, false, false)
		gl.DepthMask(true)
		gl.DepthFunc(gl.LESS)
		for _, renderable := range r.renderables {
			if pp, ok := renderable.(DepthPrepass); ok {
				pp.RenderPrepass(ctx)
			}
		}
		gl.ColorMask(true, true, true, true)
	}()

	func() {
		defer profiling.Track("renderer.color")()
		gl.DepthFunc(gl.LEQUAL)
		for _, renderable := range r.renderables {
			renderable.Render(ctx)
		}
		gl.DepthMask(true)
		gl.DepthFunc(gl.LESS)
	}()

	gl.Disable(gl.SAMPLE_ALPHA_TO_COVERAGE)
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
	r.params.Delete()
}

// GetCamera returns the camera instance
func (r *Renderer) GetCamera() *graphics.Camera {
	return r.camera
}

// LookAt places the camera
func (r *Renderer) LookAt(eye, target mgl32.Vec3) {
	r.camera.Eye = eye
	r.camera.Target = target
}

// Zoom changes the target field of view by delta degrees
func (r *Renderer) Zoom(delta float32) {
	r.targetFOV = mgl32.Clamp(r.targetFOV+delta, 20, 90)
}

// UpdateViewport updates the camera's viewport dimensions
func (r *Renderer) UpdateViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.camera.SetViewport(width, height)
	for _, renderable := range r.renderables {
		renderable.SetViewport(width, height)
	}
}
