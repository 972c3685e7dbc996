package wireframe

import (
	"voxfade/internal/graphics"
	renderer "voxfade/internal/graphics/renderer"
	"voxfade/internal/graphics/shaders"
	"voxfade/internal/occlusion"
	"voxfade/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Wireframe outlines the detected interior region. It draws nothing when
// hidden, when the mode does not use the region, or when no region is active.
type Wireframe struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32

	Visible bool
}

// NewWireframe creates a new wireframe renderable
func NewWireframe() *Wireframe {
	return &Wireframe{}
}

// Init initializes the wireframe rendering system
func (w *Wireframe) Init() error {
	var err error
	w.shader, err = graphics.NewShader(shaders.LineVertex, shaders.LineFragment)
	if err != nil {
		return err
	}
	w.setupWireframeVAO()
	return nil
}

// Render draws the region outline
func (w *Wireframe) Render(ctx renderer.RenderContext) {
	if !w.Visible || ctx.Params == nil {
		return
	}
	if !ctx.Params.Mode.UsesRegion() || !ctx.Params.Region.Active {
		return
	}
	defer profiling.Track("renderer.renderRegionOutline")()
	w.renderRegion(ctx.Params.Region, ctx.View, ctx.Proj)
}

// Dispose cleans up OpenGL resources
func (w *Wireframe) Dispose() {
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
	}
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
	}
	if w.shader != nil {
		w.shader.Delete()
	}
}

func (w *Wireframe) SetViewport(width, height int) {}

// unitCubeEdges are the 12 edges of [0,1]^3 as line pairs
var unitCubeEdges = []float32{
	0, 0, 0, 1, 0, 0,
	1, 0, 0, 1, 0, 1,
	1, 0, 1, 0, 0, 1,
	0, 0, 1, 0, 0, 0,

	0, 1, 0, 1, 1, 0,
	1, 1, 0, 1, 1, 1,
	1, 1, 1, 0, 1, 1,
	0, 1, 1, 0, 1, 0,

	0, 0, 0, 0, 1, 0,
	1, 0, 0, 1, 1, 0,
	1, 0, 1, 1, 1, 1,
	0, 0, 1, 0, 1, 1,
}

func (w *Wireframe) setupWireframeVAO() {
	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(unitCubeEdges)*4, gl.Ptr(unitCubeEdges), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
}

// RegionModel maps the unit cube onto the region bounds
func RegionModel(r occlusion.Region) mgl32.Mat4 {
	size := r.Max.Sub(r.Min)
	return mgl32.Translate3D(r.Min.X(), r.Min.Y(), r.Min.Z()).
		Mul4(mgl32.Scale3D(size.X(), size.Y(), size.Z()))
}

func (w *Wireframe) renderRegion(r occlusion.Region, view, projection mgl32.Mat4) {
	w.shader.Use()
	w.shader.SetMatrix4("proj", projection)
	w.shader.SetMatrix4("view", view)
	w.shader.SetMatrix4("model", RegionModel(r))
	w.shader.SetVector3("color", mgl32.Vec3{1.0, 0.85, 0.1})

	// Visible through walls
	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(w.vao)
	gl.LineWidth(1.0)
	gl.DrawArrays(gl.LINES, 0, int32(len(unitCubeEdges)/3))
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}
