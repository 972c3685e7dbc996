package playermodel

import (
	"voxfade/internal/graphics"
	renderer "voxfade/internal/graphics/renderer"
	"voxfade/internal/graphics/shaders"
	"voxfade/internal/physics"
	"voxfade/internal/raster"
	"voxfade/internal/shading"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// PlayerModel renders the player as an opaque box with the same footprint
// the collision code uses. It is never subject to occlusion.
type PlayerModel struct {
	shader *graphics.Shader

	vao         uint32
	vbo         uint32
	vertexCount int32
}

// NewPlayerModel creates a new player model renderable
func NewPlayerModel() *PlayerModel {
	return &PlayerModel{}
}

// Init initializes the player rendering system
func (m *PlayerModel) Init() error {
	var err error
	m.shader, err = graphics.NewShader(shaders.PlayerVertex, shaders.PlayerFragment)
	if err != nil {
		return err
	}

	hw := float32(physics.PlayerHalfWidth)
	verts := BoxVertices(mgl32.Vec3{-hw, 0, -hw}, mgl32.Vec3{hw, physics.PlayerHeight, hw})
	m.vertexCount = int32(len(verts) / 6)

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 3*4)
	gl.BindVertexArray(0)
	return nil
}

// RenderPrepass puts the player into the depth buffer so geometry behind it
// is rejected by the color pass.
func (m *PlayerModel) RenderPrepass(ctx renderer.RenderContext) {
	m.draw(ctx)
}

// Render draws the lit box
func (m *PlayerModel) Render(ctx renderer.RenderContext) {
	m.draw(ctx)
}

func (m *PlayerModel) draw(ctx renderer.RenderContext) {
	l := shading.NewStandard(ctx.Camera.Eye)
	m.shader.Use()
	m.shader.SetMatrix4("proj", ctx.Proj)
	m.shader.SetMatrix4("view", ctx.View)
	m.shader.SetMatrix4("model", mgl32.Translate3D(ctx.Player.X(), ctx.Player.Y(), ctx.Player.Z()))
	m.shader.SetVector3("color", raster.PlayerColor.Vec3())
	m.shader.SetVector3("lightDir", l.LightDir)
	m.shader.SetVector3("lightColor", l.LightColor)
	m.shader.SetFloat("ambient", l.Ambient)
	m.shader.SetFloat("exposure", l.Exposure)

	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.vertexCount)
	gl.BindVertexArray(0)
}

// Dispose cleans up OpenGL resources
func (m *PlayerModel) Dispose() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.shader != nil {
		m.shader.Delete()
	}
}

func (m *PlayerModel) SetViewport(width, height int) {}

// BoxVertices returns 36 vertices (position, normal) for the box [lo,hi],
// wound counter-clockwise seen from outside.
func BoxVertices(lo, hi mgl32.Vec3) []float32 {
	out := make([]float32, 0, 36*6)
	face := func(n mgl32.Vec3, c [4]mgl32.Vec3) {
		for _, i := range [6]int{0, 1, 2, 2, 3, 0} {
			p := c[i]
			out = append(out, p[0], p[1], p[2], n[0], n[1], n[2])
		}
	}
	x0, y0, z0 := lo[0], lo[1], lo[2]
	x1, y1, z1 := hi[0], hi[1], hi[2]
	v := func(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x, y, z} }

	face(mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{v(x0, y0, z1), v(x1, y0, z1), v(x1, y1, z1), v(x0, y1, z1)})
	face(mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{v(x1, y0, z0), v(x0, y0, z0), v(x0, y1, z0), v(x1, y1, z0)})
	face(mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{v(x1, y0, z1), v(x1, y0, z0), v(x1, y1, z0), v(x1, y1, z1)})
	face(mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{v(x0, y0, z0), v(x0, y0, z1), v(x0, y1, z1), v(x0, y1, z0)})
	face(mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{v(x0, y1, z1), v(x1, y1, z1), v(x1, y1, z0), v(x0, y1, z0)})
	face(mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{v(x0, y0, z0), v(x1, y0, z0), v(x1, y0, z1), v(x0, y0, z1)})
	return out
}
