// Package voxels draws the world mesh in two passes that share one
// occlusion decision per fragment.
package voxels

import (
	"voxfade/internal/graphics"
	renderer "voxfade/internal/graphics/renderer"
	"voxfade/internal/graphics/shaders"
	"voxfade/internal/logging"
	"voxfade/internal/meshing"
	"voxfade/internal/occlusion"
	"voxfade/internal/profiling"
	"voxfade/internal/shading"
	"voxfade/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Voxels implements the world mesh renderable
type Voxels struct {
	prepass *graphics.Shader
	color   *graphics.Shader

	vao, vbo    uint32
	vertexCount int32

	world *world.World
	dirty bool
}

// NewVoxels creates the renderable; the mesh is built on first use
func NewVoxels() *Voxels {
	return &Voxels{dirty: true}
}

// Init compiles both program variants and allocates the vertex buffer
func (v *Voxels) Init() error {
	var err error
	v.prepass, err = graphics.NewShader(shaders.VoxelVertex, shaders.VoxelFragment(true))
	if err != nil {
		return err
	}
	v.color, err = graphics.NewShader(shaders.VoxelVertex, shaders.VoxelFragment(false))
	if err != nil {
		return err
	}
	for _, s := range []*graphics.Shader{v.prepass, v.color} {
		s.BindUniformBlock("OcclusionParams", occlusion.BindingSlot)
	}

	gl.GenVertexArrays(1, &v.vao)
	gl.GenBuffers(1, &v.vbo)
	gl.BindVertexArray(v.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbo)

	stride := int32(meshing.VertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(3, 1, gl.FLOAT, false, stride, 10*4)
	gl.BindVertexArray(0)
	return nil
}

// Invalidate forces a mesh rebuild on the next frame
func (v *Voxels) Invalidate() {
	v.dirty = true
}

func (v *Voxels) ensureMesh(w *world.World) {
	if w == nil || (!v.dirty && w == v.world) {
		return
	}
	defer profiling.Track("voxels.upload")()
	verts := meshing.Vertices(meshing.BuildQuads(w))
	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbo)
	if len(verts) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}
	v.vertexCount = int32(len(verts) / meshing.VertexStride)
	v.world = w
	v.dirty = false
	logging.Logger().Debug("voxel mesh rebuilt", "vertices", v.vertexCount)
}

// RenderPrepass writes depth for every fragment that survives occlusion
func (v *Voxels) RenderPrepass(ctx renderer.RenderContext) {
	v.ensureMesh(ctx.World)
	v.draw(v.prepass, ctx)
}

// Render draws lit color over the prepass depth without writing depth again
func (v *Voxels) Render(ctx renderer.RenderContext) {
	v.ensureMesh(ctx.World)
	gl.DepthMask(false)
	v.draw(v.color, ctx)
	gl.DepthMask(true)
}

func (v *Voxels) draw(s *graphics.Shader, ctx renderer.RenderContext) {
	if v.vertexCount == 0 {
		return
	}
	s.Use()
	s.SetMatrix4("proj", ctx.Proj)
	s.SetMatrix4("view", ctx.View)
	// Same lighting as the software renderer
	l := shading.NewStandard(ctx.Camera.Eye)
	s.SetVector3("eye", l.Eye)
	s.SetVector3("lightDir", l.LightDir)
	s.SetVector3("lightColor", l.LightColor)
	s.SetFloat("ambient", l.Ambient)
	if l.Exposure <= 0 {
		l.Exposure = 1
	}
	s.SetFloat("exposure", l.Exposure)
	s.SetVector2("fogRange", l.FogStart, l.FogEnd)
	s.SetVector3("fogColor", l.FogColor)

	gl.BindVertexArray(v.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, v.vertexCount)
	gl.BindVertexArray(0)
}

// Dispose cleans up OpenGL resources
func (v *Voxels) Dispose() {
	if v.vao != 0 {
		gl.DeleteVertexArrays(1, &v.vao)
	}
	if v.vbo != 0 {
		gl.DeleteBuffers(1, &v.vbo)
	}
	if v.prepass != nil {
		v.prepass.Delete()
	}
	if v.color != nil {
		v.color.Delete()
	}
}

func (v *Voxels) SetViewport(width, height int) {}
