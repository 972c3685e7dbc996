// Package shaders holds the GPU programs for the voxel passes. The GLSL
// sources drive the OpenGL viewer; occlusion.wgsl is the same logic for
// WebGPU hosts and is compiled to SPIR-V with naga.
package shaders

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/gogpu/naga"
)

//go:embed voxel.vert
var VoxelVertex string

//go:embed voxel.frag
var voxelFragment string

//go:embed player.vert
var PlayerVertex string

//go:embed player.frag
var PlayerFragment string

//go:embed line.vert
var LineVertex string

//go:embed line.frag
var LineFragment string

//go:embed occlusion.wgsl
var OcclusionWGSL string

// PrepassDefine selects the depth prepass build of the voxel fragment shader.
const PrepassDefine = "PREPASS_PIPELINE"

// VoxelFragment returns the voxel fragment shader for one pass. Both builds
// come from the same source so they make identical discard decisions.
func VoxelFragment(prepass bool) string {
	if !prepass {
		return voxelFragment
	}
	return WithDefine(voxelFragment, PrepassDefine)
}

// WithDefine inserts "#define name" right after the #version line.
func WithDefine(src, name string) string {
	def := "#define " + name + "\n"
	if !strings.HasPrefix(src, "#version") {
		return def + src
	}
	nl := strings.IndexByte(src, '\n')
	if nl < 0 {
		return src + "\n" + def
	}
	return src[:nl+1] + def + src[nl+1:]
}

// CompileWGSL compiles the occlusion module to SPIR-V bytes.
func CompileWGSL() ([]byte, error) {
	spirv, err := naga.Compile(OcclusionWGSL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile occlusion shader: %w", err)
	}
	return spirv, nil
}
