package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"voxfade/internal/occlusion"
)

// OcclusionBuffer is the uniform buffer holding the per-frame occlusion
// parameter block at occlusion.BindingSlot.
type OcclusionBuffer struct {
	id uint32
}

// NewOcclusionBuffer allocates the buffer and binds it to its slot
func NewOcclusionBuffer() *OcclusionBuffer {
	b := &OcclusionBuffer{}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, b.id)
	gl.BufferData(gl.UNIFORM_BUFFER, occlusion.BlockSize, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, occlusion.BindingSlot, b.id)
	return b
}

// Upload replaces the block contents. Call once per frame before either pass.
func (b *OcclusionBuffer) Upload(p *occlusion.Params) {
	data := p.MarshalStd140()
	gl.BindBuffer(gl.UNIFORM_BUFFER, b.id)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), gl.Ptr(data))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

func (b *OcclusionBuffer) Delete() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}
