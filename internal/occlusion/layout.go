package occlusion

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BindingSlot is the uniform buffer binding reserved for the parameter block.
// Slots 0..2 belong to the standard material.
const BindingSlot = 3

// LayoutVersion identifies the packing below. Version 2 uses bit 0 of the
// first reserved word for HybridFallback.
const LayoutVersion = 2

// BlockSize is the size in bytes of the packed parameter block.
const BlockSize = 96

// Byte offsets of the packed fields. They follow std140 / WGSL uniform rules:
// vec3 fields take a full 16-byte slot.
const (
	offPlayer    = 0
	offCamera    = 16
	offMinAlpha  = 32
	offRadius    = 36
	offThreshold = 40
	offSoftness  = 44
	offTechnique = 48
	offMode      = 52
	offFlags     = 56
	offReserved  = 60
	offRegionMin = 64
	offRegionMax = 80
)

const flagHybridFallback uint32 = 1 << 0

// MarshalStd140 packs the block for upload to the GPU.
func (p *Params) MarshalStd140() []byte {
	buf := make([]byte, BlockSize)
	putVec3(buf[offPlayer:], p.PlayerPosition)
	putVec3(buf[offCamera:], p.CameraPosition)
	putFloat(buf[offMinAlpha:], p.MinAlpha)
	putFloat(buf[offRadius:], p.OcclusionRadius)
	putFloat(buf[offThreshold:], p.HeightThreshold)
	putFloat(buf[offSoftness:], p.FalloffSoftness)
	binary.LittleEndian.PutUint32(buf[offTechnique:], uint32(p.Technique))
	binary.LittleEndian.PutUint32(buf[offMode:], uint32(p.Mode))

	var flags uint32
	if p.HybridFallback {
		flags |= flagHybridFallback
	}
	binary.LittleEndian.PutUint32(buf[offFlags:], flags)
	binary.LittleEndian.PutUint32(buf[offReserved:], 0)

	putVec3(buf[offRegionMin:], p.Region.Min)
	putVec3(buf[offRegionMax:], p.Region.Max)
	// Only the max corner carries the flag.
	if p.Region.Active {
		putFloat(buf[offRegionMax+12:], 1)
	}
	return buf
}

// UnmarshalStd140 decodes a block written by MarshalStd140 or by a host using
// the same layout.
func UnmarshalStd140(buf []byte) (Params, error) {
	if len(buf) < BlockSize {
		return Params{}, fmt.Errorf("occlusion block: need %d bytes, got %d", BlockSize, len(buf))
	}
	flags := binary.LittleEndian.Uint32(buf[offFlags:])
	return Params{
		PlayerPosition:  getVec3(buf[offPlayer:]),
		CameraPosition:  getVec3(buf[offCamera:]),
		MinAlpha:        getFloat(buf[offMinAlpha:]),
		OcclusionRadius: getFloat(buf[offRadius:]),
		HeightThreshold: getFloat(buf[offThreshold:]),
		FalloffSoftness: getFloat(buf[offSoftness:]),
		Technique:       Technique(binary.LittleEndian.Uint32(buf[offTechnique:])),
		Mode:            Mode(binary.LittleEndian.Uint32(buf[offMode:])),
		HybridFallback:  flags&flagHybridFallback != 0,
		Region: Region{
			Min:    getVec3(buf[offRegionMin:]),
			Max:    getVec3(buf[offRegionMax:]),
			Active: getFloat(buf[offRegionMax+12:]) > 0.5,
		},
	}, nil
}

func putFloat(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

func putVec3(b []byte, v mgl32.Vec3) {
	putFloat(b[0:], v[0])
	putFloat(b[4:], v[1])
	putFloat(b[8:], v[2])
}

func getFloat(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func getVec3(b []byte) mgl32.Vec3 {
	return mgl32.Vec3{getFloat(b[0:]), getFloat(b[4:]), getFloat(b[8:])}
}
