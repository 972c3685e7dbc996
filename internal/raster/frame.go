package raster

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Stats counts work done by one render
type Stats struct {
	Samples         int64
	Fragments       int64 // color pass invocations
	PrepassDiscards int64
	// Mismatches counts fragments whose discard decision differed between
	// the prepass and the color pass. Always zero for a pure pipeline.
	Mismatches int64
}

// Frame is a rendered image in the pipeline's output space. It implements
// image.Image with colors clamped to [0,1].
type Frame struct {
	Width, Height int
	Pix           []mgl32.Vec4
	Stats         Stats
}

func newFrame(w, h int) *Frame {
	return &Frame{Width: w, Height: h, Pix: make([]mgl32.Vec4, w*h)}
}

// Pixel returns the unclamped color at (x, y)
func (f *Frame) Pixel(x, y int) mgl32.Vec4 {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return mgl32.Vec4{}
	}
	return f.Pix[y*f.Width+x]
}

func (f *Frame) ColorModel() color.Model { return color.RGBA64Model }

func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.Width, f.Height) }

func (f *Frame) At(x, y int) color.Color {
	p := f.Pixel(x, y)
	a := clamp01(p[3])
	// image.Image colors are alpha-premultiplied
	return color.RGBA64{
		R: uint16(clamp01(p[0])*a*0xffff + 0.5),
		G: uint16(clamp01(p[1])*a*0xffff + 0.5),
		B: uint16(clamp01(p[2])*a*0xffff + 0.5),
		A: uint16(a*0xffff + 0.5),
	}
}

func clamp01(v float32) float32 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
