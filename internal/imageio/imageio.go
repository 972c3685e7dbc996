// Package imageio writes rendered frames to disk.
package imageio

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mrjoshuak/go-openexr/exr"
	"golang.org/x/image/draw"
)

// HDR is a float image such as a raster.Frame
type HDR interface {
	Bounds() image.Rectangle
	Pixel(x, y int) mgl32.Vec4
}

// Upscale enlarges img by an integer factor with nearest-neighbour sampling,
// so ordered dither patterns stay crisp.
func Upscale(img image.Image, factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePNG encodes img as PNG
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to path as PNG
func SavePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return WritePNG(f, img)
}

// ToEXR copies a float image into an OpenEXR RGBA image without clamping
func ToEXR(src HDR) *exr.RGBAImage {
	b := src.Bounds()
	img := exr.NewRGBAImage(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := src.Pixel(x, y)
			img.SetRGBA(x, y, p[0], p[1], p[2], p[3])
		}
	}
	return img
}

// SaveEXR writes src to path as a half-float OpenEXR file
func SaveEXR(path string, src HDR) error {
	if err := exr.EncodeFile(path, ToEXR(src)); err != nil {
		return fmt.Errorf("encode exr %s: %w", path, err)
	}
	return nil
}
