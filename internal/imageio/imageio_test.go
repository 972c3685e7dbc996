package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mrjoshuak/go-openexr/exr"
)

type testHDR struct {
	w, h int
	pix  []mgl32.Vec4
}

func (t testHDR) Bounds() image.Rectangle    { return image.Rect(0, 0, t.w, t.h) }
func (t testHDR) Pixel(x, y int) mgl32.Vec4 { return t.pix[y*t.w+x] }

func checker() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{255, 255, 255, 255})
	return img
}

func TestUpscaleNearest(t *testing.T) {
	src := checker()
	dst := Upscale(src, 3)
	if dst.Bounds().Dx() != 6 || dst.Bounds().Dy() != 6 {
		t.Fatalf("Expected 6x6, got %v", dst.Bounds())
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			want := src.RGBAAt(x/3, y/3)
			if got := dst.RGBAAt(x, y); got != want {
				t.Errorf("At %d,%d: expected %v, got %v", x, y, want, got)
			}
		}
	}
	if d := Upscale(src, 0); d.Bounds().Dx() != 2 {
		t.Errorf("Expected factor 0 to keep the size, got %v", d.Bounds())
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, checker()); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	r, g, b, _ := img.At(1, 0).RGBA()
	if r != 0 || g != 0xffff || b != 0 {
		t.Errorf("Expected green, got %d %d %d", r, g, b)
	}
}

func TestSavePNGBadPath(t *testing.T) {
	if err := SavePNG(filepath.Join(t.TempDir(), "missing", "out.png"), checker()); err == nil {
		t.Errorf("Expected an error for a missing directory")
	}
}

func TestEXRRoundTrip(t *testing.T) {
	src := testHDR{w: 4, h: 2, pix: make([]mgl32.Vec4, 8)}
	for i := range src.pix {
		src.pix[i] = mgl32.Vec4{float32(i) * 0.5, 0.25, 2, 1}
	}

	img := ToEXR(src)
	if r, _, b, _ := img.RGBA(3, 1); r != 3.5 || b != 2 {
		t.Errorf("Expected unclamped values, got r=%v b=%v", r, b)
	}

	path := filepath.Join(t.TempDir(), "frame.exr")
	if err := SaveEXR(path, src); err != nil {
		t.Fatalf("SaveEXR failed: %v", err)
	}
	decoded, err := exr.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}
	if decoded.Rect.Dx() != 4 || decoded.Rect.Dy() != 2 {
		t.Fatalf("Expected 4x2, got %v", decoded.Rect)
	}
	// All values are exact in half precision
	r, g, b, a := decoded.RGBA(3, 1)
	if r != 3.5 || g != 0.25 || b != 2 || a != 1 {
		t.Errorf("Expected {3.5 0.25 2 1}, got {%v %v %v %v}", r, g, b, a)
	}
}
