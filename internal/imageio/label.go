package imageio

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const labelPadding = 4

// Label draws text in the top-left corner of img over a dark strip
func Label(img draw.Image, text string) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.White, Face: face}

	b := img.Bounds()
	width := d.MeasureString(text).Ceil() + 2*labelPadding
	height := face.Metrics().Height.Ceil() + 2*labelPadding
	strip := image.Rect(b.Min.X, b.Min.Y, b.Min.X+width, b.Min.Y+height).Intersect(b)
	draw.Draw(img, strip, image.NewUniform(color.RGBA{0, 0, 0, 160}), image.Point{}, draw.Over)

	d.Dot = fixed.P(b.Min.X+labelPadding, b.Min.Y+labelPadding+face.Metrics().Ascent.Ceil())
	d.DrawString(text)
}
