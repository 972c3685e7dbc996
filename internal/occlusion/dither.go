package occlusion

import "math"

// bayer4x4 is the canonical 4x4 ordered dither matrix, row-major, normalized
// so each of 0/16..15/16 appears once.
var bayer4x4 = [16]float32{
	0.0 / 16.0, 8.0 / 16.0, 2.0 / 16.0, 10.0 / 16.0,
	12.0 / 16.0, 4.0 / 16.0, 14.0 / 16.0, 6.0 / 16.0,
	3.0 / 16.0, 11.0 / 16.0, 1.0 / 16.0, 9.0 / 16.0,
	15.0 / 16.0, 7.0 / 16.0, 13.0 / 16.0, 5.0 / 16.0,
}

// Threshold returns the dither threshold for a screen position in pixels.
func Threshold(screenX, screenY float32) float32 {
	col := mod4(screenX)
	row := mod4(screenY)
	return bayer4x4[row<<2|col]
}

// Keep converts alpha into a keep/discard decision for one pixel. Over a 4x4
// tile the fraction of kept pixels is within 1/16 of alpha.
func Keep(screenX, screenY, alpha float32) bool {
	return alpha > Threshold(screenX, screenY)
}

func mod4(v float32) int {
	i := int(math.Floor(float64(v)))
	return ((i % 4) + 4) % 4
}
