package token

import (
	"image"
	"math"
)

// Mask cuts img into a circle by clearing the alpha of every pixel on or
// outside the inscribed circle, less a margin of width/50 pixels so a frame
// laid over the token hides the edge. The cut is hard, with no anti-aliased
// falloff. img is expected to be square and is modified in place.
func Mask(img *image.NRGBA) {
	b := img.Bounds()
	size := b.Dx()
	center := size / 2
	buffer := size / 50

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < size; x++ {
			dx := x - center
			dy := y - center
			// +1 keeps the center pixel at radius 1
			r := int(math.Sqrt(float64(dx*dx+dy*dy))) + 1
			if r+buffer >= center {
				img.Pix[img.PixOffset(b.Min.X+x, b.Min.Y+y)+3] = 0
			}
		}
	}
}
