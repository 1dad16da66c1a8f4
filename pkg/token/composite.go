package token

import (
	"image"
	"math"
)

// Composite lays border over dst at the origin using source-over blending and
// returns dst. A nil border leaves dst as it is.
func Composite(dst, border *image.NRGBA) *image.NRGBA {
	if border == nil {
		return dst
	}

	db := dst.Bounds()
	bb := border.Bounds()
	w := min(db.Dx(), bb.Dx())
	h := min(db.Dy(), bb.Dy())

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := dst.PixOffset(db.Min.X+x, db.Min.Y+y)
			j := border.PixOffset(bb.Min.X+x, bb.Min.Y+y)
			blend(dst.Pix[i:i+4:i+4], border.Pix[j:j+4:j+4])
		}
	}

	return dst
}

// blend writes src over dst, both non-premultiplied RGBA
func blend(dst, src []uint8) {
	switch src[3] {
	case 0:
		return
	case 0xff:
		copy(dst, src)
		return
	}

	as := float64(src[3]) / 255.0
	ad := float64(dst[3]) / 255.0
	ar := as + ad*(1-as)

	for c := 0; c < 3; c++ {
		v := (float64(src[c])*as + float64(dst[c])*ad*(1-as)) / ar
		dst[c] = uint8(math.Round(v))
	}
	dst[3] = uint8(math.Round(ar * 255.0))
}
