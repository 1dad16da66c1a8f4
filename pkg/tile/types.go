package tile

import (
	"image"
	"strconv"
)

// Selection identifies which region of a grid montage becomes the token
type Selection int

const (
	Full Selection = iota // For upscaled images with no grid
	Quadrant1
	Quadrant2
	Quadrant3
	Quadrant4
)

func (s Selection) String() string {
	if s == Full {
		return "full"
	}
	return strconv.Itoa(int(s))
}

// Rect is a crop window within a source image
type Rect struct {
	X, Y          int
	Width, Height int
}

// Rectangle converts r to an image.Rectangle anchored at origin
func (r Rect) Rectangle(origin image.Point) image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height).Add(origin)
}

// Empty reports whether the window covers no pixels
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
