package tile

import "github.com/pkg/errors"

// ErrInvalidTileNumber is returned when a tile selector is outside 1-4
var ErrInvalidTileNumber = errors.New("invalid tile number")

// Parse maps an optional tile number to a Selection. A nil tile selects the
// full image.
func Parse(n *int) (Selection, error) {
	if n == nil {
		return Full, nil
	}
	switch *n {
	case 1, 2, 3, 4:
		return Selection(*n), nil
	default:
		return Full, errors.Wrapf(ErrInvalidTileNumber, "tile %d", *n)
	}
}

// Rect returns the crop window for s within a width x height source.
// Non-square sources crop the right or bottom side rather than splitting the
// difference, and quadrant 3 starts at half the height, not at the square
// half used by the other quadrants.
func (s Selection) Rect(width, height int) Rect {
	halfWidth := width / 2
	halfHeight := height / 2
	half := min(halfWidth, halfHeight)

	switch s {
	case Quadrant1:
		return Rect{X: 0, Y: 0, Width: half, Height: half}
	case Quadrant2:
		return Rect{X: half, Y: 0, Width: half, Height: half}
	case Quadrant3:
		return Rect{X: 0, Y: halfHeight, Width: half, Height: half}
	case Quadrant4:
		return Rect{X: half, Y: half, Width: half, Height: half}
	default:
		return Rect{X: 0, Y: 0, Width: width, Height: height}
	}
}
