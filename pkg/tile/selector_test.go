package tile

import (
	"image"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestParse(t *testing.T) {
	sel, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Full, sel)

	for n, want := range map[int]Selection{1: Quadrant1, 2: Quadrant2, 3: Quadrant3, 4: Quadrant4} {
		sel, err := Parse(intPtr(n))
		require.NoError(t, err)
		assert.Equal(t, want, sel)
	}

	for _, n := range []int{-1, 0, 5, 255} {
		_, err := Parse(intPtr(n))
		assert.True(t, errors.Is(err, ErrInvalidTileNumber), "tile %d should be rejected", n)
	}
}

func TestRect_Full(t *testing.T) {
	for _, dims := range [][2]int{{512, 512}, {1, 1}, {640, 480}, {3, 1000}, {0, 0}} {
		assert.Equal(t, Rect{0, 0, dims[0], dims[1]}, Full.Rect(dims[0], dims[1]))
	}
}

func TestRect_SquareQuadrants(t *testing.T) {
	const n = 512
	assert.Equal(t, Rect{0, 0, 256, 256}, Quadrant1.Rect(n, n))
	assert.Equal(t, Rect{256, 0, 256, 256}, Quadrant2.Rect(n, n))
	assert.Equal(t, Rect{0, 256, 256, 256}, Quadrant3.Rect(n, n))
	assert.Equal(t, Rect{256, 256, 256, 256}, Quadrant4.Rect(n, n))
}

func TestRect_NonSquareKeepsTopLeftBias(t *testing.T) {
	// 800x400: half is 200, quadrant 3 still starts at half the height.
	assert.Equal(t, Rect{200, 0, 200, 200}, Quadrant2.Rect(800, 400))
	assert.Equal(t, Rect{0, 200, 200, 200}, Quadrant3.Rect(800, 400))
	assert.Equal(t, Rect{200, 200, 200, 200}, Quadrant4.Rect(800, 400))

	// 400x800: quadrant 3 starts at 400 while quadrant 4 starts at 200.
	assert.Equal(t, Rect{0, 400, 200, 200}, Quadrant3.Rect(400, 800))
	assert.Equal(t, Rect{200, 200, 200, 200}, Quadrant4.Rect(400, 800))
}

func TestRect_StaysInBounds(t *testing.T) {
	sels := []Selection{Full, Quadrant1, Quadrant2, Quadrant3, Quadrant4}
	for w := 0; w <= 33; w++ {
		for h := 0; h <= 33; h++ {
			for _, s := range sels {
				r := s.Rect(w, h)
				if r.X+r.Width > w || r.Y+r.Height > h {
					t.Fatalf("selection %v of %dx%d out of bounds: %+v", s, w, h, r)
				}
			}
		}
	}
}

func TestRect_Rectangle(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	assert.Equal(t, image.Rect(10, 20, 40, 60), r.Rectangle(image.Point{}))
	assert.Equal(t, image.Rect(15, 25, 45, 65), r.Rectangle(image.Pt(5, 5)))
	assert.False(t, r.Empty())
	assert.True(t, Rect{Width: 0, Height: 4}.Empty())
}

func TestSelection_String(t *testing.T) {
	assert.Equal(t, "full", Full.String())
	assert.Equal(t, "3", Quadrant3.String())
}
