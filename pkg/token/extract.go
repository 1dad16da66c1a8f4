package token

import (
	"image"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/kiesman99/tokenizer/pkg/tile"
	"github.com/pkg/errors"
)

// DefaultFilter is the resampling filter used when none is configured
const DefaultFilter = "lanczos"

var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"mitchell":   imaging.MitchellNetravali,
	"bspline":    imaging.BSpline,
	"gaussian":   imaging.Gaussian,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
}

// ParseFilter looks up a resampling filter by name. An empty name selects
// DefaultFilter.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	if name == "" {
		name = DefaultFilter
	}
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		return imaging.ResampleFilter{}, errors.Wrapf(ErrInvalidFilter, "%q (available: %s)", name, strings.Join(FilterNames(), ", "))
	}
	return f, nil
}

// FilterNames lists the accepted filter names
func FilterNames() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extract crops src to r and resamples the result to a size x size buffer.
func Extract(src image.Image, r tile.Rect, size int, filter imaging.ResampleFilter) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "size %d", size)
	}
	if r.Empty() {
		return nil, errors.Wrapf(ErrEmptyRegion, "crop %dx%d at (%d,%d)", r.Width, r.Height, r.X, r.Y)
	}

	cropped := imaging.Crop(src, r.Rectangle(src.Bounds().Min))
	if cropped.Bounds().Empty() {
		return nil, errors.Wrapf(ErrEmptyRegion, "crop %+v outside %v", r, src.Bounds())
	}

	return imaging.Resize(cropped, size, size, filter), nil
}
