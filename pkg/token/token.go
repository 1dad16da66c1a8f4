// Package token turns a region of a grid montage into a round token image.
//
// The pipeline runs in a fixed order: the tile selection picks a crop window,
// Extract resamples it to a square, Mask cuts the circle and Composite lays an
// optional frame on top. Every stage works on in-memory buffers only.
package token

import (
	"image"

	"github.com/kiesman99/tokenizer/pkg/tile"
	"github.com/pkg/errors"
)

// Options controls a single tokenization
type Options struct {
	Tile   tile.Selection
	Size   int
	Filter string
}

// Build runs the full pipeline over src. border must already be resized to
// Size x Size, or be nil for a frameless token.
func Build(src image.Image, opts Options, border *image.NRGBA) (*image.NRGBA, error) {
	if src == nil {
		return nil, errors.Wrap(ErrSourceUnreadable, "no source image")
	}

	filter, err := ParseFilter(opts.Filter)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	rect := opts.Tile.Rect(b.Dx(), b.Dy())

	img, err := Extract(src, rect, opts.Size, filter)
	if err != nil {
		return nil, errors.Wrapf(err, "tile %s", opts.Tile)
	}

	Mask(img)

	return Composite(img, border), nil
}
