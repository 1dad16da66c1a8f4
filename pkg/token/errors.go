package token

import (
	"github.com/kiesman99/tokenizer/pkg/tile"
	"github.com/pkg/errors"
)

// Error kinds surfaced by the tokenization pipeline and its collaborators.
// Callers match them with errors.Is; the wrapped message carries the detail.
var (
	ErrInvalidTileNumber = tile.ErrInvalidTileNumber
	ErrInvalidFrame      = errors.New("invalid frame")
	ErrSourceUnreadable  = errors.New("source image unreadable")
	ErrSourceTooLarge    = errors.New("source image too large")
	ErrOutputWriteFailed = errors.New("output write failed")
	ErrInvalidSize       = errors.New("invalid token size")
	ErrInvalidFilter     = errors.New("invalid resample filter")
	ErrEmptyRegion       = errors.New("selected region is empty")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
