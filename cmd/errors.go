package cmd

import (
	"github.com/pkg/errors"

	"github.com/kiesman99/tokenizer/pkg/token"
)

// Process exit codes, one per error kind so scripts can tell failures apart
const (
	exitFailure           = 1
	exitInvalidTileNumber = 2
	exitInvalidFrame      = 3
	exitSourceUnreadable  = 4
	exitOutputWriteFailed = 5
	exitInvalidInput      = 6
)

func exitCode(err error) int {
	switch {
	case errors.Is(err, token.ErrInvalidTileNumber):
		return exitInvalidTileNumber
	case errors.Is(err, token.ErrInvalidFrame):
		return exitInvalidFrame
	case errors.Is(err, token.ErrSourceUnreadable):
		return exitSourceUnreadable
	case errors.Is(err, token.ErrOutputWriteFailed):
		return exitOutputWriteFailed
	case errors.Is(err, token.ErrInvalidSize),
		errors.Is(err, token.ErrInvalidFilter),
		errors.Is(err, token.ErrEmptyRegion),
		errors.Is(err, token.ErrSourceTooLarge),
		errors.Is(err, token.ErrUnsupportedFormat):
		return exitInvalidInput
	default:
		return exitFailure
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, token.ErrInvalidTileNumber):
		return "Invalid tile number. You must select 1 - 4, or leave this blank for upscaled images"
	case errors.Is(err, token.ErrInvalidFrame):
		return "Invalid frame. We searched for border-<n>.png in the assets folder but found nothing.\n" + err.Error()
	case errors.Is(err, token.ErrSourceUnreadable):
		return "Unable to read the designated file. Check the location and try again.\n" + err.Error()
	case errors.Is(err, token.ErrOutputWriteFailed):
		return "Unable to write the token.\n" + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
