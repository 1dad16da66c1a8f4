package cmd

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiesman99/tokenizer/internal/tokenize"
	"github.com/kiesman99/tokenizer/pkg/tile"
	"github.com/kiesman99/tokenizer/pkg/token"
)

func run(t *testing.T, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestRootCommand_WritesToken(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "grid.png")
	out := filepath.Join(dir, "token.png")
	require.NoError(t, imaging.Save(imaging.New(128, 128, color.NRGBA{G: 255, A: 255}), src))

	stdout, err := run(t, src, "--tile", "3", "--size", "64", "--frame", "0", "-o", out, "--assets", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Success!")

	img, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
}

func TestRootCommand_MissingFrameWritesNothing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "grid.png")
	out := filepath.Join(dir, "token.png")
	require.NoError(t, imaging.Save(imaging.New(32, 32, color.NRGBA{A: 255}), src))

	_, err := run(t, src, "--tile", "1", "--size", "16", "--frame", "7", "-o", out, "--assets", dir)
	require.Error(t, err)
	assert.Equal(t, exitInvalidFrame, exitCode(err))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootCommand_InvalidTileWritesNothing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "grid.png")
	out := filepath.Join(dir, "token.png")
	require.NoError(t, imaging.Save(imaging.New(32, 32, color.NRGBA{A: 255}), src))

	_, err := run(t, src, "--tile", "5", "--size", "16", "--frame", "0", "-o", out, "--assets", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, token.ErrInvalidTileNumber))
	assert.Equal(t, exitInvalidTileNumber, exitCode(err))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootCommand_SizeOverLimit(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "grid.png")
	out := filepath.Join(dir, "token.png")
	require.NoError(t, imaging.Save(imaging.New(32, 32, color.NRGBA{A: 255}), src))
	t.Cleanup(func() {
		rootCmd.PersistentFlags().Set("max-size", strconv.Itoa(tokenize.DefaultMaxSize))
	})

	_, err := run(t, src, "--tile", "1", "--size", "65", "--max-size", "64", "--frame", "0", "-o", out, "--assets", dir)
	require.Error(t, err)
	assert.Equal(t, exitInvalidInput, exitCode(err))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExitCode(t *testing.T) {
	wrap := func(kind error) error { return errors.Wrap(kind, "context") }

	assert.Equal(t, exitInvalidTileNumber, exitCode(wrap(tile.ErrInvalidTileNumber)))
	assert.Equal(t, exitInvalidFrame, exitCode(wrap(token.ErrInvalidFrame)))
	assert.Equal(t, exitSourceUnreadable, exitCode(wrap(token.ErrSourceUnreadable)))
	assert.Equal(t, exitOutputWriteFailed, exitCode(wrap(token.ErrOutputWriteFailed)))
	assert.Equal(t, exitInvalidInput, exitCode(wrap(token.ErrInvalidSize)))
	assert.Equal(t, exitInvalidInput, exitCode(wrap(token.ErrEmptyRegion)))
	assert.Equal(t, exitInvalidInput, exitCode(wrap(token.ErrSourceTooLarge)))
	assert.Equal(t, exitFailure, exitCode(errors.New("boom")))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t,
		"Invalid tile number. You must select 1 - 4, or leave this blank for upscaled images",
		userMessage(errors.Wrap(tile.ErrInvalidTileNumber, "tile 5")))
	assert.Contains(t, userMessage(token.ErrSourceUnreadable), "Unable to read the designated file")
	assert.Equal(t, "Error: boom", userMessage(errors.New("boom")))
}
