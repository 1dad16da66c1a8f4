package tokenize

import (
	"bytes"
	"image"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/kiesman99/tokenizer/internal/frame"
	"github.com/kiesman99/tokenizer/pkg/tile"
	"github.com/kiesman99/tokenizer/pkg/token"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	// Generative-art tools commonly emit WebP; BMP and TIFF come along with
	// imaging's own encoders.
	_ "golang.org/x/image/webp"
)

// DefaultOutput is the file written when no output path is given
const DefaultOutput = "Token.png"

// DefaultSize is the token edge length in pixels
const DefaultSize = 256

// DefaultFrame is the frame applied when none is chosen
const DefaultFrame = 1

// DefaultMaxSize is the largest token edge length accepted
const DefaultMaxSize = 4096

// DefaultMaxSourcePixels caps width*height of a decoded montage
const DefaultMaxSourcePixels = 10000 * 10000

// Request describes one tokenization
type Request struct {
	Source string // path of the montage, used by TokenizeFile
	Tile   tile.Selection
	Size   int
	Frame  int
	Output string
	Filter string
}

// Result holds a finished token
type Result struct {
	Image  *image.NRGBA
	Data   []byte
	Format imaging.Format
}

// Tokenizer wires image I/O and frame lookup around the token pipeline
type Tokenizer struct {
	fs              afero.Fs
	frames          frame.Resolver
	logger          *slog.Logger
	maxSize         int
	maxSourcePixels int64
}

// Option adjusts a Tokenizer
type Option func(*Tokenizer)

// WithMaxSize limits the token edge length. Non-positive values keep the
// default.
func WithMaxSize(n int) Option {
	return func(t *Tokenizer) {
		if n > 0 {
			t.maxSize = n
		}
	}
}

// WithMaxSourcePixels limits the pixel count of a montage. Non-positive values
// keep the default.
func WithMaxSourcePixels(n int64) Option {
	return func(t *Tokenizer) {
		if n > 0 {
			t.maxSourcePixels = n
		}
	}
}

// New creates a tokenizer reading and writing through fs
func New(fs afero.Fs, frames frame.Resolver, logger *slog.Logger, opts ...Option) *Tokenizer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	t := &Tokenizer{
		fs:              fs,
		frames:          frames,
		logger:          logger,
		maxSize:         DefaultMaxSize,
		maxSourcePixels: DefaultMaxSourcePixels,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// MaxSize returns the largest token edge length accepted
func (t *Tokenizer) MaxSize() int {
	return t.maxSize
}

// CheckSize rejects token sizes outside 1..MaxSize
func (t *Tokenizer) CheckSize(size int) error {
	if size <= 0 || size > t.maxSize {
		return errors.Wrapf(token.ErrInvalidSize, "size %d not in 1..%d", size, t.maxSize)
	}
	return nil
}

// Frames returns the frame resolver in use
func (t *Tokenizer) Frames() frame.Resolver {
	return t.frames
}

// OutputFormat picks the encoder for path. Formats without an alpha channel
// cannot carry the circular cut and are rejected.
func OutputFormat(path string) (imaging.Format, error) {
	if path == "" {
		path = DefaultOutput
	}
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, errors.Wrapf(token.ErrUnsupportedFormat, "%s: %v", path, err)
	}
	if format == imaging.JPEG {
		return 0, errors.Wrapf(token.ErrUnsupportedFormat, "%s: JPEG has no alpha channel", path)
	}
	return format, nil
}

// Tokenize decodes a montage from r, builds the token and encodes it in the
// format implied by req.Output.
func (t *Tokenizer) Tokenize(r io.Reader, req Request) (*Result, error) {
	format, err := OutputFormat(req.Output)
	if err != nil {
		return nil, err
	}

	if err := t.CheckSize(req.Size); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(token.ErrSourceUnreadable, "read: %v", err)
	}

	// Check the header before decoding allocates the full raster.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(token.ErrSourceUnreadable, "decode: %v", err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > t.maxSourcePixels {
		return nil, errors.Wrapf(token.ErrSourceTooLarge, "%dx%d exceeds %d pixels", cfg.Width, cfg.Height, t.maxSourcePixels)
	}

	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(token.ErrSourceUnreadable, "decode: %v", err)
	}
	b := src.Bounds()
	t.logger.Debug("decoded source", "width", b.Dx(), "height", b.Dy())

	var border *image.NRGBA
	if req.Frame != frame.None {
		border, err = t.frames.Resolve(req.Frame, req.Size)
		if err != nil {
			return nil, err
		}
		t.logger.Debug("resolved frame", "frame", req.Frame, "size", req.Size)
	}

	rect := req.Tile.Rect(b.Dx(), b.Dy())
	t.logger.Debug("selected region", "tile", req.Tile.String(), "rect", rect.Rectangle(b.Min).String())

	img, err := token.Build(src, token.Options{
		Tile:   req.Tile,
		Size:   req.Size,
		Filter: req.Filter,
	}, border)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, errors.Wrapf(token.ErrOutputWriteFailed, "encode %s: %v", format, err)
	}

	return &Result{
		Image:  img,
		Data:   buf.Bytes(),
		Format: format,
	}, nil
}

// TokenizeFile reads req.Source and writes the token to req.Output. The output
// only appears once fully written; on failure nothing is left behind.
func (t *Tokenizer) TokenizeFile(req Request) (*Result, error) {
	if req.Output == "" {
		req.Output = DefaultOutput
	}

	f, err := t.fs.Open(req.Source)
	if err != nil {
		return nil, errors.Wrapf(token.ErrSourceUnreadable, "open %s: %v", req.Source, err)
	}
	defer f.Close()

	res, err := t.Tokenize(f, req)
	if err != nil {
		return nil, err
	}

	if err := t.write(req.Output, res.Data); err != nil {
		return nil, err
	}
	t.logger.Info("token written", "output", req.Output, "bytes", len(res.Data))

	return res, nil
}

func (t *Tokenizer) write(path string, data []byte) error {
	tmp, err := afero.TempFile(t.fs, filepath.Dir(path), ".token-*")
	if err != nil {
		return errors.Wrapf(token.ErrOutputWriteFailed, "create %s: %v", path, err)
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		t.fs.Remove(name)
		return errors.Wrapf(token.ErrOutputWriteFailed, "write %s: %v", path, err)
	}
	if err := tmp.Close(); err != nil {
		t.fs.Remove(name)
		return errors.Wrapf(token.ErrOutputWriteFailed, "close %s: %v", path, err)
	}
	if err := t.fs.Rename(name, path); err != nil {
		t.fs.Remove(name)
		return errors.Wrapf(token.ErrOutputWriteFailed, "rename %s: %v", path, err)
	}

	return nil
}
