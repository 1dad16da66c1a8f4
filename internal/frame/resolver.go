package frame

import (
	"fmt"
	"image"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/kiesman99/tokenizer/pkg/token"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// None is the frame id that means "no frame"
const None = 0

// Resolver maps a frame id to a frame image resized to size x size
type Resolver interface {
	Resolve(id, size int) (*image.NRGBA, error)
	List() ([]int, error)
}

var assetName = regexp.MustCompile(`^border-(\d+)\.png$`)

// DirResolver loads frames named border-<id>.png from a directory
type DirResolver struct {
	fs  afero.Fs
	dir string
}

// NewDirResolver creates a resolver reading frames from dir on fs
func NewDirResolver(fs afero.Fs, dir string) *DirResolver {
	return &DirResolver{fs: fs, dir: dir}
}

// Path returns where the frame with the given id is expected
func (d *DirResolver) Path(id int) string {
	return filepath.Join(d.dir, fmt.Sprintf("border-%d.png", id))
}

// Resolve loads frame id and resamples it to size x size. id None yields a
// nil frame.
func (d *DirResolver) Resolve(id, size int) (*image.NRGBA, error) {
	if id == None {
		return nil, nil
	}
	if id < 0 {
		return nil, errors.Wrapf(token.ErrInvalidFrame, "frame %d", id)
	}
	if size <= 0 {
		return nil, errors.Wrapf(token.ErrInvalidSize, "size %d", size)
	}

	path := d.Path(id)
	f, err := d.fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(token.ErrInvalidFrame, "frame %d: %v", id, err)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(token.ErrInvalidFrame, "frame %d: decode %s: %v", id, path, err)
	}

	return imaging.Resize(img, size, size, imaging.Lanczos), nil
}

// List returns the ids of all frames present in the directory, ascending
func (d *DirResolver) List() ([]int, error) {
	entries, err := afero.ReadDir(d.fs, d.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read frame directory %s", d.dir)
	}

	var ids []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := assetName.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil || id == None {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids, nil
}
