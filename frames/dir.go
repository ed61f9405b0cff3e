package frames

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/halfabluebanana/ASCII-dome/imageutil"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// DirSource reads an image sequence from a directory in lexicographic
// filename order. Given a single file it reads that file's whole
// directory, matching how sketch exports reference one frame of a
// sequence.
type DirSource struct {
	paths []string
	pos   int
	limit int
}

// NewDirSource lists the png/jpg frames under path.
func NewDirSource(path string) (*DirSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("frame source %s: %w", path, err)
	}

	dir := path
	if !info.IsDir() {
		dir = filepath.Dir(path)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("frame source %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no image frames found in %s", dir)
	}
	return &DirSource{paths: paths}, nil
}

// Len returns the total number of frames found.
func (s *DirSource) Len() int { return len(s.paths) }

// Limit caps the number of frames the source yields. Zero means all.
func (s *DirSource) Limit(n int) { s.limit = n }

// Next loads the next frame in sequence.
func (s *DirSource) Next() (image.Image, error) {
	if s.pos >= len(s.paths) {
		return nil, io.EOF
	}
	if s.limit > 0 && s.pos >= s.limit {
		return nil, io.EOF
	}

	path := s.paths[s.pos]
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.pos++
	return img, nil
}

// Close implements Source.
func (s *DirSource) Close() error { return nil }

// DirSink writes frames as zero-padded sequential PNGs into a directory.
// Each frame is written to a temp file and renamed into place, so a
// failed write never leaves a broken frame with a valid sequence name.
type DirSink struct {
	dir  string
	next int
}

// NewDirSink creates the output directory if needed.
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("frame sink %s: %w", dir, err)
	}
	return &DirSink{dir: dir}, nil
}

// Dir returns the output directory.
func (s *DirSink) Dir() string { return s.dir }

// Count returns the number of frames written so far.
func (s *DirSink) Count() int { return s.next }

// Write stores the next frame in sequence.
func (s *DirSink) Write(img image.Image) error {
	name := fmt.Sprintf(FramePattern, s.next)
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"

	if err := imageutil.SavePNG(img, tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", name, err)
	}

	s.next++
	return nil
}

// Close implements Sink.
func (s *DirSink) Close() error { return nil }
