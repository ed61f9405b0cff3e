// Package asciidome converts raster frames into ASCII-art rasters for
// dome projection. An Alphabet orders characters by rendered brightness;
// the engine downsamples each frame to a character grid against that
// ordering and re-renders the grid as a fixed-size raster.
package asciidome

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"

	"github.com/halfabluebanana/ASCII-dome/frames"
	"github.com/halfabluebanana/ASCII-dome/imageutil"
)

// Engine converts raw frames into rendered character frames. One engine
// binds an alphabet to the font and size it was built for; frame
// conversions are independent and share no mutable state, so a single
// engine may be used from multiple goroutines once constructed.
type Engine struct {
	alphabet   *Alphabet
	font       *truetype.Font
	fontSize   float64
	outputSize int
	interp     imageutil.Interpolation

	metrics FontMetrics
	cols    int
	rows    int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithFontSize sets the rendering point size.
func WithFontSize(size float64) EngineOption {
	return func(e *Engine) { e.fontSize = size }
}

// WithOutputSize sets the square output raster edge.
func WithOutputSize(size int) EngineOption {
	return func(e *Engine) { e.outputSize = size }
}

// WithInterpolation selects the downsampling filter.
func WithInterpolation(interp imageutil.Interpolation) EngineOption {
	return func(e *Engine) { e.interp = interp }
}

// NewEngine validates the alphabet and font metrics up front so frame
// conversion can never fail per-pixel on a bad configuration.
func NewEngine(a *Alphabet, f *truetype.Font, opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		alphabet:   a,
		font:       f,
		fontSize:   DefaultFontSize,
		outputSize: DefaultOutputSize,
		interp:     imageutil.InterpolationArea,
	}
	for _, opt := range opts {
		opt(e)
	}

	if a == nil || a.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}
	if f == nil {
		return nil, errors.New("engine: nil font")
	}
	if e.outputSize <= 0 {
		return nil, fmt.Errorf("engine: output size %d", e.outputSize)
	}

	m, err := NewFontMetrics(f, e.fontSize)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	e.metrics = m

	e.cols, e.rows = m.GridSize(e.outputSize)
	if e.cols < 1 || e.rows < 1 {
		return nil, fmt.Errorf(
			"engine: cell %dx%d at size %g exceeds output %d",
			m.CellWidth, m.CellHeight, e.fontSize, e.outputSize)
	}

	return e, nil
}

// GridDims returns the character grid dimensions the engine maps to.
func (e *Engine) GridDims() (cols, rows int) { return e.cols, e.rows }

// Metrics returns the engine's character cell metrics.
func (e *Engine) Metrics() FontMetrics { return e.metrics }

// OutputSize returns the square output raster edge.
func (e *Engine) OutputSize() int { return e.outputSize }

// MapImage converts one raw frame into a character grid without
// rendering it.
func (e *Engine) MapImage(img image.Image) (CharGrid, error) {
	gray := imageutil.GrayFromImage(img)
	return MapFrame(gray, e.alphabet, e.cols, e.rows, e.interp)
}

// ConvertImage converts one raw frame into a rendered output raster:
// grayscale, map to characters, render.
func (e *Engine) ConvertImage(img image.Image) (*image.Gray, error) {
	grid, err := e.MapImage(img)
	if err != nil {
		return nil, fmt.Errorf("map: %w", err)
	}

	out, err := RenderGrid(grid, e.font, e.fontSize, e.metrics, e.outputSize)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return out, nil
}

// ConvertAll drains a frame source through the engine into a sink and
// returns the number of frames written. A failure aborts the batch with
// the zero-based frame index and the stage that failed; the failed frame
// is never written, so a partial output directory still contains only
// good frames in sequence order.
func (e *Engine) ConvertAll(src frames.Source, sink frames.Sink) (int, error) {
	n := 0
	for {
		img, err := src.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("frame %d: read: %w", n, err)
		}

		out, err := e.ConvertImage(img)
		if err != nil {
			return n, fmt.Errorf("frame %d: %w", n, err)
		}

		if err := sink.Write(out); err != nil {
			return n, fmt.Errorf("frame %d: write: %w", n, err)
		}
		n++

		if n%10 == 0 {
			log.WithField("frames", n).Debug("converted")
		}
	}
}
