package asciidome

import (
	"fmt"
	"os"
	"strings"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

const (
	// DefaultFontSize is the point size used for grid rendering.
	DefaultFontSize = 10.0

	// DefaultMeasureSize is the point size used for brightness measurement.
	DefaultMeasureSize = 30.0
)

// metricRefGlyph is the reference glyph for cell metrics. A capital W is
// the widest glyph in the monospaced fonts this pipeline targets, so its
// bounding box defines the character cell.
const metricRefGlyph = 'W'

// FontConfig enumerates the font aliases a deployment recognizes and the
// point size to render at. It is passed in explicitly so the engine stays
// pure with respect to any filesystem font registry.
type FontConfig struct {
	// Aliases maps short lowercase names (e.g. "menlo") to font file paths.
	Aliases map[string]string

	// Size is the point size for grid rendering.
	Size float64
}

// Resolve returns the file path for a font name. Unknown names are
// treated as paths themselves, so callers can pass either an alias or a
// direct path.
func (c FontConfig) Resolve(name string) string {
	if path, ok := c.Aliases[strings.ToLower(name)]; ok {
		return path
	}
	return name
}

// LoadFont parses a TrueType font from a file.
func LoadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}

	f, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}

	return f, nil
}

// FontMetrics describes the character cell derived from the reference
// glyph's bounding box at a given size. The origin fields carry the
// bounding-box offset from the draw origin, needed to place glyphs at
// exact cell positions.
type FontMetrics struct {
	CellWidth  int
	CellHeight int

	originX int
	originY int
}

// NewFontMetrics computes cell metrics for a font at the given point size.
// Returns an error if the reference glyph is missing or degenerate, since
// grid dimensions are undefined without a positive cell size.
func NewFontMetrics(f *truetype.Font, size float64) (FontMetrics, error) {
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	bounds, _, ok := face.GlyphBounds(metricRefGlyph)
	if !ok {
		return FontMetrics{}, fmt.Errorf(
			"font has no %q glyph for cell metrics", metricRefGlyph)
	}

	m := FontMetrics{
		CellWidth:  (bounds.Max.X - bounds.Min.X).Ceil(),
		CellHeight: (bounds.Max.Y - bounds.Min.Y).Ceil(),
		originX:    bounds.Min.X.Floor(),
		originY:    bounds.Min.Y.Floor(),
	}
	if m.CellWidth <= 0 || m.CellHeight <= 0 {
		return FontMetrics{}, fmt.Errorf(
			"degenerate cell metrics %dx%d at size %g",
			m.CellWidth, m.CellHeight, size)
	}

	return m, nil
}

// GridSize returns the character grid dimensions for a square output
// raster of the given size.
func (m FontMetrics) GridSize(outputSize int) (cols, rows int) {
	return outputSize / m.CellWidth, outputSize / m.CellHeight
}
