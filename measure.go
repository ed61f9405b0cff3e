package asciidome

import (
	"errors"
	"fmt"
	"image"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// DefaultMeasureCanvas is the edge length of the square canvas used for
// brightness measurement. Large enough that glyph anti-aliasing averages
// out; small enough to keep alphabet builds fast.
const DefaultMeasureCanvas = 50

// ErrUnrenderable reports a character the font cannot produce a glyph for.
var ErrUnrenderable = errors.New("character cannot be rendered")

// GlyphBrightness renders a single character centered on a canvas×canvas
// black gray canvas at full intensity and returns the mean pixel value in
// [0, 255]. It is a pure function of (char, font, size, canvas).
//
// The draw origin is translated by the glyph's bounding-box offset so the
// glyph lands centered even in fonts whose bounding box does not start at
// the origin.
func GlyphBrightness(f *truetype.Font, size float64, r rune, canvas int) (float64, error) {
	// The face substitutes .notdef for unmapped runes, which would
	// silently measure the replacement box instead of the character.
	if r != SpaceChar && f.Index(r) == 0 {
		return 0, fmt.Errorf("%q: %w", r, ErrUnrenderable)
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	bounds, _, ok := face.GlyphBounds(r)
	if !ok {
		return 0, fmt.Errorf("%q: %w", r, ErrUnrenderable)
	}

	w := (bounds.Max.X - bounds.Min.X).Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()
	x := (canvas-w)/2 - bounds.Min.X.Floor()
	y := (canvas-h)/2 - bounds.Min.Y.Floor()

	img := image.NewGray(image.Rect(0, 0, canvas, canvas))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	if _, err := ctx.DrawString(string(r), freetype.Pt(x, y)); err != nil {
		return 0, fmt.Errorf("%q: %w: %v", r, ErrUnrenderable, err)
	}

	var sum uint64
	for _, p := range img.Pix {
		sum += uint64(p)
	}
	return float64(sum) / float64(len(img.Pix)), nil
}
