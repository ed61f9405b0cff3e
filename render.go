package asciidome

import (
	"fmt"
	"image"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// DefaultOutputSize is the square output raster edge for dome projection.
const DefaultOutputSize = 2048

// RenderGrid draws a character grid as white text on a black
// outputSize×outputSize gray raster, one glyph per cell in a monospaced
// layout. The text block is centered with floor division; a block larger
// than the raster gets negative offsets and clips at the edges rather
// than failing.
func RenderGrid(grid CharGrid, f *truetype.Font, size float64, m FontMetrics, outputSize int) (*image.Gray, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	img := image.NewGray(image.Rect(0, 0, outputSize, outputSize))

	blockW := grid.Cols() * m.CellWidth
	blockH := grid.Rows() * m.CellHeight
	xOff := floorDiv(outputSize-blockW, 2)
	yOff := floorDiv(outputSize-blockH, 2)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	for row, line := range grid {
		y := yOff + row*m.CellHeight - m.originY
		for col, r := range line {
			if r == SpaceChar {
				continue
			}
			x := xOff + col*m.CellWidth - m.originX
			if _, err := ctx.DrawString(string(r), freetype.Pt(x, y)); err != nil {
				return nil, fmt.Errorf("render cell (%d,%d) %q: %w",
					row, col, r, err)
			}
		}
	}

	return img, nil
}

// floorDiv divides rounding toward negative infinity, matching the
// centering contract for blocks larger than the output raster.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
