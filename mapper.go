package asciidome

import (
	"fmt"

	"github.com/halfabluebanana/ASCII-dome/imageutil"
)

// MapFrame downsamples a grayscale raster to exactly cols×rows and
// assigns each cell a character from the alphabet by quantized
// brightness. The resize uses an area-correct filter so fine detail
// averages into cells instead of aliasing into noisy character choices.
//
// The mapping is monotonic non-decreasing in pixel value: a darker pixel
// never maps to a lighter character than a brighter one would.
func MapFrame(img *imageutil.GrayImage, a *Alphabet, cols, rows int, interp imageutil.Interpolation) (CharGrid, error) {
	if a == nil || a.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("grid dimensions %dx%d", cols, rows)
	}

	small := imageutil.ResizeGray(img, cols, rows, interp)

	grid := make(CharGrid, rows)
	for y := 0; y < rows; y++ {
		row := make([]rune, cols)
		for x := 0; x < cols; x++ {
			row[x] = a.CharFor(small.GetGray(x, y))
		}
		grid[y] = row
	}
	return grid, nil
}
