package asciidome

import (
	"errors"
	"image"
	"testing"
)

// inkBounds returns the bounding box of all non-black pixels.
func inkBounds(img *image.Gray) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.GrayAt(x, y).Y > 0 {
				if x < minX {
					minX = x
				}
				if y < minY {
					minY = y
				}
				if x > maxX {
					maxX = x
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

func uniformGrid(r rune, cols, rows int) CharGrid {
	grid := make(CharGrid, rows)
	for y := range grid {
		row := make([]rune, cols)
		for x := range row {
			row[x] = r
		}
		grid[y] = row
	}
	return grid
}

func TestRenderGridOutputSize(t *testing.T) {
	f := loadTestFont(t)
	m, err := NewFontMetrics(f, 10)
	if err != nil {
		t.Fatal(err)
	}

	for _, size := range []int{64, 256, 2048} {
		img, err := RenderGrid(uniformGrid('#', 3, 2), f, 10, m, size)
		if err != nil {
			t.Fatal(err)
		}
		if img.Bounds().Dx() != size || img.Bounds().Dy() != size {
			t.Errorf("Expected %dx%d raster, got %dx%d",
				size, size, img.Bounds().Dx(), img.Bounds().Dy())
		}
	}
}

func TestRenderGridBackgroundAndInk(t *testing.T) {
	f := loadTestFont(t)
	m, err := NewFontMetrics(f, 12)
	if err != nil {
		t.Fatal(err)
	}

	img, err := RenderGrid(uniformGrid('W', 4, 4), f, 12, m, 256)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := inkBounds(img); !ok {
		t.Fatal("Rendered grid produced no ink")
	}
	// Corners stay background black for a small centered block.
	if v := img.GrayAt(0, 0).Y; v != 0 {
		t.Errorf("Corner should be black, got %d", v)
	}
}

func TestRenderGridCentered(t *testing.T) {
	f := loadTestFont(t)
	m, err := NewFontMetrics(f, 12)
	if err != nil {
		t.Fatal(err)
	}

	const size = 512
	img, err := RenderGrid(uniformGrid('W', 6, 4), f, 12, m, size)
	if err != nil {
		t.Fatal(err)
	}

	ink, ok := inkBounds(img)
	if !ok {
		t.Fatal("no ink rendered")
	}

	// The ink bounding box center must sit within one cell of the
	// raster center; glyph sidebearings keep it from being pixel-exact.
	cx := (ink.Min.X + ink.Max.X) / 2
	cy := (ink.Min.Y + ink.Max.Y) / 2
	if dx := cx - size/2; dx < -m.CellWidth || dx > m.CellWidth {
		t.Errorf("Horizontal center off by %d (cell %d)", dx, m.CellWidth)
	}
	if dy := cy - size/2; dy < -m.CellHeight || dy > m.CellHeight {
		t.Errorf("Vertical center off by %d (cell %d)", dy, m.CellHeight)
	}
}

func TestRenderGridOverflowClips(t *testing.T) {
	f := loadTestFont(t)
	m, err := NewFontMetrics(f, 12)
	if err != nil {
		t.Fatal(err)
	}

	// A block far larger than the raster clips instead of failing.
	cols := 64/m.CellWidth + 20
	rows := 64/m.CellHeight + 20
	img, err := RenderGrid(uniformGrid('W', cols, rows), f, 12, m, 64)
	if err != nil {
		t.Fatalf("Oversized grid should clip, got error: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Errorf("Expected 64x64 raster, got %v", img.Bounds())
	}
}

func TestRenderGridRaggedFatal(t *testing.T) {
	f := loadTestFont(t)
	m := FontMetrics{CellWidth: 6, CellHeight: 12}

	grid := CharGrid{[]rune("abc"), []rune("de")}
	if _, err := RenderGrid(grid, f, 10, m, 64); !errors.Is(err, ErrRaggedGrid) {
		t.Errorf("Expected ErrRaggedGrid, got %v", err)
	}
}

func TestRenderGridAllSpacesIsBlack(t *testing.T) {
	f := loadTestFont(t)
	m, err := NewFontMetrics(f, 10)
	if err != nil {
		t.Fatal(err)
	}

	img, err := RenderGrid(uniformGrid(SpaceChar, 5, 5), f, 10, m, 128)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := inkBounds(img); ok {
		t.Error("All-space grid should render pure black")
	}
}
