package asciidome

import (
	"errors"
	"fmt"
)

// ErrRaggedGrid reports a non-rectangular character grid. This is a
// contract violation by whatever produced the grid, never a legitimate
// input-driven condition.
var ErrRaggedGrid = errors.New("character grid is not rectangular")

// CharGrid is a rectangular grid of characters representing one
// downsampled frame. Row 0 is the top of the image. Grids are produced
// fresh per frame by MapFrame and are not mutated afterwards.
type CharGrid [][]rune

// Rows returns the number of rows.
func (g CharGrid) Rows() int { return len(g) }

// Cols returns the number of columns.
func (g CharGrid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Validate checks that the grid is non-empty and rectangular.
func (g CharGrid) Validate() error {
	if len(g) == 0 || len(g[0]) == 0 {
		return fmt.Errorf("%w: grid is empty", ErrRaggedGrid)
	}
	cols := len(g[0])
	for i, row := range g {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, want %d",
				ErrRaggedGrid, i, len(row), cols)
		}
	}
	return nil
}

// Lines renders the grid as one string per row, top to bottom. Useful
// for debugging and for tests.
func (g CharGrid) Lines() []string {
	lines := make([]string, len(g))
	for i, row := range g {
		lines[i] = string(row)
	}
	return lines
}
