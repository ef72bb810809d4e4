package model

import (
	"crypto/md5"
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/libgol/rules"
	"github.com/sheikhrachel/libgol/seed"
)

var (
	// ErrInvalidDimensions is returned when a grid is requested with a non-positive width or height.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrOutOfRange is returned when an initial coordinate lies outside the grid.
	ErrOutOfRange = seed.ErrOutOfRange
)

// Coord is a cell position on the grid
type Coord = seed.Coord

// Neighbor is one slot of a Moore neighborhood. Valid is false when the
// position falls outside the grid.
type Neighbor struct {
	Coord
	Valid bool
}

// Grid is a fixed-size board with hard edges
type Grid struct {
	width  int
	height int
	cells  [][]bool // cells[y][x]
	next   [][]bool // scratch buffer for the generation being computed
}

// NewGrid creates a width x height grid with the given cells alive.
//
// A nil initial set seeds the grid randomly from the wall clock; pass an
// empty, non-nil slice for an empty grid. Dimensions and coordinates are
// validated before anything is allocated.
func NewGrid(width, height int, initial []Coord) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGrid] %dx%d", width, height)
	}
	if initial == nil {
		initial = seed.Random(width, height, seed.TimeSeed())
	}
	for _, c := range initial {
		if !c.In(width, height) {
			return nil, errors.Wrapf(ErrOutOfRange,
				"[NewGrid] cell (%d,%d) outside %dx%d grid", c.X, c.Y, width, height)
		}
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  makeCells(width, height),
		next:   makeCells(width, height),
	}
	for _, c := range initial {
		g.cells[c.Y][c.X] = true
	}
	return g, nil
}

func makeCells(width, height int) [][]bool {
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return cells
}

// Width returns the width of the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the height of the grid
func (g *Grid) Height() int {
	return g.height
}

// Alive reports whether the cell at (x, y) is alive. Positions outside the grid are dead.
func (g *Grid) Alive(x, y int) bool {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return false
	}
	return g.cells[y][x]
}

// NeighborsOf returns the Moore neighborhood of (x, y), marking positions
// beyond the grid edges invalid. Interior cells have 8 valid neighbors,
// edge cells 5 and corner cells 3.
func (g *Grid) NeighborsOf(x, y int) [8]Neighbor {
	offsets := [8]Coord{
		{-1, 1}, {0, 1}, {1, 1},
		{-1, 0}, {1, 0},
		{-1, -1}, {0, -1}, {1, -1},
	}

	var out [8]Neighbor
	for i, off := range offsets {
		c := Coord{X: x + off.X, Y: y + off.Y}
		out[i] = Neighbor{Coord: c, Valid: c.In(g.width, g.height)}
	}
	return out
}

// LiveNeighbors counts the live cells in the neighborhood of (x, y)
func (g *Grid) LiveNeighbors(x, y int) (count int) {
	for _, n := range g.NeighborsOf(x, y) {
		if n.Valid && g.cells[n.Y][n.X] {
			count++
		}
	}
	return
}

// stepRows writes the next state of rows [startRow, endRow) into g.next,
// reading only g.cells.
func (g *Grid) stepRows(startRow, endRow int) {
	for y := startRow; y < endRow; y++ {
		for x := range g.width {
			g.next[y][x] = rules.ApplyConwayRules(g.LiveNeighbors(x, y), g.cells[y][x])
		}
	}
}

// Step advances the grid by one generation. Every cell is decided from the
// previous generation; the new generation replaces the old one only once
// it is complete.
func (g *Grid) Step() {
	g.stepRows(0, g.height)
	g.cells, g.next = g.next, g.cells
}

// StepParallel advances the grid by one generation, splitting rows across
// workers. The result is identical to Step. workers <= 0 uses one worker
// per CPU.
func (g *Grid) StepParallel(workers int) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		eg            errgroup.Group
		rowsPerWorker = (g.height + workers - 1) / workers // Ceiling division
	)

	for i := range workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			g.stepRows(startRow, endRow)
			return nil
		})
	}

	_ = eg.Wait()
	g.cells, g.next = g.next, g.cells
}

// Population returns the total number of living cells
func (g *Grid) Population() (count int) {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// LiveCells lists the live cells in row-major order
func (g *Grid) LiveCells() []Coord {
	var live []Coord
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				live = append(live, Coord{X: x, Y: y})
			}
		}
	}
	return live
}

// Snapshot copies the current generation for readers outside the grid
func (g *Grid) Snapshot() *Snapshot {
	cells := makeCells(g.width, g.height)
	for y := range g.height {
		copy(cells[y], g.cells[y])
	}
	return &Snapshot{width: g.width, height: g.height, cells: cells}
}

// Hash returns an MD5 digest of the current generation
func (g *Grid) Hash() string {
	h := md5.New()
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
