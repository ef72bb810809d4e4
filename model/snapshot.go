package model

// Snapshot is a read-only copy of one generation, handed to renderers.
type Snapshot struct {
	width  int
	height int
	cells  [][]bool
}

// Width returns the width of the captured grid
func (s *Snapshot) Width() int { return s.width }

// Height returns the height of the captured grid
func (s *Snapshot) Height() int { return s.height }

// Alive reports whether (x, y) was alive when the snapshot was taken.
func (s *Snapshot) Alive(x, y int) bool {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return false
	}
	return s.cells[y][x]
}

// Population counts the live cells in the snapshot
func (s *Snapshot) Population() (count int) {
	for _, row := range s.cells {
		for _, alive := range row {
			if alive {
				count++
			}
		}
	}
	return
}
