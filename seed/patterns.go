package seed

import (
	"sort"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownPattern is returned for a selector that is neither "random" nor a catalog entry.
	ErrUnknownPattern = errors.New("unknown pattern")
	// ErrOutOfRange is returned when a coordinate falls outside the grid.
	ErrOutOfRange = errors.New("coordinate out of range")
)

// Coord is an (x, y) cell position, 0-indexed from the grid origin.
type Coord struct {
	X, Y int
}

// In reports whether c lies inside a width x height grid.
func (c Coord) In(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// catalog maps a pattern name to its offsets from the grid center
var catalog = map[string][]Coord{
	"rpentomino": {{0, 1}, {1, 1}, {-1, 0}, {0, 0}, {0, -1}},
	"diehard":    {{-3, 0}, {-2, 0}, {-2, -1}, {3, 1}, {2, -1}, {3, -1}, {4, -1}},
	"glider":     {{0, -1}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}},
	"blinker":    {{-1, 0}, {0, 0}, {1, 0}},
	"block":      {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	"acorn":      {{-3, 1}, {-2, 1}, {-2, -1}, {0, 0}, {1, 1}, {2, 1}, {3, 1}},
}

// Names returns the catalog pattern names in sorted order
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pattern places a named pattern around the center (width/2, height/2) of a grid.
// Patterns that do not fit the grid are rejected rather than clipped.
func Pattern(name string, width, height int) ([]Coord, error) {
	offsets, ok := catalog[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPattern, "[Pattern] %q", name)
	}

	cx, cy := width/2, height/2
	coords := make([]Coord, 0, len(offsets))
	for _, off := range offsets {
		c := Coord{X: cx + off.X, Y: cy + off.Y}
		if !c.In(width, height) {
			return nil, errors.Wrapf(ErrOutOfRange,
				"[Pattern] %s cell (%d,%d) does not fit a %dx%d grid", name, c.X, c.Y, width, height)
		}
		coords = append(coords, c)
	}
	return coords, nil
}
