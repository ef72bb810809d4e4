package seed

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
)

// RandomSelector picks the randomized strategy in Select.
const RandomSelector = "random"

// minLiveFraction is the lower bound on the share of live cells a random start draws.
const minLiveFraction = 0.25

// TimeSeed returns a seed derived from the wall clock.
func TimeSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// Random draws a random starting population for a width x height grid.
//
// The number of draws n is uniform in [round(0.25*w*h), w*h) and each draw
// picks x and y independently and uniformly, with replacement, so the
// resulting set may contain duplicates. The same seed always yields the
// same coordinates.
func Random(width, height int, seed uint64) []Coord {
	if width <= 0 || height <= 0 {
		return nil
	}
	r := rand.New(rand.NewPCG(seed, 0))

	total := width * height
	lo := int(math.RoundToEven(float64(total) * minLiveFraction))
	n := lo
	if total > lo {
		n += r.IntN(total - lo)
	}

	coords := make([]Coord, n)
	for i := range coords {
		coords[i] = Coord{X: r.IntN(width), Y: r.IntN(height)}
	}
	return coords
}

// Select resolves an initial-pattern selector to a coordinate set. The seed
// is only consulted by the random strategy.
func Select(selector string, width, height int, seed uint64) ([]Coord, error) {
	if selector == RandomSelector {
		return Random(width, height, seed), nil
	}
	coords, err := Pattern(selector, width, height)
	if err != nil {
		return nil, errors.Wrap(err, "[Select]")
	}
	return coords, nil
}

// Known reports whether selector names a strategy Select understands.
func Known(selector string) bool {
	if selector == RandomSelector {
		return true
	}
	_, ok := catalog[selector]
	return ok
}
