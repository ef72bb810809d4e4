package model

import (
	"slices"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/libgol/seed"
)

func mustGrid(t *testing.T, width, height int, live ...Coord) *Grid {
	t.Helper()
	if live == nil {
		live = []Coord{}
	}
	g, err := NewGrid(width, height, live)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d): %v", width, height, err)
	}
	return g
}

func assertLive(t *testing.T, g *Grid, want ...Coord) {
	t.Helper()
	expects := map[Coord]bool{}
	for _, c := range want {
		expects[c] = true
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if alive, should := g.Alive(x, y), expects[Coord{x, y}]; alive != should {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", x, y, alive, should)
			}
		}
	}
}

func validCount(ns [8]Neighbor) (n int) {
	for _, nb := range ns {
		if nb.Valid {
			n++
		}
	}
	return
}

func TestNewGridInvalidDimensions(t *testing.T) {
	cases := []struct{ w, h int }{{0, 5}, {5, -1}, {0, 0}, {-3, -3}}
	for _, tc := range cases {
		g, err := NewGrid(tc.w, tc.h, []Coord{})
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewGrid(%d, %d) err = %v, want ErrInvalidDimensions", tc.w, tc.h, err)
		}
		if g != nil {
			t.Errorf("NewGrid(%d, %d) returned a grid alongside the error", tc.w, tc.h)
		}
	}
}

func TestNewGridOutOfRange(t *testing.T) {
	for _, c := range []Coord{{5, 0}, {0, 5}, {-1, 2}, {2, -1}} {
		g, err := NewGrid(5, 5, []Coord{{1, 1}, c})
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("seed %v: err = %v, want ErrOutOfRange", c, err)
		}
		if g != nil {
			t.Errorf("seed %v: grid returned alongside the error", c)
		}
	}
}

func TestNewGridSeedsCells(t *testing.T) {
	g := mustGrid(t, 4, 3, Coord{0, 0}, Coord{3, 2}, Coord{3, 2})
	assertLive(t, g, Coord{0, 0}, Coord{3, 2})
	if g.Population() != 2 {
		t.Fatalf("Population = %d, want 2 (duplicates collapse)", g.Population())
	}
}

func TestNewGridNilSeedsRandomly(t *testing.T) {
	g, err := NewGrid(10, 10, nil)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if g.Population() == 0 {
		t.Fatal("random seeding produced an empty grid")
	}
}

func TestNeighborsOfCounts(t *testing.T) {
	g := mustGrid(t, 5, 4)
	cases := []struct {
		name string
		x, y int
		want int
	}{
		{"interior", 2, 2, 8},
		{"corner origin", 0, 0, 3},
		{"corner far", 4, 3, 3},
		{"corner top right", 4, 0, 3},
		{"edge left", 0, 2, 5},
		{"edge bottom", 2, 3, 5},
		{"edge right", 4, 1, 5},
		{"edge top", 1, 0, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validCount(g.NeighborsOf(tc.x, tc.y)); got != tc.want {
				t.Fatalf("NeighborsOf(%d,%d) valid = %d, want %d", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestNeighborsOfInvalidSlotsExact(t *testing.T) {
	g := mustGrid(t, 6, 7)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			seen := map[Coord]bool{}
			for _, n := range g.NeighborsOf(x, y) {
				inBounds := n.X >= 0 && n.X < 6 && n.Y >= 0 && n.Y < 7
				if n.Valid != inBounds {
					t.Fatalf("(%d,%d) neighbor %v valid=%v, in bounds=%v", x, y, n.Coord, n.Valid, inBounds)
				}
				if n.Coord == (Coord{x, y}) {
					t.Fatalf("(%d,%d) listed itself as a neighbor", x, y)
				}
				if d := n.X - x; d < -1 || d > 1 {
					t.Fatalf("(%d,%d) neighbor %v not adjacent", x, y, n.Coord)
				}
				if d := n.Y - y; d < -1 || d > 1 {
					t.Fatalf("(%d,%d) neighbor %v not adjacent", x, y, n.Coord)
				}
				seen[n.Coord] = true
			}
			if len(seen) != 8 {
				t.Fatalf("(%d,%d) has %d distinct neighbor slots, want 8", x, y, len(seen))
			}
		}
	}
}

// TestStepRuleTable places a center cell with exactly k live neighbors for
// every k in 0..8 and both center states.
func TestStepRuleTable(t *testing.T) {
	ring := []Coord{{1, 1}, {2, 1}, {3, 1}, {1, 2}, {3, 2}, {1, 3}, {2, 3}, {3, 3}}
	center := Coord{2, 2}

	for k := 0; k <= 8; k++ {
		for _, alive := range []bool{true, false} {
			live := append([]Coord{}, ring[:k]...)
			if alive {
				live = append(live, center)
			}
			g := mustGrid(t, 5, 5, live...)
			if got := g.LiveNeighbors(center.X, center.Y); got != k {
				t.Fatalf("setup: LiveNeighbors = %d, want %d", got, k)
			}
			g.Step()

			want := (alive && (k == 2 || k == 3)) || (!alive && k == 3)
			if got := g.Alive(center.X, center.Y); got != want {
				t.Errorf("alive=%v neighbors=%d: next = %v, want %v", alive, k, got, want)
			}
		}
	}
}

func TestStepBlockStillLife(t *testing.T) {
	block := []Coord{{3, 3}, {4, 3}, {3, 4}, {4, 4}}
	g := mustGrid(t, 8, 8, block...)
	for i := 0; i < 10; i++ {
		g.Step()
		assertLive(t, g, block...)
	}
}

func TestStepBlinkerOscillation(t *testing.T) {
	horizontal := []Coord{{1, 2}, {2, 2}, {3, 2}}
	vertical := []Coord{{2, 1}, {2, 2}, {2, 3}}

	g := mustGrid(t, 5, 5, horizontal...)
	g.Step()
	assertLive(t, g, vertical...)
	g.Step()
	assertLive(t, g, horizontal...)
}

// A sequential in-place update would let the leftmost cell's death and the
// births above and below cascade into later cells of the same row.
func TestStepSimultaneousUpdate(t *testing.T) {
	g := mustGrid(t, 7, 7, Coord{2, 3}, Coord{3, 3}, Coord{4, 3})
	g.Step()
	assertLive(t, g, Coord{3, 2}, Coord{3, 3}, Coord{3, 4})
}

func TestStepCornerCellsHardEdges(t *testing.T) {
	// an L at the corner becomes a block; on a torus the far corners would also see it
	g := mustGrid(t, 6, 6, Coord{0, 0}, Coord{1, 0}, Coord{0, 1})
	g.Step()
	assertLive(t, g, Coord{0, 0}, Coord{1, 0}, Coord{0, 1}, Coord{1, 1})
}

func TestStepGliderTravels(t *testing.T) {
	glider, _ := seed.Pattern("glider", 12, 12)
	g := mustGrid(t, 12, 12, glider...)
	for i := 0; i < 4; i++ {
		g.Step()
	}
	shifted := make([]Coord, 0, len(glider))
	for _, c := range glider {
		shifted = append(shifted, Coord{c.X + 1, c.Y + 1})
	}
	assertLive(t, g, shifted...)
}

func TestStepParallelMatchesStep(t *testing.T) {
	initial := seed.Random(37, 23, 9)
	serial, err := NewGrid(37, 23, initial)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := NewGrid(37, 23, initial)
	if err != nil {
		t.Fatal(err)
	}

	for gen := 0; gen < 30; gen++ {
		serial.Step()
		parallel.StepParallel(gen%5 - 1) // covers workers <= 0 too
		if serial.Hash() != parallel.Hash() {
			t.Fatalf("generation %d: parallel diverged from serial", gen+1)
		}
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	g := mustGrid(t, 5, 5, Coord{1, 2}, Coord{2, 2}, Coord{3, 2})
	snap := g.Snapshot()
	g.Step()

	if !snap.Alive(1, 2) || snap.Alive(2, 1) {
		t.Fatal("snapshot changed after the grid stepped")
	}
	if snap.Width() != 5 || snap.Height() != 5 || snap.Population() != 3 {
		t.Fatalf("snapshot %dx%d pop %d, want 5x5 pop 3", snap.Width(), snap.Height(), snap.Population())
	}
	if snap.Alive(-1, 0) || snap.Alive(5, 0) {
		t.Fatal("snapshot reported out-of-range cells alive")
	}
}

func TestLiveCellsAndHash(t *testing.T) {
	live := []Coord{{0, 0}, {2, 0}, {1, 1}}
	a := mustGrid(t, 3, 2, live...)
	b := mustGrid(t, 3, 2, live...)
	if !slices.Equal(a.LiveCells(), live) {
		t.Fatalf("LiveCells = %v, want %v", a.LiveCells(), live)
	}
	if a.Hash() != b.Hash() {
		t.Fatal("equal grids hashed differently")
	}
	a.Step()
	if a.Hash() == b.Hash() {
		t.Fatal("different generations hashed the same")
	}
}

func TestHistoryRepeats(t *testing.T) {
	var h History
	if h.Repeats("a") {
		t.Fatal("empty history repeated")
	}
	h.Record("a")
	h.Record("b")
	if !h.Repeats("a") || !h.Repeats("b") {
		t.Fatal("period-2 cycle not detected")
	}
	h.Record("c")
	if !h.Repeats("a") {
		t.Fatal("period-3 cycle not detected")
	}
	if h.Repeats("z") {
		t.Fatal("unseen hash reported as a repeat")
	}
	for _, s := range []string{"d", "e", "f", "g"} {
		h.Record(s)
	}
	if len(h.hashes) != historySize {
		t.Fatalf("history kept %d hashes, want %d", len(h.hashes), historySize)
	}
	if !h.Repeats("c") {
		t.Fatal("oldest kept hash not checked")
	}
	if h.Repeats("b") {
		t.Fatal("hash evicted from the ring reported as a repeat")
	}
}
