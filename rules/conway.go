package rules

const (
	// BirthCount is the exact number of live neighbors that brings a dead cell to life.
	BirthCount = 3
	// SurviveMin and SurviveMax bound the live-neighbor counts a live cell survives with.
	SurviveMin = 2
	SurviveMax = 3
)

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

	alive, 2 or 3 neighbors  -> alive (survives)
	alive, any other count   -> dead
	dead, exactly 3          -> alive (birth)
	dead, any other count    -> dead
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return neighbors >= SurviveMin && neighbors <= SurviveMax
	}
	return neighbors == BirthCount
}
