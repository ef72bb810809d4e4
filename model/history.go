package model

// historySize is how many recent generation hashes are kept
const historySize = 5

// History remembers the hashes of recent generations to spot still-lifes
// and short cycles.
type History struct {
	hashes []string
}

// Record adds a generation hash and drops the oldest beyond historySize
func (h *History) Record(hash string) {
	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// Repeats reports whether hash matches any recorded generation, i.e. the
// grid is a still-life or cycles with a period of at most historySize.
func (h *History) Repeats(hash string) bool {
	for i := len(h.hashes) - 1; i >= 0; i-- {
		if h.hashes[i] == hash {
			return true
		}
	}
	return false
}
