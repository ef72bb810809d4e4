package render

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/libgol/model"
)

const (
	asciiAlive = '*'
	asciiDead  = 'o'
)

// ASCII writes each generation as text: '*' for a live cell, 'o' for a
// dead one. Each line holds one x index with y running along it, and a
// blank line follows the grid.
type ASCII struct {
	w io.Writer
}

// NewASCII creates an ASCII renderer writing to w
func NewASCII(w io.Writer) *ASCII {
	return &ASCII{w: w}
}

// Render writes one frame
func (a *ASCII) Render(s *model.Snapshot) error {
	bw := bufio.NewWriter(a.w)
	for x := range s.Width() {
		for y := range s.Height() {
			if s.Alive(x, y) {
				bw.WriteByte(asciiAlive)
			} else {
				bw.WriteByte(asciiDead)
			}
		}
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "[ASCII.Render] failed to write frame")
	}
	return nil
}
