//go:build !ebiten

package render

import (
	"context"
	"time"

	"github.com/sheikhrachel/libgol/model"
	"github.com/sheikhrachel/libgol/sim"
)

// Window is a placeholder that satisfies the API expected by the GUI build.
type Window struct{}

// NewWindow always fails without the ebiten build tag.
func NewWindow(int, int, int) (*Window, error) {
	return nil, ErrWindowUnavailable
}

// Render always reports that the GUI build tag is missing.
func (w *Window) Render(*model.Snapshot) error { return ErrWindowUnavailable }

// Run always reports that the GUI build tag is missing.
func (w *Window) Run(context.Context, *sim.Driver, time.Duration) (sim.Outcome, error) {
	return sim.OutcomeUnknown, ErrWindowUnavailable
}
