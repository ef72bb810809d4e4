package render

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/libgol/model"
)

// ErrQuit is returned by Terminal.Listen when the user asks to leave
var ErrQuit = errors.New("quit requested")

const gridPosBlock = '█'

// Terminal draws generations full-screen with tcell, one screen row per x
// index and two columns per y index so cells come out roughly square.
type Terminal struct {
	screen     tcell.Screen
	alive      tcell.Style
	dead       tcell.Style
	status     tcell.Style
	generation int
}

// NewTerminal takes over the controlling terminal. Call Close to restore it.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "[NewTerminal] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return nil, errors.Wrap(err, "[NewTerminal] failed to initialise screen")
	}
	return NewTerminalScreen(screen), nil
}

// NewTerminalScreen wraps an already initialised screen
func NewTerminalScreen(screen tcell.Screen) *Terminal {
	screen.HideCursor()
	return &Terminal{
		screen: screen,
		alive:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
		dead:   tcell.StyleDefault.Background(tcell.ColorBlack),
		status: tcell.StyleDefault.Foreground(tcell.ColorGreen),
	}
}

// Render draws one generation followed by a status line
func (t *Terminal) Render(s *model.Snapshot) error {
	t.screen.Clear()
	for x := range s.Width() {
		for y := range s.Height() {
			r, style := ' ', t.dead
			if s.Alive(x, y) {
				r, style = gridPosBlock, t.alive
			}
			t.screen.SetContent(y*2, x, r, nil, style)
			t.screen.SetContent(y*2+1, x, r, nil, style)
		}
	}

	status := fmt.Sprintf("gen: %d | living: %d | q to quit", t.generation, s.Population())
	for i, r := range []rune(status) {
		t.screen.SetContent(i, s.Width(), r, nil, t.status)
	}

	t.generation++
	t.screen.Show()
	return nil
}

// Listen handles keyboard and resize events until ctx is done or the user
// presses q, Esc or Ctrl+C, in which case it returns ErrQuit.
func (t *Terminal) Listen(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			if isQuitKey(ev) {
				return ErrQuit
			}
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// Close restores the terminal
func (t *Terminal) Close() {
	t.screen.Fini()
}
