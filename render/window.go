//go:build ebiten

package render

import (
	"context"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/libgol/model"
	"github.com/sheikhrachel/libgol/sim"
)

// gridPainter uploads snapshots into a single image, one pixel per cell.
// w and h are grid dimensions; the image is h pixels wide and w tall.
type gridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

func newGridPainter(w, h int) *gridPainter {
	return &gridPainter{w: w, h: h, img: ebiten.NewImage(h, w), buf: make([]byte, 4*w*h)}
}

func (gp *gridPainter) blit(dst *ebiten.Image, s *model.Snapshot, on, off color.Color, scale int) {
	if s.Width() != gp.w || s.Height() != gp.h {
		return
	}
	fillBinaryRGBA(gp.buf, s, on, off)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Window shows generations as a two-colour image and schedules the
// driver's ticks from ebiten's update callback.
type Window struct {
	width, height int
	scale         int
	painter       *gridPainter
	snap          *model.Snapshot

	onColor  color.Color
	offColor color.Color
}

// NewWindow creates a window renderer for a width x height grid
func NewWindow(width, height, scale int) (*Window, error) {
	if scale <= 0 {
		scale = 1
	}
	return &Window{
		width:    width,
		height:   height,
		scale:    scale,
		onColor:  color.White,
		offColor: color.Black,
	}, nil
}

// Render keeps the snapshot for the next Draw
func (w *Window) Render(s *model.Snapshot) error {
	w.snap = s
	return nil
}

// Run opens the window and ticks drv every interval until the window is
// closed, q or Esc is pressed, ctx is cancelled or drv finishes.
func (w *Window) Run(ctx context.Context, drv *sim.Driver, interval time.Duration) (sim.Outcome, error) {
	if err := drv.Render(); err != nil {
		return sim.OutcomeUnknown, err
	}
	if outcome, done := drv.Finished(); done {
		return outcome, nil
	}

	game := &windowGame{
		ctx:     ctx,
		window:  w,
		driver:  drv,
		cadence: sim.NewCadence(interval),
		outcome: sim.OutcomeInterrupted,
	}

	ebiten.SetWindowTitle("libgol")
	ebiten.SetWindowSize(w.height*w.scale, w.width*w.scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return sim.OutcomeUnknown, errors.Wrap(err, "[Window.Run]")
	}
	return game.outcome, nil
}

// windowGame adapts the driver to the ebiten.Game interface.
type windowGame struct {
	ctx     context.Context
	window  *Window
	driver  *sim.Driver
	cadence *sim.Cadence
	outcome sim.Outcome
	paused  bool
}

func (g *windowGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}

	stepOnce := inpututil.IsKeyJustPressed(ebiten.KeyN)
	if (g.paused || !g.cadence.ShouldStep()) && !stepOnce {
		return nil
	}
	if err := g.driver.Tick(); err != nil {
		return err
	}
	if outcome, done := g.driver.Finished(); done {
		g.outcome = outcome
		return ebiten.Termination
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	w := g.window
	if w.snap == nil {
		return
	}
	if w.painter == nil {
		w.painter = newGridPainter(w.width, w.height)
	}
	w.painter.blit(screen, w.snap, w.onColor, w.offColor, w.scale)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.window.height * g.window.scale, g.window.width * g.window.scale
}
