package render

import (
	"image/color"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/libgol/model"
)

// ErrWindowUnavailable is returned by NewWindow in builds without the ebiten tag
var ErrWindowUnavailable = errors.New("window renderer requires building with -tags ebiten")

// fillBinaryRGBA converts a snapshot into RGBA pixels in buf, one pixel per
// cell. The image is Height() pixels wide and Width() pixels tall: x picks
// the pixel row and y the column, the same layout as the ASCII output.
func fillBinaryRGBA(buf []byte, s *model.Snapshot, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	h := s.Height()
	for x := range s.Width() {
		for y := range h {
			base := (x*h + y) * 4
			if s.Alive(x, y) {
				buf[base+0] = uint8(rOn >> 8)
				buf[base+1] = uint8(gOn >> 8)
				buf[base+2] = uint8(bOn >> 8)
				buf[base+3] = uint8(aOn >> 8)
				continue
			}
			buf[base+0] = uint8(rOff >> 8)
			buf[base+1] = uint8(gOff >> 8)
			buf[base+2] = uint8(bOff >> 8)
			buf[base+3] = uint8(aOff >> 8)
		}
	}
}
