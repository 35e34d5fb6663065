package display

import "github.com/rs/zerolog/log"

// LogPanel is a headless Panel driver that dumps painted frames to the debug
// log. Used when no real panel hardware is attached.
type LogPanel struct{}

func (LogPanel) Paint(frame Frame) {
	for _, op := range frame.Ops {
		if op.Bitmap != nil {
			log.Debug().
				Int("x", op.X).Int("y", op.Y).
				Int("w", op.Bitmap.Width).Int("h", op.Bitmap.Height).
				Msg("paint bitmap")
			continue
		}
		log.Debug().
			Int("x", op.X).Int("y", op.Y).
			Stringer("font", op.Font).
			Str("text", op.Text).
			Msg("paint text")
	}
}
