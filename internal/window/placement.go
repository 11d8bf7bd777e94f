package window

import (
	"errors"
	"log/slog"
	"math"
)

// Logical size of the chat window.
const (
	DefaultWidth  = 400
	DefaultHeight = 500
)

// ErrNoMonitor is returned when the toolkit reports no monitor for the window.
var ErrNoMonitor = errors.New("no monitor reported")

// Monitor is the display containing the window origin. Position and size are
// in physical pixels; ScaleFactor <= 0 means the toolkit did not report one.
type Monitor struct {
	X, Y          int
	Width, Height int
	ScaleFactor   float64
}

// Geometry is a window rectangle in physical pixels.
type Geometry struct {
	X, Y          int
	Width, Height int
}

// Placer is what placement needs from the toolkit.
type Placer interface {
	CurrentMonitor() (Monitor, error)
	SetPosition(x, y int) error
}

// BottomRight computes the rectangle whose bottom-right corner coincides with
// the monitor's bottom-right corner.
func BottomRight(m Monitor, logicalW, logicalH int) Geometry {
	scale := m.ScaleFactor
	if scale <= 0 {
		scale = 1.0
	}
	w := int(math.Round(float64(logicalW) * scale))
	h := int(math.Round(float64(logicalH) * scale))
	return Geometry{
		X:      m.X + m.Width - w,
		Y:      m.Y + m.Height - h,
		Width:  w,
		Height: h,
	}
}

// PlaceBottomRight moves the window to the bottom-right of its current monitor.
// It reports false when the monitor could not be queried and the window keeps
// the toolkit's default position. Positioning failures are logged only.
func PlaceBottomRight(p Placer, logicalW, logicalH int, logger *slog.Logger) (Geometry, bool) {
	if logger == nil {
		logger = slog.Default()
	}
	m, err := p.CurrentMonitor()
	if err != nil {
		logger.Warn("monitor query failed, skipping placement", "error", err)
		return Geometry{}, false
	}
	g := BottomRight(m, logicalW, logicalH)
	if err := p.SetPosition(g.X, g.Y); err != nil {
		logger.Error("set window position failed", "x", g.X, "y", g.Y, "error", err)
	}
	logger.Info("window placed", "x", g.X, "y", g.Y, "width", g.Width, "height", g.Height, "scale", m.ScaleFactor)
	return g, true
}
