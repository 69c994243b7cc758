package viewport

import (
	"fmt"
	"math"
)

const (
	// MinGridSize and MaxGridSize bound the selectable snap grid in seconds.
	MinGridSize = 0.1
	MaxGridSize = 10.0

	// fineStep is the quantum used when grid snapping is off or overridden.
	// Fine positioning is never fully unquantized.
	fineStep = 0.1
)

// Mapper converts between timeline seconds and view-space pixels.
type Mapper struct {
	PixelsPerSecond float64
	Zoom            float64
	Scroll          float64
}

// TimeToPixels maps a timeline position to a pixel offset.
func (m Mapper) TimeToPixels(t float64) float64 {
	return t * m.PixelsPerSecond * m.Zoom
}

// PixelsToTime is the inverse mapping used for drag resolution.
func (m Mapper) PixelsToTime(px float64) float64 {
	rate := m.PixelsPerSecond * m.Zoom
	if rate == 0 {
		return 0
	}
	return px / rate
}

// SnapSettings describes the grid snapping policy.
type SnapSettings struct {
	Enabled bool
	Grid    float64
}

// Validate checks the grid size is within the selectable range.
func (s SnapSettings) Validate() error {
	if s.Grid < MinGridSize || s.Grid > MaxGridSize {
		return fmt.Errorf("grid size %v out of range [%v, %v]", s.Grid, MinGridSize, MaxGridSize)
	}
	return nil
}

// Snap quantizes a candidate time. With snapping enabled and no override
// modifier held, the result is the nearest grid multiple; otherwise it is
// rounded to the nearest tenth of a second. The result is clamped to zero.
func Snap(t float64, settings SnapSettings, override bool) float64 {
	step := fineStep
	if settings.Enabled && !override && settings.Grid > 0 {
		step = settings.Grid
	}
	snapped := math.Round(t/step) * step
	if snapped < 0 {
		return 0
	}
	return snapped
}
