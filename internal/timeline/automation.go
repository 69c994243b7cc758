package timeline

import "sort"

// Point is a single automation keyframe. The external renderer interprets
// consecutive points as linear interpolation.
type Point struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

// Window is one duck region on an automation curve: the level drops to Duck
// at Start and returns to Restore at End.
type Window struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Duck    float64 `json:"duck"`
	Restore float64 `json:"restore"`
}

// Curve is a track's volume automation, modeled as a sorted list of duck
// windows. Overlapping windows merge at insertion time, so regenerating
// automation over the same range is idempotent and the rendered keyframes
// stay monotonic without renderer-side tolerance.
type Curve struct {
	Windows []Window `json:"windows,omitempty"`
}

// InsertWindow adds a duck window, merging it with any existing windows it
// overlaps or touches. The merged window keeps the lowest duck level and the
// restore level of the window ending last.
func (c *Curve) InsertWindow(w Window) {
	if w.End <= w.Start {
		return
	}

	merged := w
	remaining := c.Windows[:0]
	for _, existing := range c.Windows {
		if existing.Start <= merged.End && existing.End >= merged.Start {
			if existing.Start < merged.Start {
				merged.Start = existing.Start
			}
			if existing.Duck < merged.Duck {
				merged.Duck = existing.Duck
			}
			if existing.End > merged.End {
				merged.End = existing.End
				merged.Restore = existing.Restore
			}
			continue
		}
		remaining = append(remaining, existing)
	}

	c.Windows = append(remaining, merged)
	sort.Slice(c.Windows, func(i, j int) bool {
		return c.Windows[i].Start < c.Windows[j].Start
	})
}

// Points renders the curve as the keyframe list handed to the external
// renderer: one duck keyframe and one restore keyframe per window, in time
// order.
func (c Curve) Points() []Point {
	if len(c.Windows) == 0 {
		return nil
	}
	points := make([]Point, 0, len(c.Windows)*2)
	for _, w := range c.Windows {
		points = append(points, Point{Time: w.Start, Value: w.Duck})
		points = append(points, Point{Time: w.End, Value: w.Restore})
	}
	return points
}

// clone returns a deep copy of the curve.
func (c Curve) clone() Curve {
	if len(c.Windows) == 0 {
		return Curve{}
	}
	windows := make([]Window, len(c.Windows))
	copy(windows, c.Windows)
	return Curve{Windows: windows}
}
