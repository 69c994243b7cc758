package viewport

import (
	"fmt"

	"mixdown/internal/timeline"
)

// State is the pointer interaction state.
type State int

const (
	// Idle means no pointer interaction is active.
	Idle State = iota
	// PanningTimeline is active after pointer-down on empty canvas.
	PanningTimeline
	// DraggingSegment is active after pointer-down on a segment.
	DraggingSegment
)

// Engine resolves pointer events into scroll changes and segment moves.
type Engine struct {
	store  *timeline.Store
	Mapper Mapper
	Snap   SnapSettings

	state        State
	downX        float64
	originScroll float64

	dragTrackID   string
	dragSegmentID string
	originStart   float64
}

// NewEngine wires an interaction engine to a store.
func NewEngine(store *timeline.Store, mapper Mapper, snap SnapSettings) *Engine {
	return &Engine{store: store, Mapper: mapper, Snap: snap}
}

// State reports the current interaction state.
func (e *Engine) State() State {
	return e.state
}

// PointerDown begins an interaction. Empty ids mean the pointer landed on
// empty canvas and the timeline pans; otherwise the identified segment is
// picked up at its current start time.
func (e *Engine) PointerDown(x float64, trackID, segmentID string) error {
	if e.state != Idle {
		return fmt.Errorf("pointer down while interaction active")
	}
	e.downX = x
	if trackID == "" || segmentID == "" {
		e.state = PanningTimeline
		e.originScroll = e.Mapper.Scroll
		return nil
	}
	seg, err := e.store.Segment(trackID, segmentID)
	if err != nil {
		return err
	}
	e.state = DraggingSegment
	e.dragTrackID = trackID
	e.dragSegmentID = segmentID
	e.originStart = seg.Start
	return nil
}

// PointerMove applies the pixel delta since pointer-down. During a drag the
// segment's new start time is written to the store immediately; override
// suppresses grid snapping in favor of tenth-of-a-second steps.
func (e *Engine) PointerMove(x float64, override bool) error {
	switch e.state {
	case PanningTimeline:
		scroll := e.originScroll - (x - e.downX)
		if scroll < 0 {
			scroll = 0
		}
		e.Mapper.Scroll = scroll
		return nil
	case DraggingSegment:
		deltaTime := e.Mapper.PixelsToTime(x - e.downX)
		start := Snap(e.originStart+deltaTime, e.Snap, override)
		_, err := e.store.UpdateSegment(e.dragTrackID, e.dragSegmentID, func(s timeline.Segment) timeline.Segment {
			s.Start = start
			return s
		})
		return err
	default:
		return nil
	}
}

// PointerUp ends the interaction. The last move already committed the final
// position, so release only resets state.
func (e *Engine) PointerUp() {
	e.state = Idle
	e.dragTrackID = ""
	e.dragSegmentID = ""
}

// SegmentAt returns the topmost segment covering the given pixel position on
// a track, for hit-testing pointer-down and double-click.
func (e *Engine) SegmentAt(trackID string, x float64) (timeline.Segment, bool) {
	track, err := e.store.Track(trackID)
	if err != nil {
		return timeline.Segment{}, false
	}
	t := e.Mapper.PixelsToTime(x + e.Mapper.Scroll)
	for i := len(track.Segments) - 1; i >= 0; i-- {
		seg := track.Segments[i]
		if t >= seg.Start && t < seg.End() {
			return seg, true
		}
	}
	return timeline.Segment{}, false
}
