// Package sketch turns pointer input into recorded coordinates and ink on
// the raster.
package sketch

import (
	"fmt"

	"github.com/inkrank/doodle/canvas"
	"github.com/inkrank/doodle/geom"
	"github.com/inkrank/doodle/log"
)

type State int

const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Saver snapshots the raster before a stroke starts.
type Saver interface {
	SaveState() error
}

// Recorder is the two state stroke machine. It is not safe for concurrent
// use.
type Recorder struct {
	raster      canvas.Raster
	history     Saver
	onStrokeEnd func()

	state  State
	coords []geom.Point
}

// NewRecorder wires a recorder to its raster and history. onStrokeEnd runs
// every time a stroke finishes and may be nil.
func NewRecorder(raster canvas.Raster, history Saver, onStrokeEnd func()) *Recorder {
	return &Recorder{
		raster:      raster,
		history:     history,
		onStrokeEnd: onStrokeEnd,
	}
}

func (r *Recorder) State() State {
	return r.state
}

// Coordinates returns a copy of every point recorded since the last Reset.
func (r *Recorder) Coordinates() []geom.Point {
	out := make([]geom.Point, len(r.coords))
	copy(out, r.coords)
	return out
}

// Press starts a stroke. The raster is snapshotted before the first point is
// recorded. A press while already drawing continues the current stroke.
func (r *Recorder) Press(p geom.Point) error {
	if r.state == Drawing {
		r.Move(p)
		return nil
	}
	if err := r.history.SaveState(); err != nil {
		return fmt.Errorf("press: %w", err)
	}
	r.state = Drawing
	r.record(p)
	return nil
}

// Move extends the stroke to p. Moves while idle are ignored.
func (r *Recorder) Move(p geom.Point) {
	if r.state != Drawing {
		return
	}
	prev := r.coords[len(r.coords)-1]
	cur := r.record(p)
	r.raster.DrawSegment(prev, cur)
}

// Release ends the stroke.
func (r *Recorder) Release() {
	r.end("release")
}

// Leave ends the stroke when the pointer leaves the surface.
func (r *Recorder) Leave() {
	r.end("leave")
}

func (r *Recorder) end(reason string) {
	if r.state != Drawing {
		return
	}
	r.state = Idle
	log.Trace.Printf("stroke ended (%s), %d points recorded", reason, len(r.coords))
	if r.onStrokeEnd != nil {
		r.onStrokeEnd()
	}
}

// Reset forgets every point and returns to idle without ending a stroke.
func (r *Recorder) Reset() {
	r.coords = nil
	r.state = Idle
}

func (r *Recorder) record(p geom.Point) geom.Point {
	size := r.raster.Bounds().Size()
	p = p.Clamp(size.X, size.Y)
	r.coords = append(r.coords, p)
	return p
}
