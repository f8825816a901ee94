// Trajectory planner contract consumed by the motion dispatcher.
//
// The dispatcher only appends segments, adjusts queue-wide limits and
// pauses/aborts; segment blending and interpolation are owned by the
// execution side and are out of scope here.

package planner

import (
	"errors"

	"github.com/d2inventory/motioncore/internal/coord"
)

// ErrQueueFull is returned by Add* when the queue has no free slot.
// The dispatcher maps it to a bad-exec command status.
var ErrQueueFull = errors.New("planner: queue full")

// TermCond selects how consecutive segments are joined.
type TermCond int32

const (
	// TermCondStop decelerates to a stop at each segment boundary.
	TermCondStop TermCond = iota
	// TermCondBlend blends into the following segment.
	TermCondBlend
)

// Queue is the per-axis or coordinated trajectory queue the dispatcher
// drives. All methods are non-blocking and O(1) except Abort, which is
// O(queue length).
type Queue interface {
	// SetVmax sets the working velocity for subsequently added segments.
	SetVmax(v float64)
	// SetAmax sets the working acceleration.
	SetAmax(a float64)
	// SetVlimit sets the absolute velocity ceiling for the queue.
	SetVlimit(v float64)
	// SetVscale sets the velocity override scale, already clamped by the
	// caller to be non-negative.
	SetVscale(s float64)
	// SetID tags segments added after this call.
	SetID(id int32)
	// SetTermCond sets the segment termination condition.
	SetTermCond(tc TermCond)

	// AddLine appends a linear segment to the given target.
	AddLine(target coord.Pose) error
	// AddCircle appends a circular segment around center/normal with the
	// given number of full turns.
	AddCircle(target coord.Pose, center, normal coord.Vector, turn int32) error

	// Abort discards all queued segments and stops motion.
	Abort()
	// Pause holds execution at the current point.
	Pause()
	// Resume continues after a Pause.
	Resume()

	// ActiveID returns the id of the segment currently executing, or the
	// most recently tagged id when the queue is empty.
	ActiveID() int32
	// Len returns the number of queued segments.
	Len() int
	// Paused reports whether the queue is held.
	Paused() bool
}
