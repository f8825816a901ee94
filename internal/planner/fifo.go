package planner

import (
	"sync"

	"github.com/d2inventory/motioncore/internal/coord"
)

// SegmentKind distinguishes queued segment geometry.
type SegmentKind int

const (
	SegmentLine SegmentKind = iota
	SegmentCircle
)

// Segment is one queued motion.
type Segment struct {
	Kind   SegmentKind
	ID     int32
	Target coord.Pose
	Center coord.Vector
	Normal coord.Vector
	Turn   int32

	// Limits captured at append time.
	Vmax   float64
	Amax   float64
	Vscale float64
}

// FIFO is a bounded, preallocated trajectory queue. It records segments
// and queue-wide limits without interpolating them; the execution loop
// drains it. Append never allocates once constructed.
type FIFO struct {
	mu sync.Mutex

	segs  []Segment
	start int
	count int

	vmax     float64
	amax     float64
	vlimit   float64
	vscale   float64
	id       int32
	termCond TermCond
	paused   bool
}

// NewFIFO returns a queue holding at most capacity segments.
func NewFIFO(capacity int) *FIFO {
	if capacity < 1 {
		capacity = 1
	}
	return &FIFO{
		segs:   make([]Segment, capacity),
		vscale: 1.0,
	}
}

func (q *FIFO) SetVmax(v float64) {
	q.mu.Lock()
	q.vmax = v
	q.mu.Unlock()
}

func (q *FIFO) SetAmax(a float64) {
	q.mu.Lock()
	q.amax = a
	q.mu.Unlock()
}

func (q *FIFO) SetVlimit(v float64) {
	q.mu.Lock()
	q.vlimit = v
	q.mu.Unlock()
}

func (q *FIFO) SetVscale(s float64) {
	q.mu.Lock()
	q.vscale = s
	q.mu.Unlock()
}

func (q *FIFO) SetID(id int32) {
	q.mu.Lock()
	q.id = id
	q.mu.Unlock()
}

func (q *FIFO) SetTermCond(tc TermCond) {
	q.mu.Lock()
	q.termCond = tc
	q.mu.Unlock()
}

func (q *FIFO) AddLine(target coord.Pose) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.push(Segment{Kind: SegmentLine, Target: target})
}

func (q *FIFO) AddCircle(target coord.Pose, center, normal coord.Vector, turn int32) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.push(Segment{
		Kind:   SegmentCircle,
		Target: target,
		Center: center,
		Normal: normal,
		Turn:   turn,
	})
}

// push assumes q.mu is held.
func (q *FIFO) push(seg Segment) error {
	if q.count == len(q.segs) {
		return ErrQueueFull
	}
	// Effective velocity is capped by the queue limit.
	vmax := q.vmax
	if q.vlimit > 0 && vmax > q.vlimit {
		vmax = q.vlimit
	}
	seg.ID = q.id
	seg.Vmax = vmax
	seg.Amax = q.amax
	seg.Vscale = q.vscale
	q.segs[(q.start+q.count)%len(q.segs)] = seg
	q.count++
	return nil
}

func (q *FIFO) Abort() {
	q.mu.Lock()
	q.start = 0
	q.count = 0
	q.paused = false
	q.mu.Unlock()
}

func (q *FIFO) Pause() {
	q.mu.Lock()
	q.paused = true
	q.mu.Unlock()
}

func (q *FIFO) Resume() {
	q.mu.Lock()
	q.paused = false
	q.mu.Unlock()
}

func (q *FIFO) ActiveID() int32 {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count > 0 {
		return q.segs[q.start].ID
	}
	return q.id
}

func (q *FIFO) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

func (q *FIFO) Paused() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.paused
}

// TermCondition reports the current termination condition.
func (q *FIFO) TermCondition() TermCond {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.termCond
}

// Next pops the segment at the head of the queue. The execution loop is
// the only caller.
func (q *FIFO) Next() (Segment, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count == 0 || q.paused {
		return Segment{}, false
	}
	seg := q.segs[q.start]
	q.start = (q.start + 1) % len(q.segs)
	q.count--
	return seg, true
}
