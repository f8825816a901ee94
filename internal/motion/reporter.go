package motion

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// reporterCap bounds the diagnostic ring; the out-of-band consumer is
// expected to drain faster than operators can fail.
const reporterCap = 128

// Diagnostic is one human-readable failure message, separate from the
// numeric command status.
type Diagnostic struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// Reporter is the append-only diagnostic channel. Reports never fail
// and never block; when the ring wraps, the oldest entries are dropped.
type Reporter struct {
	mu     sync.Mutex
	ring   [reporterCap]Diagnostic
	start  int
	count  int
	total  uint64
	logger *zap.Logger
}

// NewReporter returns a reporter mirroring every diagnostic to logger.
func NewReporter(logger *zap.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Errorf appends a formatted diagnostic.
func (r *Reporter) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	r.mu.Lock()
	idx := (r.start + r.count) % reporterCap
	r.ring[idx] = Diagnostic{Time: time.Now(), Message: msg}
	if r.count == reporterCap {
		r.start = (r.start + 1) % reporterCap
	} else {
		r.count++
	}
	r.total++
	r.mu.Unlock()

	if r.logger != nil {
		r.logger.Warn("motion diagnostic", zap.String("message", msg))
	}
}

// Drain returns and clears all pending diagnostics, oldest first.
func (r *Reporter) Drain() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Diagnostic, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.ring[(r.start+i)%reporterCap]
	}
	r.start = 0
	r.count = 0
	return out
}

// Pending returns the number of undrained diagnostics.
func (r *Reporter) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Total returns the number of diagnostics ever reported.
func (r *Reporter) Total() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// Last returns the most recent diagnostic without clearing it.
func (r *Reporter) Last() (Diagnostic, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.count == 0 {
		return Diagnostic{}, false
	}
	return r.ring[(r.start+r.count-1)%reporterCap], true
}
