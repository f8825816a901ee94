package motion

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Loop drives the controller at a fixed control-cycle period. It is the
// real-time harness: one Cycle per tick, run to completion, no other
// goroutine ever mutates controller state.
type Loop struct {
	ctl    *Controller
	period time.Duration
	logger *zap.Logger

	epoch time.Time
}

// NewLoop returns a loop ticking the controller every period.
func NewLoop(ctl *Controller, period time.Duration, logger *zap.Logger) *Loop {
	if period <= 0 {
		period = time.Millisecond
	}
	return &Loop{
		ctl:    ctl,
		period: period,
		logger: logger,
		epoch:  time.Now(),
	}
}

// Run blocks until ctx is cancelled, executing one controller cycle per
// tick. Overruns are not compensated: a late tick simply runs late, the
// ticker drops missed cycles.
func (l *Loop) Run(ctx context.Context) {
	l.logger.Info("control loop started",
		zap.Duration("period", l.period))

	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("control loop stopped")
			return
		case t := <-ticker.C:
			l.ctl.Cycle(t.Sub(l.epoch).Seconds())
		}
	}
}
