package motion

import (
	"sync/atomic"

	"github.com/d2inventory/motioncore/internal/coord"
	"github.com/d2inventory/motioncore/internal/kinematics"
	"github.com/d2inventory/motioncore/internal/planner"
	"go.uber.org/zap"
)

// Controller owns all process-wide motion state: Status, Config, per-axis
// state and the mode machine. It is passed one command per cycle by the
// board and mutated only from the real-time loop goroutine; external
// observers read through Snapshot and the atomic echo fields.
type Controller struct {
	logger *zap.Logger
	rep    *Reporter

	cfg    *Config
	status Status

	kin   kinematics.Kinematics
	coord planner.Queue
	free  [MaxAxis]planner.Queue

	board Board

	axes      [MaxAxis]Axis
	freePose  coord.Pose
	worldHome coord.Pose
	jointHome [MaxAxis]float64
	teleopVel coord.Pose

	// Current mode flags, applied by the execution cycle.
	enabled    bool
	coordMode  bool
	teleopMode bool

	// Deferred transition requests set by the dispatcher and consumed by
	// the execution cycle. The dispatcher never switches mode itself.
	pendingCoord  bool
	pendingTeleop bool
	pendingEnable bool

	allHomed   bool
	rehomeAll  bool
	stepping   bool
	idForStep  int32
	overriding bool

	wdEnabling bool
	wdWait     float64

	// Channel liveness counters for debug observers.
	split     uint64
	headCount uint64
	tailCount uint64

	// Logging trigger state.
	loggingAxis  int32
	logStartTime float64
	cmdLog       [commandLogCap]CommandLogRecord
	cmdLogLen    int

	// bigVel is the runaway threshold derived from the axis velocity
	// limit, consumed by the following-error check outside this core.
	bigVel [MaxAxis]float64

	// Producer-visible commit state. seqEcho/result double the Status
	// fields so the non-RT side can poll without tearing.
	seqEcho    atomic.Uint32
	lastResult atomic.Int32
	commitHead atomic.Uint32
	commitTail atomic.Uint32

	// cycleSeq is odd while a cycle is mutating state; Snapshot retries
	// until it observes a stable even value.
	cycleSeq atomic.Uint64
}

// NewController wires the dispatcher core to its collaborators. The
// free-axis queues and the coordinated queue are owned by the caller;
// nil queues panic on first use by design.
func NewController(logger *zap.Logger, cfg *Config, kin kinematics.Kinematics, coordQueue planner.Queue, freeQueues [MaxAxis]planner.Queue) *Controller {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := &Controller{
		logger: logger,
		rep:    NewReporter(logger),
		cfg:    cfg,
		kin:    kin,
		coord:  coordQueue,
		free:   freeQueues,
	}
	c.status.QVscale = 1.0
	for i := 0; i < MaxAxis; i++ {
		c.status.AxVscale[i] = 1.0
	}
	for i := 0; i < cfg.NumAxes && i < MaxAxis; i++ {
		c.axes[i].Flags.Active = true
	}
	return c
}

// Board returns the command channel the producer writes into.
func (c *Controller) Board() *Board {
	return &c.board
}

// Reporter returns the diagnostic channel.
func (c *Controller) Reporter() *Reporter {
	return c.rep
}

// Config returns the live motion configuration. Mutations outside
// configuration commands must happen before the loop starts.
func (c *Controller) Config() *Config {
	return c.cfg
}

// Mode derives the machine-wide motion mode from the current flags.
func (c *Controller) Mode() Mode {
	switch {
	case !c.enabled:
		return ModeDisabled
	case c.teleopMode:
		return ModeTeleop
	case c.coordMode:
		return ModeCoordinated
	default:
		return ModeFree
	}
}

// inPosition reports whether no queued motion remains.
func (c *Controller) inPosition() bool {
	if c.coord.Len() > 0 {
		return false
	}
	for i := 0; i < MaxAxis; i++ {
		if c.free[i].Len() > 0 {
			return false
		}
	}
	return true
}

// Cycle runs one control tick: one dispatch step followed by the
// deferred-transition application the execution loop owns. now is the
// absolute time in seconds.
func (c *Controller) Cycle(now float64) {
	c.cycleSeq.Add(1)
	c.Tick(now)
	c.applyPending()
	c.checkStep()
	c.checkOverride()
	c.refreshStatus()
	c.cycleSeq.Add(1)
}

// checkOverride retires a limit override once a move started under it
// has carried the machine off the limit. The override is a one-shot
// escape hatch, not a standing state.
func (c *Controller) checkOverride() {
	if !c.overriding {
		return
	}
	if c.checkLimits() {
		c.status.OverrideLimits = false
		c.overriding = false
	}
}

// checkStep re-pauses a single-stepped queue once the coordinated
// motion id has advanced past the one captured by the Step command.
func (c *Controller) checkStep() {
	if !c.stepping {
		return
	}
	if c.coord.ActiveID() != c.idForStep {
		for i := 0; i < MaxAxis; i++ {
			c.free[i].Pause()
		}
		c.coord.Pause()
		c.status.Paused = true
		c.stepping = false
	}
}

// applyPending consumes the deferred enable/coordinate/teleop requests.
// Mode changes requested by the dispatcher take effect here, one cycle
// later, never synchronously.
func (c *Controller) applyPending() {
	if c.pendingEnable != c.enabled {
		c.enabled = c.pendingEnable
		if c.enabled {
			// Re-enable clears latched per-axis error and limit flags;
			// feedback will re-assert real limits next cycle.
			for i := 0; i < MaxAxis; i++ {
				c.axes[i].Flags.Error = false
				c.axes[i].Flags.MaxSoftLimit = false
				c.axes[i].Flags.MinSoftLimit = false
				c.axes[i].Flags.MaxHardLimit = false
				c.axes[i].Flags.MinHardLimit = false
			}
		} else {
			c.coord.Abort()
			for i := 0; i < MaxAxis; i++ {
				c.free[i].Abort()
			}
			c.teleopVel = coord.Pose{}
		}
	}

	// Teleop takes precedence over coordinated when both are requested.
	c.teleopMode = c.pendingTeleop && c.enabled
	c.coordMode = c.pendingCoord && c.enabled && !c.pendingTeleop

	c.recomputeAllHomed()
}

// recomputeAllHomed refreshes the global homed invariant: true iff every
// active axis is homed.
func (c *Controller) recomputeAllHomed() {
	for i := 0; i < MaxAxis; i++ {
		if c.axes[i].Flags.Active && !c.axes[i].Flags.Homed {
			c.allHomed = false
			return
		}
	}
	c.allHomed = true
}

// refreshStatus mirrors derived state into the Status block.
func (c *Controller) refreshStatus() {
	c.status.Mode = c.Mode()
	c.status.Enabled = c.enabled
	c.status.InPosition = c.inPosition()
	c.status.ID = c.coord.ActiveID()
}

// applied reports whether the command with the given sequence number has
// been fully dispatched and committed. Producer side.
func (c *Controller) applied(seq uint32) bool {
	return c.seqEcho.Load() == seq && c.commitHead.Load() == c.commitTail.Load()
}

// ResultFor returns the echoed result code for seq. Producer side.
func (c *Controller) ResultFor(seq uint32) (ResultCode, error) {
	if c.seqEcho.Load() != seq {
		return ResultOk, errStaleEcho
	}
	return ResultCode(c.lastResult.Load()), nil
}

// Snapshot copies the externally observable state. It spins while a
// cycle is in progress, which is bounded by the cycle's O(MaxAxis) work.
func (c *Controller) Snapshot() StatusSnapshot {
	for {
		seq := c.cycleSeq.Load()
		if seq%2 != 0 {
			continue
		}
		snap := StatusSnapshot{
			Status:     c.status,
			Mode:       c.status.Mode.String(),
			AllHomed:   c.allHomed,
			FreePose:   c.freePose,
			SplitReads: c.split,
			HeadCount:  c.headCount,
			TailCount:  c.tailCount,
		}
		snap.Status.Head = c.commitHead.Load()
		snap.Status.Tail = c.commitTail.Load()
		snap.Axes = make([]Axis, c.cfg.NumAxes)
		copy(snap.Axes, c.axes[:c.cfg.NumAxes])
		if c.cycleSeq.Load() == seq {
			return snap
		}
	}
}

// CommandLog returns the recorded command-type log entries.
func (c *Controller) CommandLog() []CommandLogRecord {
	n := c.cmdLogLen
	if n > commandLogCap {
		n = commandLogCap
	}
	out := make([]CommandLogRecord, n)
	copy(out, c.cmdLog[:n])
	return out
}

// The entry points below are for the execution-side collaborators that
// feed axis state back into the core between dispatch cycles.

// SetJointPosition feeds the servo-cycle joint position for an axis.
func (c *Controller) SetJointPosition(axis int, pos float64) {
	if axis < 0 || axis >= MaxAxis {
		return
	}
	c.axes[axis].OldJointPos = c.axes[axis].JointPos
	c.axes[axis].JointPos = pos
}

// SetLimitFlags latches hardware/kinematics limit feedback for an axis.
func (c *Controller) SetLimitFlags(axis int, maxSoft, minSoft, maxHard, minHard bool) {
	if axis < 0 || axis >= MaxAxis {
		return
	}
	f := &c.axes[axis].Flags
	f.MaxSoftLimit = maxSoft
	f.MinSoftLimit = minSoft
	f.MaxHardLimit = maxHard
	f.MinHardLimit = minHard
}

// CompleteHoming is called by the homing sequence when an axis reaches
// its reference. The homed position becomes the configured home offset.
func (c *Controller) CompleteHoming(axis int) {
	if axis < 0 || axis >= MaxAxis {
		return
	}
	a := &c.axes[axis]
	a.Flags.Homing = false
	a.Flags.Homed = true
	a.HomingPhase = 0
	c.recomputeAllHomed()
}

// TeleopVelocity returns the clamped desired teleop velocity vector for
// the execution loop.
func (c *Controller) TeleopVelocity() coord.Pose {
	return c.teleopVel
}

// WatchdogConfig returns the stored watchdog enable flag and period.
// Expiry policy lives outside this core.
func (c *Controller) WatchdogConfig() (enabled bool, wait float64) {
	return c.wdEnabling, c.wdWait
}
