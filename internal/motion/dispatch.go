package motion

import (
	"github.com/d2inventory/motioncore/internal/coord"
	"github.com/d2inventory/motioncore/internal/kinematics"
	"go.uber.org/zap"
)

// Tick is the per-cycle dispatch step: read at most one command from the
// board, validate and execute it, commit the status echo. Runs to
// completion, never blocks, never allocates.
func (c *Controller) Tick(now float64) {
	cmd, ok := c.board.snapshot()
	if !ok {
		// Split read: the producer was mid-write. Retry the same slot
		// next cycle; this is not an error.
		c.split++
		return
	}

	if cmd.Seq == c.seqEcho.Load() {
		// Stale or duplicate command; never re-execute.
		return
	}

	// New command: bump the head counter, echo kind and sequence, and
	// default the status to ok before the handler runs.
	c.commitHead.Add(1)
	c.headCount++

	c.status.KindEcho = cmd.Kind
	c.status.SeqEcho = cmd.Seq
	c.status.Result = ResultOk
	c.seqEcho.Store(cmd.Seq)

	if c.status.Log.Started && c.status.Log.Type == LogTypeCmd {
		c.appendCommandLog(CommandLogRecord{Time: now, Kind: cmd.Kind, Seq: cmd.Seq})
	}

	if c.logger != nil {
		c.logger.Debug("dispatch",
			zap.Stringer("kind", cmd.Kind),
			zap.Uint32("seq", cmd.Seq),
			zap.Int32("axis", cmd.Axis))
	}

	c.dispatch(&cmd, now)

	if c.status.Result != ResultOk && c.logger != nil {
		c.logger.Debug("command rejected",
			zap.Stringer("kind", cmd.Kind),
			zap.Uint32("seq", cmd.Seq),
			zap.Stringer("result", c.status.Result))
	}

	c.lastResult.Store(int32(c.status.Result))

	// Commit: tail catches up with head, signalling "fully applied" to
	// the producer. The slot may be reused only after this.
	c.commitTail.Store(c.commitHead.Load())
	c.tailCount = c.headCount
}

func (c *Controller) dispatch(cmd *Command, now float64) {
	switch cmd.Kind {
	case KindAbort:
		c.handleAbort(cmd)
	case KindFree:
		c.handleFree()
	case KindCoord:
		c.handleCoord()
	case KindTeleop:
		c.handleTeleop()
	case KindEnable:
		c.handleEnable()
	case KindDisable:
		c.handleDisable()
	case KindActivateAxis:
		c.handleActivateAxis(cmd, true)
	case KindDeactivateAxis:
		c.handleActivateAxis(cmd, false)
	case KindEnableAmp:
		c.handleAmp(cmd, true)
	case KindDisableAmp:
		c.handleAmp(cmd, false)
	case KindJogCont:
		c.handleJogCont(cmd)
	case KindJogIncr:
		c.handleJogIncr(cmd)
	case KindJogAbs:
		c.handleJogAbs(cmd)
	case KindSetLine:
		c.handleSetLine(cmd)
	case KindSetCircle:
		c.handleSetCircle(cmd)
	case KindProbe:
		c.handleProbe(cmd)
	case KindClearProbeFlags:
		c.handleClearProbeFlags()
	case KindSetTeleopVector:
		c.handleSetTeleopVector(cmd)
	case KindPause:
		c.handlePause()
	case KindResume:
		c.handleResume()
	case KindStep:
		c.handleStep()
	case KindScale:
		c.handleScale(cmd)
	case KindSetVel:
		c.handleSetVel(cmd)
	case KindSetVelLimit:
		c.handleSetVelLimit(cmd)
	case KindSetAxisVelLimit:
		c.handleSetAxisVelLimit(cmd)
	case KindSetAcc:
		c.handleSetAcc(cmd)
	case KindSetTermCond:
		c.handleSetTermCond(cmd)
	case KindSetNumAxes:
		c.handleSetNumAxes(cmd)
	case KindSetWorldHome:
		c.handleSetWorldHome(cmd)
	case KindSetJointHome:
		c.handleSetJointHome(cmd)
	case KindSetHomeOffset:
		c.handleSetHomeOffset(cmd)
	case KindSetHomingVel:
		c.handleSetHomingVel(cmd)
	case KindSetPositionLimits:
		c.handleSetPositionLimits(cmd)
	case KindSetMaxFerror:
		c.handleSetMaxFerror(cmd)
	case KindSetMinFerror:
		c.handleSetMinFerror(cmd)
	case KindSetDebug:
		c.handleSetDebug(cmd)
	case KindHome:
		c.handleHome(cmd)
	case KindOpenLog:
		c.handleOpenLog(cmd)
	case KindStartLog:
		c.handleStartLog(now)
	case KindStopLog:
		c.handleStopLog()
	case KindCloseLog:
		c.handleCloseLog()
	case KindOverrideLimits:
		c.handleOverrideLimits(cmd)
	case KindEnableWatchdog:
		c.handleEnableWatchdog(cmd)
	case KindDisableWatchdog:
		c.handleDisableWatchdog()
	default:
		c.rep.Errorf("unrecognized command %d", int32(cmd.Kind))
		c.status.Result = ResultUnknownCommand
	}
}

func (c *Controller) appendCommandLog(rec CommandLogRecord) {
	if c.cmdLogLen < commandLogCap {
		c.cmdLog[c.cmdLogLen] = rec
		c.cmdLogLen++
		c.status.Log.Points = c.cmdLogLen
	}
}

// handleAbort stops whichever motion is active: teleop velocity is
// zeroed, a coordinated queue is aborted, otherwise the addressed
// free-axis queue is aborted and its homing/error flags cleared.
func (c *Controller) handleAbort(cmd *Command) {
	if c.teleopMode {
		c.teleopVel = coord.Pose{}
		return
	}
	if c.coordMode {
		c.coord.Abort()
		c.status.MotionError = false
		return
	}
	axis := int(cmd.Axis)
	if axis < 0 || axis >= MaxAxis {
		return
	}
	c.free[axis].Abort()
	c.axes[axis].Flags.Homing = false
	c.axes[axis].Flags.Error = false
}

// handleFree requests free mode; always legal. The transition itself is
// deferred to the next execution cycle.
func (c *Controller) handleFree() {
	c.pendingCoord = false
	c.pendingTeleop = false
}

// handleCoord requests coordinated mode, gated by the global homed
// invariant for non-identity kinematics.
func (c *Controller) handleCoord() {
	c.pendingCoord = true
	c.pendingTeleop = false
	if c.kin.Type() != kinematics.Identity && !c.allHomed {
		c.rep.Errorf("all axes must be homed before going into coordinated mode")
		c.pendingCoord = false
	}
}

// handleTeleop requests teleop mode under the same homed gate.
func (c *Controller) handleTeleop() {
	c.pendingTeleop = true
	if c.kin.Type() != kinematics.Identity && !c.allHomed {
		c.rep.Errorf("all axes must be homed before going into teleop mode")
		c.pendingTeleop = false
	}
}

// handleEnable and handleDisable set the deferred enabling flag. With
// inverse-only kinematics coordinated/teleop cannot be safely resumed,
// so the mode requests are forced back to free.
func (c *Controller) handleEnable() {
	c.pendingEnable = true
	if c.kin.Type() == kinematics.InverseOnly {
		c.pendingTeleop = false
		c.pendingCoord = false
	}
}

func (c *Controller) handleDisable() {
	c.pendingEnable = false
	if c.kin.Type() == kinematics.InverseOnly {
		c.pendingTeleop = false
		c.pendingCoord = false
	}
}

// handleActivateAxis toggles axis participation in limit checks and
// drive enable. Out-of-range indices are silently ignored.
func (c *Controller) handleActivateAxis(cmd *Command, active bool) {
	axis := int(cmd.Axis)
	if axis < 0 || axis >= MaxAxis {
		return
	}
	c.axes[axis].Flags.Active = active
}

// handleAmp accepts the amplifier commands for protocol compatibility.
// Drive wiring is an external collaborator; only the request is logged.
func (c *Controller) handleAmp(cmd *Command, enable bool) {
	axis := int(cmd.Axis)
	if axis < 0 || axis >= MaxAxis {
		return
	}
	if c.logger != nil {
		c.logger.Debug("amplifier request",
			zap.Int("axis", axis),
			zap.Bool("enable", enable))
	}
}

// handleOverrideLimits with a negative axis clears the override, any
// other value sets it. Either way all per-axis error flags are cleared.
func (c *Controller) handleOverrideLimits(cmd *Command) {
	c.status.OverrideLimits = cmd.Axis >= 0
	c.overriding = false
	for axis := 0; axis < MaxAxis; axis++ {
		c.axes[axis].Flags.Error = false
	}
}

func (c *Controller) handleEnableWatchdog(cmd *Command) {
	c.wdEnabling = true
	c.wdWait = cmd.WdWait
	if c.wdWait < 0 {
		c.wdWait = 0
	}
}

func (c *Controller) handleDisableWatchdog() {
	c.wdEnabling = false
}

func (c *Controller) handleSetDebug(cmd *Command) {
	c.cfg.Debug = cmd.Debug
	c.cfg.changed()
}
