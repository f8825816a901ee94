package motion

import "math"

// Free-axis jog and homing handlers. A free-axis trajectory queue is
// one-dimensional: the joint target travels in the X slot of the free
// pose regardless of which axis is addressed.

// jogPreconditions enforces the shared jog gate: not coordinated, in
// position, enabled. reportMode selects whether the failure emits a
// diagnostic (continuous jog) or just latches the axis error flag
// (incremental and absolute jog).
func (c *Controller) jogPreconditions(axis int, reportMode bool) bool {
	if c.coordMode {
		if reportMode {
			c.rep.Errorf("can't jog axis in coordinated mode")
		}
		c.axes[axis].Flags.Error = true
		return false
	}
	if !c.inPosition() {
		if reportMode {
			c.rep.Errorf("can't jog axis when not in position")
		}
		c.axes[axis].Flags.Error = true
		return false
	}
	if !c.enabled {
		if reportMode {
			c.rep.Errorf("can't jog axis when not enabled")
		}
		c.axes[axis].Flags.Error = true
		return false
	}
	return true
}

// submitJog queues the computed free-pose target at the commanded
// velocity magnitude and applies the clear-homed-on-move rule.
func (c *Controller) submitJog(axis int, vel float64) {
	c.free[axis].SetVmax(math.Abs(vel))
	if err := c.free[axis].AddLine(c.freePose); err != nil {
		c.rep.Errorf("can't add jog move for axis %d: %v", axis, err)
		c.axes[axis].Flags.Error = true
		return
	}
	c.axes[axis].Flags.Error = false
	if c.status.OverrideLimits {
		// Remember that a move was started under the override so the
		// execution cycle can drop it once the machine is off the limit.
		c.overriding = true
	}
	// A free-space move invalidates homing when Cartesian position
	// cannot be recomputed from joints; a later transition into
	// coordinated mode would otherwise assume a stale homed position.
	c.clearHomes(axis)
}

// handleJogCont implements a continuous jog as an incremental jog to the
// soft limit, or the full travel range when the axis is not yet homed
// and the limits do not apply.
func (c *Controller) handleJogCont(cmd *Command) {
	axis := int(cmd.Axis)
	if axis < 0 || axis >= MaxAxis {
		return
	}
	if !c.jogPreconditions(axis, true) {
		return
	}
	if !c.checkJog(axis, cmd.Vel) {
		c.axes[axis].Flags.Error = true
		return
	}

	if cmd.Vel > 0.0 {
		if c.axes[axis].Flags.Homed {
			c.freePose.Tran.X = c.cfg.MaxLimit[axis]
		} else {
			c.freePose.Tran.X = c.axes[axis].JointPos + c.cfg.AxisRange(axis)
		}
	} else {
		if c.axes[axis].Flags.Homed {
			c.freePose.Tran.X = c.cfg.MinLimit[axis]
		} else {
			c.freePose.Tran.X = c.axes[axis].JointPos - c.cfg.AxisRange(axis)
		}
	}

	c.submitJog(axis, cmd.Vel)
}

// handleJogIncr jogs by a signed offset from the current joint position,
// clamped to the soft limits once homed.
func (c *Controller) handleJogIncr(cmd *Command) {
	axis := int(cmd.Axis)
	if axis < 0 || axis >= MaxAxis {
		return
	}
	if !c.jogPreconditions(axis, false) {
		return
	}
	if !c.checkJog(axis, cmd.Vel) {
		c.axes[axis].Flags.Error = true
		return
	}

	if cmd.Vel > 0.0 {
		c.freePose.Tran.X = c.axes[axis].JointPos + cmd.Offset
		if c.axes[axis].Flags.Homed && c.freePose.Tran.X > c.cfg.MaxLimit[axis] {
			c.freePose.Tran.X = c.cfg.MaxLimit[axis]
		}
	} else {
		c.freePose.Tran.X = c.axes[axis].JointPos - cmd.Offset
		if c.axes[axis].Flags.Homed && c.freePose.Tran.X < c.cfg.MinLimit[axis] {
			c.freePose.Tran.X = c.cfg.MinLimit[axis]
		}
	}

	c.submitJog(axis, cmd.Vel)
}

// handleJogAbs jogs to an absolute joint position, clamped to the soft
// limits once homed.
func (c *Controller) handleJogAbs(cmd *Command) {
	axis := int(cmd.Axis)
	if axis < 0 || axis >= MaxAxis {
		return
	}
	if !c.jogPreconditions(axis, false) {
		return
	}
	if !c.checkJog(axis, cmd.Vel) {
		c.axes[axis].Flags.Error = true
		return
	}

	c.freePose.Tran.X = cmd.Offset
	if c.axes[axis].Flags.Homed {
		if c.freePose.Tran.X > c.cfg.MaxLimit[axis] {
			c.freePose.Tran.X = c.cfg.MaxLimit[axis]
		} else if c.freePose.Tran.X < c.cfg.MinLimit[axis] {
			c.freePose.Tran.X = c.cfg.MinLimit[axis]
		}
	}

	c.submitJog(axis, cmd.Vel)
}

// handleHome issues the homing traversal: a long free-space move of up
// to twice the travel range in the direction of the configured homing
// velocity. Completion is reported later by the homing sequence through
// CompleteHoming. Requires free mode with drives enabled; silently
// ignored otherwise.
func (c *Controller) handleHome(cmd *Command) {
	axis := int(cmd.Axis)
	if axis < 0 || axis >= MaxAxis {
		return
	}
	if c.coordMode || !c.enabled {
		return
	}

	if c.cfg.HomingVel[axis] > 0.0 {
		c.freePose.Tran.X = +2.0 * c.cfg.AxisRange(axis)
	} else {
		c.freePose.Tran.X = -2.0 * c.cfg.AxisRange(axis)
	}

	c.free[axis].SetVmax(math.Abs(c.cfg.HomingVel[axis]))
	if err := c.free[axis].AddLine(c.freePose); err != nil {
		c.rep.Errorf("can't add homing move for axis %d: %v", axis, err)
		c.axes[axis].Flags.Error = true
		return
	}
	c.axes[axis].HomingPhase = 1
	c.axes[axis].Flags.Homing = true
	c.axes[axis].Flags.Homed = false
}
