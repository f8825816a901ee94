package motion

// Coordinated-motion, teleop and motion-control handlers.

// coordPreconditions is the shared gate for queueing coordinated moves:
// coordinated mode with drives enabled, target reachable, no active axis
// sitting on a limit. On failure the pending queue is aborted (except
// for the mode/enable case, which never queued anything).
func (c *Controller) coordPreconditions(cmd *Command, what string) bool {
	if !c.coordMode || !c.enabled {
		c.rep.Errorf("need to be enabled, in coord mode for %s move", what)
		c.status.Result = ResultInvalidCommand
		c.status.MotionError = true
		return false
	}
	if !c.inRange(cmd.Pos) {
		c.rep.Errorf("%s move %d out of range", what, cmd.ID)
		c.status.Result = ResultInvalidParams
		c.coord.Abort()
		c.status.MotionError = true
		return false
	}
	if !c.checkLimits() {
		c.rep.Errorf("can't do %s move with limits exceeded", what)
		c.status.Result = ResultInvalidParams
		c.coord.Abort()
		c.status.MotionError = true
		return false
	}
	return true
}

// handleSetLine queues a linear coordinated move tagged with the
// command's motion id.
func (c *Controller) handleSetLine(cmd *Command) {
	if !c.coordPreconditions(cmd, "linear") {
		return
	}

	c.coord.SetID(cmd.ID)
	if err := c.coord.AddLine(cmd.Pos); err != nil {
		c.rep.Errorf("can't add linear move: %v", err)
		c.status.Result = ResultBadExec
		c.coord.Abort()
		c.status.MotionError = true
		return
	}

	c.status.MotionError = false
	// Any coordinated move in general moves every joint, so a later
	// free-axis jog must invalidate all homed flags, not just its own.
	c.rehomeAll = true
}

// handleSetCircle queues a circular coordinated move.
func (c *Controller) handleSetCircle(cmd *Command) {
	if !c.coordPreconditions(cmd, "circular") {
		return
	}

	c.coord.SetID(cmd.ID)
	if err := c.coord.AddCircle(cmd.Pos, cmd.Center, cmd.Normal, cmd.Turn); err != nil {
		c.rep.Errorf("can't add circular move: %v", err)
		c.status.Result = ResultBadExec
		c.coord.Abort()
		c.status.MotionError = true
		return
	}

	c.status.MotionError = false
	c.rehomeAll = true
}

// handleProbe queues a probing move: a linear move that additionally
// arms the probe flags so the execution loop can stop on trip.
func (c *Controller) handleProbe(cmd *Command) {
	if !c.coordPreconditions(cmd, "probe") {
		return
	}

	c.coord.SetID(cmd.ID)
	if err := c.coord.AddLine(cmd.Pos); err != nil {
		c.rep.Errorf("can't add probe move: %v", err)
		c.status.Result = ResultBadExec
		c.coord.Abort()
		c.status.MotionError = true
		return
	}

	c.status.ProbeTripped = false
	c.status.Probing = true
	c.status.MotionError = false
	c.rehomeAll = true
}

func (c *Controller) handleClearProbeFlags() {
	c.status.ProbeTripped = false
	c.status.Probing = true
}

// handleSetTeleopVector stores the desired Cartesian+angular velocity,
// uniformly scaled down so no component exceeds the global velocity
// limit.
func (c *Controller) handleSetTeleopVector(cmd *Command) {
	if !c.teleopMode || !c.enabled {
		c.rep.Errorf("need to be enabled, in teleop mode for teleop move")
		return
	}

	c.teleopVel = cmd.Pos
	velmag := c.teleopVel.Tran.Mag()
	if c.teleopVel.A > velmag {
		velmag = c.teleopVel.A
	}
	if c.teleopVel.B > velmag {
		velmag = c.teleopVel.B
	}
	if c.teleopVel.C > velmag {
		velmag = c.teleopVel.C
	}
	if velmag > c.cfg.LimitVel {
		scale := c.cfg.LimitVel / velmag
		c.teleopVel.Tran = c.teleopVel.Tran.Scale(scale)
		c.teleopVel.A *= scale
		c.teleopVel.B *= scale
		c.teleopVel.C *= scale
	}

	c.rehomeAll = true
}

// handlePause holds every per-axis queue and the coordinated queue.
func (c *Controller) handlePause() {
	for axis := 0; axis < MaxAxis; axis++ {
		c.free[axis].Pause()
	}
	c.coord.Pause()
	c.status.Paused = true
}

func (c *Controller) handleResume() {
	c.stepping = false
	for axis := 0; axis < MaxAxis; axis++ {
		c.free[axis].Resume()
	}
	c.coord.Resume()
	c.status.Paused = false
}

// handleStep resumes until the coordinated queue's motion id changes;
// the execution loop re-pauses when it observes the id advance past
// idForStep.
func (c *Controller) handleStep() {
	c.idForStep = c.status.ID
	c.stepping = true
	for axis := 0; axis < MaxAxis; axis++ {
		c.free[axis].Resume()
	}
	c.coord.Resume()
	c.status.Paused = false
}

// handleScale applies a velocity override to every queue. Negative
// input clamps to zero.
func (c *Controller) handleScale(cmd *Command) {
	scale := cmd.Scale
	if scale < 0.0 {
		scale = 0.0
	}
	for axis := 0; axis < MaxAxis; axis++ {
		c.free[axis].SetVscale(scale)
		c.status.AxVscale[axis] = scale
	}
	c.coord.SetVscale(scale)
	c.status.QVscale = scale
}

// handleSetVel sets the working velocity for subsequent moves and
// propagates it into every queue.
func (c *Controller) handleSetVel(cmd *Command) {
	c.status.Vel = cmd.Vel
	for axis := 0; axis < MaxAxis; axis++ {
		c.free[axis].SetVmax(c.status.Vel)
	}
	c.coord.SetVmax(c.status.Vel)
}

// handleSetVelLimit sets the absolute velocity ceiling for all
// subsequent motion.
func (c *Controller) handleSetVelLimit(cmd *Command) {
	c.cfg.LimitVel = cmd.Vel
	c.coord.SetVlimit(c.cfg.LimitVel)
	c.cfg.changed()
}

func (c *Controller) handleSetAxisVelLimit(cmd *Command) {
	axis := int(cmd.Axis)
	if axis < 0 || axis >= MaxAxis {
		return
	}
	c.free[axis].SetVlimit(cmd.Vel)
	c.cfg.AxisLimitVel[axis] = cmd.Vel
	c.bigVel[axis] = 10 * cmd.Vel
	c.cfg.changed()
}

// handleSetAcc sets the working acceleration and propagates it into
// every queue.
func (c *Controller) handleSetAcc(cmd *Command) {
	c.status.Acc = cmd.Acc
	for axis := 0; axis < MaxAxis; axis++ {
		c.free[axis].SetAmax(c.status.Acc)
	}
	c.coord.SetAmax(c.status.Acc)
}

func (c *Controller) handleSetTermCond(cmd *Command) {
	c.coord.SetTermCond(cmd.TermCond)
}
