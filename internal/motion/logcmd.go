package motion

// Logging trigger handlers. Capture itself is external; these configure
// the logger, validate the request, and take the delta-trigger baseline.

// handleOpenLog validates the request and, for delta triggers on a
// per-axis log, captures the baseline value of the trigger variable at
// open time. An invalid request leaves all log flags untouched.
func (c *Controller) handleOpenLog(cmd *Command) {
	axis := int(cmd.Axis)

	valid := false
	if cmd.Log.Size > 0 && cmd.Log.Size <= MaxLogSize {
		if cmd.Log.Type.perAxisLogType() {
			valid = axis >= 0 && axis < MaxAxis
		} else {
			valid = true
		}
	}
	if !valid {
		return
	}

	c.loggingAxis = cmd.Axis
	c.cmdLogLen = 0
	c.status.Log.Open = true
	c.status.Log.Started = false
	c.status.Log.Size = cmd.Log.Size
	c.status.Log.Skip = cmd.Log.Skip
	c.status.Log.Type = cmd.Log.Type
	c.status.Log.TriggerType = cmd.Log.TriggerType
	c.status.Log.TriggerVariable = cmd.Log.TriggerVariable
	c.status.Log.TriggerThreshold = cmd.Log.TriggerThreshold
	c.status.Log.Points = 0

	if axis >= 0 && axis < MaxAxis && c.status.Log.TriggerType == TriggerDelta {
		switch c.status.Log.TriggerVariable {
		case TriggerOnFerror:
			c.status.Log.StartVal = c.ferrorCurrent(axis)
		case TriggerOnVolt:
			c.status.Log.StartVal = c.axes[axis].RawOutput
		case TriggerOnPos:
			c.status.Log.StartVal = c.axes[axis].JointPos
		case TriggerOnVel:
			c.status.Log.StartVal = c.axes[axis].JointPos - c.axes[axis].OldJointPos
		}
	}
}

// handleStartLog starts a manually triggered log. Triggered log types
// (pos-voltage) are armed by their trigger condition, not by StartLog.
// The start time becomes the base subtracted from per-cycle log times
// so the small increments stay resolvable.
func (c *Controller) handleStartLog(now float64) {
	if c.status.Log.Type == LogTypePosVoltage {
		return
	}
	if c.status.Log.Open && c.status.Log.TriggerType == TriggerManual {
		c.logStartTime = now
		c.status.Log.Started = true
	}
}

func (c *Controller) handleStopLog() {
	c.status.Log.Started = false
}

func (c *Controller) handleCloseLog() {
	c.status.Log.Open = false
	c.status.Log.Started = false
	c.status.Log.Size = 0
	c.status.Log.Skip = 0
	c.status.Log.Type = LogTypeNone
}

// ferrorCurrent returns the current following error of an axis: the
// difference between the commanded free pose target and the measured
// joint position while a free move is queued, zero otherwise.
func (c *Controller) ferrorCurrent(axis int) float64 {
	if c.free[axis].Len() == 0 {
		return 0
	}
	return c.freePose.Tran.X - c.axes[axis].JointPos
}
