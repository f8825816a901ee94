package motion

// Configuration command handlers. Out-of-range axis indices and
// negative values where a non-negative is required are silently
// ignored with no status change; this permissive behavior is part of
// the existing command contract.

// handleSetNumAxes sets the configured axis count. The value is a
// counting number, not an index, so the range check differs from the
// other handlers.
func (c *Controller) handleSetNumAxes(cmd *Command) {
	n := int(cmd.Axis)
	if n <= 0 || n > MaxAxis {
		return
	}
	c.cfg.NumAxes = n
	c.cfg.changed()
}

func (c *Controller) handleSetWorldHome(cmd *Command) {
	c.worldHome = cmd.Pos
}

func (c *Controller) handleSetJointHome(cmd *Command) {
	axis := int(cmd.Axis)
	if axis < 0 || axis >= MaxAxis {
		return
	}
	c.jointHome[axis] = cmd.Offset
}

func (c *Controller) handleSetHomeOffset(cmd *Command) {
	axis := int(cmd.Axis)
	if axis < 0 || axis >= MaxAxis {
		return
	}
	c.cfg.HomeOffset[axis] = cmd.Offset
	c.cfg.changed()
}

// handleSetHomingVel stores the signed homing velocity: the sign sets
// the traversal direction, the magnitude the speed.
func (c *Controller) handleSetHomingVel(cmd *Command) {
	axis := int(cmd.Axis)
	if axis < 0 || axis >= MaxAxis {
		return
	}
	c.cfg.HomingVel[axis] = cmd.Vel
	c.cfg.changed()
}

func (c *Controller) handleSetPositionLimits(cmd *Command) {
	axis := int(cmd.Axis)
	if axis < 0 || axis >= MaxAxis {
		return
	}
	c.cfg.MinLimit[axis] = cmd.MinLimit
	c.cfg.MaxLimit[axis] = cmd.MaxLimit
	c.cfg.changed()
}

// Max and min following error bound the limiting-ferror line: limiting
// ferror = maxFerror/limitVel * vel; below minFerror is always ok.
func (c *Controller) handleSetMaxFerror(cmd *Command) {
	axis := int(cmd.Axis)
	if axis < 0 || axis >= MaxAxis || cmd.MaxFerror < 0.0 {
		return
	}
	c.cfg.MaxFerror[axis] = cmd.MaxFerror
	c.cfg.changed()
}

func (c *Controller) handleSetMinFerror(cmd *Command) {
	axis := int(cmd.Axis)
	if axis < 0 || axis >= MaxAxis || cmd.MinFerror < 0.0 {
		return
	}
	c.cfg.MinFerror[axis] = cmd.MinFerror
	c.cfg.changed()
}
