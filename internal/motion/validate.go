package motion

import (
	"github.com/d2inventory/motioncore/internal/coord"
	"github.com/d2inventory/motioncore/internal/kinematics"
)

// Safety validator: pure predicates over current axis and config state.
// Results are never cached across cycles.

// checkLimits returns true iff no active axis currently has any of its
// four limit flags set. Inactive axes are not consulted at all. Used as
// a global precondition for committing a coordinated move.
func (c *Controller) checkLimits() bool {
	for axis := 0; axis < MaxAxis; axis++ {
		if !c.axes[axis].Flags.Active {
			continue
		}
		if c.axes[axis].Flags.AnyLimit() {
			return false
		}
	}
	return true
}

// checkJog decides whether a jog of the given signed velocity may start
// on the axis. Jogging off a limit is allowed; jogging further past one
// is not. Override-limits bypasses every check.
func (c *Controller) checkJog(axis int, vel float64) bool {
	if c.status.OverrideLimits {
		return true
	}

	if axis < 0 || axis >= MaxAxis {
		c.rep.Errorf("can't jog out of range axis %d", axis)
		return false
	}

	f := c.axes[axis].Flags
	if vel > 0.0 && f.MaxSoftLimit {
		c.rep.Errorf("can't jog axis %d further past max soft limit", axis)
		return false
	}
	if vel > 0.0 && f.MaxHardLimit {
		c.rep.Errorf("can't jog axis %d further past max hard limit", axis)
		return false
	}
	if vel < 0.0 && f.MinSoftLimit {
		c.rep.Errorf("can't jog axis %d further past min soft limit", axis)
		return false
	}
	if vel < 0.0 && f.MinHardLimit {
		c.rep.Errorf("can't jog axis %d further past min hard limit", axis)
		return false
	}

	return true
}

// inRange converts the Cartesian target to joint values through the
// kinematics collaborator and checks every active axis against its
// configured travel limits. Inactive axes are skipped. A kinematics
// failure counts as out of range.
func (c *Controller) inRange(pos coord.Pose) bool {
	var joints [MaxAxis]float64

	if err := c.kin.Inverse(pos, joints[:]); err != nil {
		c.rep.Errorf("inverse kinematics failed: %v", err)
		return false
	}

	for axis := 0; axis < MaxAxis; axis++ {
		if !c.axes[axis].Flags.Active {
			continue
		}
		if joints[axis] > c.cfg.MaxLimit[axis] || joints[axis] < c.cfg.MinLimit[axis] {
			return false
		}
	}

	return true
}

// clearHomes clears homed state invalidated by free-axis motion on
// machines without forward kinematics: an individually moved joint
// silently invalidates the machine's home reference when Cartesian
// position cannot be recomputed from joints. If a coordinated or teleop
// move has happened since homing (rehomeAll), every axis is cleared,
// otherwise only the jogged one.
func (c *Controller) clearHomes(axis int) {
	if c.kin.Type() == kinematics.InverseOnly {
		if c.rehomeAll {
			for t := 0; t < MaxAxis; t++ {
				c.axes[t].Flags.Homed = false
			}
		} else if axis >= 0 && axis < MaxAxis {
			c.axes[axis].Flags.Homed = false
		}
	}
	c.allHomed = false
}
