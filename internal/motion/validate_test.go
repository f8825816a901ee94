package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckLimitsSkipsInactiveAxes(t *testing.T) {
	c := newTestController(t)

	assert.True(t, c.checkLimits())

	c.axes[7].Flags.MaxHardLimit = true
	assert.True(t, c.checkLimits(), "inactive axis must not be consulted")

	c.axes[1].Flags.MinSoftLimit = true
	assert.False(t, c.checkLimits())
}

func TestCheckJogDirectionality(t *testing.T) {
	c := newTestController(t)

	c.axes[0].Flags.MaxSoftLimit = true
	assert.False(t, c.checkJog(0, 1.0))
	assert.True(t, c.checkJog(0, -1.0), "jogging off a limit is allowed")

	c.axes[0].Flags = AxisFlags{MinHardLimit: true}
	assert.False(t, c.checkJog(0, -1.0))
	assert.True(t, c.checkJog(0, 1.0))
}

func TestCheckJogOutOfRangeAxis(t *testing.T) {
	c := newTestController(t)

	assert.False(t, c.checkJog(-1, 1.0))
	assert.False(t, c.checkJog(MaxAxis, 1.0))

	diags := c.rep.Drain()
	assert.Len(t, diags, 2)
}

func TestCheckJogOverrideBypassesEverything(t *testing.T) {
	c := newTestController(t)

	c.status.OverrideLimits = true
	c.axes[0].Flags.MaxHardLimit = true

	assert.True(t, c.checkJog(0, 1.0))
	assert.True(t, c.checkJog(-1, 1.0), "override skips even the range check")
}

func TestInRangeChecksActiveAxesAgainstTravelLimits(t *testing.T) {
	c := newTestController(t)

	assert.True(t, c.inRange(poseXYZ(50, 50, 50)))
	assert.False(t, c.inRange(poseXYZ(150, 0, 0)))
	assert.False(t, c.inRange(poseXYZ(-1, 0, 0)))

	// Deactivating the offending axis removes it from the check.
	c.axes[0].Flags.Active = false
	assert.True(t, c.inRange(poseXYZ(150, 0, 0)))
}

func TestClearHomesIdentityKinematicsOnlyDropsGlobalFlag(t *testing.T) {
	c := newTestController(t)

	c.axes[0].Flags.Homed = true
	c.allHomed = true

	c.clearHomes(0)

	assert.True(t, c.axes[0].Flags.Homed)
	assert.False(t, c.allHomed)
}

func TestClearHomesInverseOnlyClearsJoggedAxis(t *testing.T) {
	c := newTestController(t)
	c.kin = inverseOnlyKin{}

	c.axes[0].Flags.Homed = true
	c.axes[1].Flags.Homed = true

	c.clearHomes(0)

	assert.False(t, c.axes[0].Flags.Homed)
	assert.True(t, c.axes[1].Flags.Homed)
}

func TestClearHomesInverseOnlyRehomeAllClearsEverything(t *testing.T) {
	c := newTestController(t)
	c.kin = inverseOnlyKin{}
	c.rehomeAll = true

	for i := 0; i < 3; i++ {
		c.axes[i].Flags.Homed = true
	}

	c.clearHomes(1)

	for i := 0; i < 3; i++ {
		assert.False(t, c.axes[i].Flags.Homed, "axis %d", i)
	}
}
