package motion

import (
	"testing"

	"github.com/d2inventory/motioncore/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enterCoordMode(t *testing.T, c *Controller) {
	t.Helper()
	apply(c, Command{Kind: KindEnable})
	apply(c, Command{Kind: KindCoord})
	require.Equal(t, ModeCoordinated, c.Mode())
}

func TestSetLineRejectedOutsideCoordinatedMode(t *testing.T) {
	c := newTestController(t)

	apply(c, Command{Kind: KindEnable})
	apply(c, Command{Kind: KindSetLine, ID: 1, Pos: poseXYZ(10, 0, 0)})

	assert.Equal(t, ResultInvalidCommand, c.status.Result)
	assert.True(t, c.status.MotionError)
	assert.Zero(t, c.coord.Len())
	diags := c.rep.Drain()
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "coord mode for linear move")
}

func TestSetLineOutOfRangeAbortsQueue(t *testing.T) {
	c := newTestController(t)
	enterCoordMode(t, c)

	apply(c, Command{Kind: KindSetLine, ID: 3, Pos: poseXYZ(10, 0, 0)})
	require.Equal(t, 1, c.coord.Len())

	apply(c, Command{Kind: KindSetLine, ID: 4, Pos: poseXYZ(500, 0, 0)})

	assert.Equal(t, ResultInvalidParams, c.status.Result)
	assert.True(t, c.status.MotionError)
	// The pending queue is aborted, not just the rejected move.
	assert.Zero(t, c.coord.Len())
}

func TestSetLineRejectedWhileOnLimit(t *testing.T) {
	c := newTestController(t)
	enterCoordMode(t, c)

	c.axes[0].Flags.MinHardLimit = true
	apply(c, Command{Kind: KindSetLine, ID: 1, Pos: poseXYZ(10, 0, 0)})

	assert.Equal(t, ResultInvalidParams, c.status.Result)
	assert.Zero(t, c.coord.Len())
}

func TestLimitOnInactiveAxisDoesNotBlockMoves(t *testing.T) {
	c := newTestController(t)
	enterCoordMode(t, c)

	c.axes[6].Flags.MinHardLimit = true
	apply(c, Command{Kind: KindSetLine, ID: 1, Pos: poseXYZ(10, 0, 0)})

	assert.Equal(t, ResultOk, c.status.Result)
	assert.Equal(t, 1, c.coord.Len())
}

func TestSetLineTagsSegmentWithMotionID(t *testing.T) {
	c := newTestController(t)
	enterCoordMode(t, c)

	apply(c, Command{Kind: KindSetLine, ID: 42, Pos: poseXYZ(10, 20, 0)})

	require.Equal(t, 1, c.coord.Len())
	assert.Equal(t, int32(42), c.coord.ActiveID())
	assert.False(t, c.status.MotionError)
	assert.True(t, c.rehomeAll)
}

func TestSetCircleQueuesSegment(t *testing.T) {
	c := newTestController(t)
	enterCoordMode(t, c)

	apply(c, Command{
		Kind:   KindSetCircle,
		ID:     7,
		Pos:    poseXYZ(10, 10, 0),
		Center: vecXYZ(5, 5, 0),
		Normal: vecXYZ(0, 0, 1),
		Turn:   1,
	})

	require.Equal(t, 1, c.coord.Len())
	seg, ok := c.coord.(*planner.FIFO).Next()
	require.True(t, ok)
	assert.Equal(t, planner.SegmentCircle, seg.Kind)
	assert.Equal(t, int32(7), seg.ID)
	assert.Equal(t, 1.0, seg.Vscale)
}

func TestQueueFullEchoesBadExec(t *testing.T) {
	c := newTestController(t)
	enterCoordMode(t, c)

	for i := 0; i < 8; i++ {
		apply(c, Command{Kind: KindSetLine, ID: int32(i), Pos: poseXYZ(10, 0, 0)})
		require.Equal(t, ResultOk, c.status.Result)
	}

	apply(c, Command{Kind: KindSetLine, ID: 99, Pos: poseXYZ(10, 0, 0)})

	assert.Equal(t, ResultBadExec, c.status.Result)
	assert.True(t, c.status.MotionError)
	assert.Zero(t, c.coord.Len())
}

func TestProbeArmsProbeFlags(t *testing.T) {
	c := newTestController(t)
	enterCoordMode(t, c)

	c.status.ProbeTripped = true
	apply(c, Command{Kind: KindProbe, ID: 5, Pos: poseXYZ(10, 0, 0)})

	assert.True(t, c.status.Probing)
	assert.False(t, c.status.ProbeTripped)
	assert.Equal(t, 1, c.coord.Len())
}

func TestTeleopVectorScaledUniformlyToVelocityLimit(t *testing.T) {
	c := newTestController(t)

	apply(c, Command{Kind: KindEnable})
	apply(c, Command{Kind: KindTeleop})
	require.Equal(t, ModeTeleop, c.Mode())

	// Magnitude 100 against a limit of 50: everything halves.
	apply(c, Command{Kind: KindSetTeleopVector, Pos: poseXYZ(100, 0, 0)})

	assert.InDelta(t, 50.0, c.teleopVel.Tran.X, 1e-9)

	apply(c, Command{Kind: KindSetTeleopVector, Pos: poseXYZ(30, 0, 0)})
	assert.InDelta(t, 30.0, c.teleopVel.Tran.X, 1e-9)
}

func TestTeleopVectorOutsideTeleopModeOnlyReports(t *testing.T) {
	c := newTestController(t)

	apply(c, Command{Kind: KindEnable})
	apply(c, Command{Kind: KindSetTeleopVector, Pos: poseXYZ(10, 0, 0)})

	assert.Equal(t, ResultOk, c.status.Result)
	assert.Zero(t, c.teleopVel.Tran.X)
	diags := c.rep.Drain()
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "teleop mode")
}

func TestPauseAndResumeToggleQueues(t *testing.T) {
	c := newTestController(t)
	enterCoordMode(t, c)

	apply(c, Command{Kind: KindPause})
	assert.True(t, c.status.Paused)
	assert.True(t, c.coord.Paused())

	apply(c, Command{Kind: KindResume})
	assert.False(t, c.status.Paused)
	assert.False(t, c.coord.Paused())
}

func TestSetVelAndAccPropagateToQueues(t *testing.T) {
	c := newTestController(t)

	apply(c, Command{Kind: KindSetVel, Vel: 25.0})
	apply(c, Command{Kind: KindSetAcc, Acc: 80.0})

	assert.Equal(t, 25.0, c.status.Vel)
	assert.Equal(t, 80.0, c.status.Acc)

	// The captured limits ride along on the next queued segment.
	enterCoordMode(t, c)
	apply(c, Command{Kind: KindSetLine, ID: 1, Pos: poseXYZ(10, 0, 0)})
	seg, ok := c.coord.(*planner.FIFO).Next()
	require.True(t, ok)
	assert.Equal(t, 25.0, seg.Vmax)
	assert.Equal(t, 80.0, seg.Amax)
}

func TestSetAxisVelLimitTracksRunawayThreshold(t *testing.T) {
	c := newTestController(t)

	apply(c, Command{Kind: KindSetAxisVelLimit, Axis: 2, Vel: 12.0})

	assert.Equal(t, 12.0, c.cfg.AxisLimitVel[2])
	assert.Equal(t, 120.0, c.bigVel[2])

	// Out-of-range axis: silently dropped.
	apply(c, Command{Kind: KindSetAxisVelLimit, Axis: 9, Vel: 12.0})
	assert.Equal(t, ResultOk, c.status.Result)
}
