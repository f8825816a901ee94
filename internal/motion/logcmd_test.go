package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLogRejectsBadSize(t *testing.T) {
	c := newTestController(t)

	apply(c, Command{Kind: KindOpenLog, Log: LogRequest{Type: LogTypeCmd, Size: 0}})
	assert.False(t, c.status.Log.Open)

	apply(c, Command{Kind: KindOpenLog, Log: LogRequest{Type: LogTypeCmd, Size: MaxLogSize + 1}})
	assert.False(t, c.status.Log.Open)

	apply(c, Command{Kind: KindOpenLog, Log: LogRequest{Type: LogTypeCmd, Size: 100}})
	assert.True(t, c.status.Log.Open)
	assert.False(t, c.status.Log.Started)
}

func TestOpenLogPerAxisTypeNeedsValidAxis(t *testing.T) {
	c := newTestController(t)

	apply(c, Command{Kind: KindOpenLog, Axis: -1, Log: LogRequest{Type: LogTypeAxisPos, Size: 100}})
	assert.False(t, c.status.Log.Open)

	apply(c, Command{Kind: KindOpenLog, Axis: 1, Log: LogRequest{Type: LogTypeAxisPos, Size: 100}})
	assert.True(t, c.status.Log.Open)
}

func TestOpenLogDeltaTriggerCapturesBaseline(t *testing.T) {
	c := newTestController(t)

	c.axes[0].JointPos = 12.5
	apply(c, Command{Kind: KindOpenLog, Axis: 0, Log: LogRequest{
		Type:             LogTypeAxisPos,
		Size:             100,
		TriggerType:      TriggerDelta,
		TriggerVariable:  TriggerOnPos,
		TriggerThreshold: 0.5,
	}})

	require.True(t, c.status.Log.Open)
	assert.Equal(t, 12.5, c.status.Log.StartVal)
}

func TestStartLogManualTriggerOnly(t *testing.T) {
	c := newTestController(t)

	apply(c, Command{Kind: KindOpenLog, Axis: 0, Log: LogRequest{
		Type:        LogTypeAxisPos,
		Size:        100,
		TriggerType: TriggerDelta,
	}})
	apply(c, Command{Kind: KindStartLog})
	assert.False(t, c.status.Log.Started, "delta trigger is armed by its condition, not StartLog")

	apply(c, Command{Kind: KindCloseLog})
	apply(c, Command{Kind: KindOpenLog, Axis: 0, Log: LogRequest{
		Type: LogTypeAxisPos,
		Size: 100,
	}})
	apply(c, Command{Kind: KindStartLog})
	assert.True(t, c.status.Log.Started)
}

func TestCommandLogRecordsDispatchedCommands(t *testing.T) {
	c := newTestController(t)

	apply(c, Command{Kind: KindOpenLog, Log: LogRequest{Type: LogTypeCmd, Size: 100}})
	apply(c, Command{Kind: KindStartLog})
	apply(c, Command{Kind: KindEnable})
	apply(c, Command{Kind: KindSetVel, Vel: 10})
	apply(c, Command{Kind: KindStopLog})

	log := c.CommandLog()
	require.Len(t, log, 3)
	assert.Equal(t, KindEnable, log[0].Kind)
	assert.Equal(t, KindSetVel, log[1].Kind)
	assert.Equal(t, KindStopLog, log[2].Kind)
}

func TestCloseLogResetsLoggerState(t *testing.T) {
	c := newTestController(t)

	apply(c, Command{Kind: KindOpenLog, Log: LogRequest{Type: LogTypeCmd, Size: 100, Skip: 2}})
	apply(c, Command{Kind: KindStartLog})
	apply(c, Command{Kind: KindCloseLog})

	assert.False(t, c.status.Log.Open)
	assert.False(t, c.status.Log.Started)
	assert.Zero(t, c.status.Log.Size)
	assert.Zero(t, c.status.Log.Skip)
	assert.Equal(t, LogTypeNone, c.status.Log.Type)
}
