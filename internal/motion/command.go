package motion

import (
	"fmt"

	"github.com/d2inventory/motioncore/internal/coord"
	"github.com/d2inventory/motioncore/internal/planner"
)

// Kind identifies a command. The numeric values are part of the wire
// contract with the producer and must not be reordered.
type Kind int32

const (
	KindNone Kind = iota
	KindAbort
	KindFree
	KindCoord
	KindTeleop
	KindEnable
	KindDisable
	KindActivateAxis
	KindDeactivateAxis
	KindEnableAmp
	KindDisableAmp
	KindJogCont
	KindJogIncr
	KindJogAbs
	KindSetLine
	KindSetCircle
	KindProbe
	KindClearProbeFlags
	KindSetTeleopVector
	KindPause
	KindResume
	KindStep
	KindScale
	KindSetVel
	KindSetVelLimit
	KindSetAxisVelLimit
	KindSetAcc
	KindSetTermCond
	KindSetNumAxes
	KindSetWorldHome
	KindSetJointHome
	KindSetHomeOffset
	KindSetHomingVel
	KindSetPositionLimits
	KindSetMaxFerror
	KindSetMinFerror
	KindSetDebug
	KindHome
	KindOpenLog
	KindStartLog
	KindStopLog
	KindCloseLog
	KindOverrideLimits
	KindEnableWatchdog
	KindDisableWatchdog
)

var kindNames = map[Kind]string{
	KindAbort:             "abort",
	KindFree:              "free",
	KindCoord:             "coord",
	KindTeleop:            "teleop",
	KindEnable:            "enable",
	KindDisable:           "disable",
	KindActivateAxis:      "activate_axis",
	KindDeactivateAxis:    "deactivate_axis",
	KindEnableAmp:         "enable_amp",
	KindDisableAmp:        "disable_amp",
	KindJogCont:           "jog_cont",
	KindJogIncr:           "jog_incr",
	KindJogAbs:            "jog_abs",
	KindSetLine:           "set_line",
	KindSetCircle:         "set_circle",
	KindProbe:             "probe",
	KindClearProbeFlags:   "clear_probe_flags",
	KindSetTeleopVector:   "set_teleop_vector",
	KindPause:             "pause",
	KindResume:            "resume",
	KindStep:              "step",
	KindScale:             "scale",
	KindSetVel:            "set_vel",
	KindSetVelLimit:       "set_vel_limit",
	KindSetAxisVelLimit:   "set_axis_vel_limit",
	KindSetAcc:            "set_acc",
	KindSetTermCond:       "set_term_cond",
	KindSetNumAxes:        "set_num_axes",
	KindSetWorldHome:      "set_world_home",
	KindSetJointHome:      "set_joint_home",
	KindSetHomeOffset:     "set_home_offset",
	KindSetHomingVel:      "set_homing_vel",
	KindSetPositionLimits: "set_position_limits",
	KindSetMaxFerror:      "set_max_ferror",
	KindSetMinFerror:      "set_min_ferror",
	KindSetDebug:          "set_debug",
	KindHome:              "home",
	KindOpenLog:           "open_log",
	KindStartLog:          "start_log",
	KindStopLog:           "stop_log",
	KindCloseLog:          "close_log",
	KindOverrideLimits:    "override_limits",
	KindEnableWatchdog:    "enable_watchdog",
	KindDisableWatchdog:   "disable_watchdog",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, n := range kindNames {
		m[n] = k
	}
	return m
}()

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int32(k))
}

// ParseKind resolves a command name from the supervisor API.
func ParseKind(name string) (Kind, error) {
	if k, ok := kindByName[name]; ok {
		return k, nil
	}
	return KindNone, fmt.Errorf("unknown command %q", name)
}

// LogRequest carries the logger configuration of an OpenLog command.
type LogRequest struct {
	Type             LogType     `json:"type"`
	Size             int32       `json:"size"`
	Skip             int32       `json:"skip"`
	TriggerType      TriggerType `json:"trigger_type"`
	TriggerVariable  TriggerVar  `json:"trigger_variable"`
	TriggerThreshold float64     `json:"trigger_threshold"`
}

// Command is the record the producer writes into the channel. It is a
// flat union: only the fields relevant to Kind are meaningful. The
// consumer treats it as read-only.
type Command struct {
	// Seq is assigned by the producer, monotonically increasing. A
	// command is dispatched only when Seq differs from the last echo.
	Seq uint32 `json:"seq"`

	Kind Kind  `json:"kind"`
	Axis int32 `json:"axis"`

	Pos    coord.Pose   `json:"pos"`
	Vel    float64      `json:"vel"`
	Acc    float64      `json:"acc"`
	Offset float64      `json:"offset"`
	ID     int32        `json:"id"`
	Center coord.Vector `json:"center"`
	Normal coord.Vector `json:"normal"`
	Turn   int32        `json:"turn"`

	MinLimit  float64 `json:"min_limit"`
	MaxLimit  float64 `json:"max_limit"`
	MaxFerror float64 `json:"max_ferror"`
	MinFerror float64 `json:"min_ferror"`

	TermCond planner.TermCond `json:"term_cond"`
	Scale    float64          `json:"scale"`
	Debug    int32            `json:"debug"`

	Log    LogRequest `json:"log"`
	WdWait float64    `json:"wd_wait"`
}
