// Package motion is the command-processing core of the controller: it
// consumes supervisor commands from a single-producer/single-consumer
// channel once per control cycle, validates them against motion mode,
// homing and travel-limit state, and drives the trajectory planner and
// kinematics collaborators. Everything on the per-tick path is
// non-blocking and allocation-free.
package motion

const (
	// MaxAxis is the fixed per-axis array size. The configured axis
	// count may be lower but never higher.
	MaxAxis = 8

	// MaxLogSize is the largest ring-buffer log the trigger subsystem
	// will accept on OpenLog.
	MaxLogSize = 10000
)

// ResultCode is the numeric command status echoed to the producer.
// The values are a stable external contract.
type ResultCode int32

const (
	ResultOk ResultCode = iota
	ResultInvalidCommand
	ResultInvalidParams
	ResultBadExec
	ResultUnknownCommand
)

func (r ResultCode) String() string {
	switch r {
	case ResultOk:
		return "ok"
	case ResultInvalidCommand:
		return "invalid_command"
	case ResultInvalidParams:
		return "invalid_params"
	case ResultBadExec:
		return "bad_exec"
	case ResultUnknownCommand:
		return "unknown_command"
	default:
		return "unknown"
	}
}

// Mode is the machine-wide motion mode derived from the enable flag and
// the current coordinated/teleop flags.
type Mode int

const (
	ModeDisabled Mode = iota
	ModeFree
	ModeCoordinated
	ModeTeleop
)

func (m Mode) String() string {
	switch m {
	case ModeDisabled:
		return "disabled"
	case ModeFree:
		return "free"
	case ModeCoordinated:
		return "coordinated"
	case ModeTeleop:
		return "teleop"
	default:
		return "unknown"
	}
}
