package motion

// LogType selects what the ring-buffer logger records each cycle.
// Capture itself runs outside this core; the dispatcher only configures
// it and evaluates trigger baselines.
type LogType int32

const (
	LogTypeNone LogType = iota
	LogTypeAxisPos
	LogTypeAllInpos
	LogTypeAllOutpos
	LogTypeCmd
	LogTypeAxisVel
	LogTypeAllFerror
	LogTypePosVoltage
)

// perAxisLogType reports whether the log type records a single axis and
// therefore needs a valid axis index at open time.
func (t LogType) perAxisLogType() bool {
	switch t {
	case LogTypeAxisPos, LogTypeAxisVel, LogTypePosVoltage:
		return true
	default:
		return false
	}
}

// TriggerType selects how a started log begins capturing.
type TriggerType int32

const (
	// TriggerManual starts capturing immediately on StartLog.
	TriggerManual TriggerType = iota
	// TriggerDelta starts capturing when the trigger variable moves by
	// more than the threshold from the baseline taken at open time.
	TriggerDelta
	// TriggerOver starts when the variable exceeds the threshold.
	TriggerOver
	// TriggerUnder starts when the variable drops below the threshold.
	TriggerUnder
)

// TriggerVar selects the observed variable for non-manual triggers.
type TriggerVar int32

const (
	TriggerOnFerror TriggerVar = iota
	TriggerOnVolt
	TriggerOnPos
	TriggerOnVel
)

// LogStatus mirrors the logger configuration into Status for external
// observation.
type LogStatus struct {
	Open    bool    `json:"open"`
	Started bool    `json:"started"`
	Size    int32   `json:"size"`
	Skip    int32   `json:"skip"`
	Type    LogType `json:"type"`

	TriggerType      TriggerType `json:"trigger_type"`
	TriggerVariable  TriggerVar  `json:"trigger_variable"`
	TriggerThreshold float64     `json:"trigger_threshold"`

	// StartVal is the delta-trigger baseline captured at open time.
	StartVal float64 `json:"start_val"`
	Points   int     `json:"points"`
}

// CommandLogRecord is appended per dispatched command while a
// command-type log is active.
type CommandLogRecord struct {
	Time float64 `json:"time"`
	Kind Kind    `json:"kind"`
	Seq  uint32  `json:"seq"`
}

// commandLogCap bounds the in-core command log ring.
const commandLogCap = 256
