package motion

import "github.com/d2inventory/motioncore/internal/coord"

// Status is owned exclusively by the consumer; the producer only reads
// it. Head and Tail bracket every mutation: the producer must observe
// Tail == Head before trusting the echo fields or reusing the command
// slot.
type Status struct {
	Head uint32 `json:"head"`
	Tail uint32 `json:"tail"`

	KindEcho Kind       `json:"kind_echo"`
	SeqEcho  uint32     `json:"seq_echo"`
	Result   ResultCode `json:"result"`

	Mode           Mode `json:"mode"`
	Enabled        bool `json:"enabled"`
	Paused         bool `json:"paused"`
	InPosition     bool `json:"in_position"`
	MotionError    bool `json:"motion_error"`
	Probing        bool `json:"probing"`
	ProbeTripped   bool `json:"probe_tripped"`
	OverrideLimits bool `json:"override_limits"`

	Vel float64 `json:"vel"`
	Acc float64 `json:"acc"`

	// ID is the coordinated queue's current motion id.
	ID int32 `json:"id"`

	// QVscale is the coordinated queue's velocity override; AxVscale the
	// per-axis overrides.
	QVscale  float64          `json:"q_vscale"`
	AxVscale [MaxAxis]float64 `json:"ax_vscale"`

	Log LogStatus `json:"log"`
}

// StatusSnapshot is the externally observable state published to the
// supervisor API: the Status echo plus mirrored axis state.
type StatusSnapshot struct {
	Status   Status     `json:"status"`
	Axes     []Axis     `json:"axes"`
	Mode     string     `json:"mode"`
	AllHomed bool       `json:"all_homed"`
	FreePose coord.Pose `json:"free_pose"`

	// Channel liveness counters for debug observers.
	SplitReads uint64 `json:"split_reads"`
	HeadCount  uint64 `json:"head_count"`
	TailCount  uint64 `json:"tail_count"`
}
