package motion

// AxisFlags is the named-boolean flag set of one axis. Limit flags are
// advisory outputs of hardware and kinematics feedback; the dispatcher
// only ever clears them (override-limits, re-enable), never sets them.
type AxisFlags struct {
	Active       bool `json:"active"`
	Homed        bool `json:"homed"`
	Homing       bool `json:"homing"`
	Error        bool `json:"error"`
	MaxSoftLimit bool `json:"max_soft_limit"`
	MinSoftLimit bool `json:"min_soft_limit"`
	MaxHardLimit bool `json:"max_hard_limit"`
	MinHardLimit bool `json:"min_hard_limit"`
}

// AnyLimit reports whether any of the four travel-limit flags is set.
func (f AxisFlags) AnyLimit() bool {
	return f.MaxSoftLimit || f.MinSoftLimit || f.MaxHardLimit || f.MinHardLimit
}

// Axis is the per-axis state block. JointPos and OldJointPos are fed by
// the execution loop from the servo cycle; the dispatcher reads them
// when computing jog targets and log trigger baselines.
type Axis struct {
	Flags AxisFlags `json:"flags"`

	JointPos    float64 `json:"joint_pos"`
	OldJointPos float64 `json:"old_joint_pos"`
	RawOutput   float64 `json:"raw_output"`

	// HomingPhase is nonzero while the externally driven homing
	// sequence owns this axis.
	HomingPhase int `json:"homing_phase"`
}
