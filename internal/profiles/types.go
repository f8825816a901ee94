package profiles

// MachineProfile is an on-disk axis configuration for one machine.
// Profiles are authored in YAML or JSON and validated against the
// embedded schema before activation.
type MachineProfile struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Kinematics  string        `json:"kinematics,omitempty" yaml:"kinematics,omitempty"`
	VelLimit    float64       `json:"vel_limit" yaml:"vel_limit"`
	Axes        []AxisProfile `json:"axes" yaml:"axes"`
}

// AxisProfile configures one axis. Limits are in machine units, the
// homing velocity is signed (sign selects the search direction).
type AxisProfile struct {
	Name       string  `json:"name" yaml:"name"`
	MinLimit   float64 `json:"min_limit" yaml:"min_limit"`
	MaxLimit   float64 `json:"max_limit" yaml:"max_limit"`
	MaxVel     float64 `json:"max_vel" yaml:"max_vel"`
	MaxFerror  float64 `json:"max_ferror" yaml:"max_ferror"`
	MinFerror  float64 `json:"min_ferror,omitempty" yaml:"min_ferror,omitempty"`
	HomingVel  float64 `json:"homing_vel" yaml:"homing_vel"`
	HomeOffset float64 `json:"home_offset,omitempty" yaml:"home_offset,omitempty"`
}
