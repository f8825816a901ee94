package motion

// Config holds the persistent motion tunables. It is mutated only by
// configuration commands and read by the validator and dispatcher every
// cycle. Arrays are fixed at MaxAxis; NumAxes bounds the used range.
type Config struct {
	NumAxes int `json:"num_axes"`

	MinLimit [MaxAxis]float64 `json:"min_limit"`
	MaxLimit [MaxAxis]float64 `json:"max_limit"`

	// LimitVel is the machine-wide velocity ceiling; AxisLimitVel the
	// per-axis free-motion ceiling.
	LimitVel     float64          `json:"limit_vel"`
	AxisLimitVel [MaxAxis]float64 `json:"axis_limit_vel"`

	MaxFerror [MaxAxis]float64 `json:"max_ferror"`
	MinFerror [MaxAxis]float64 `json:"min_ferror"`

	// HomingVel is signed: the sign selects the homing traversal
	// direction, the magnitude the speed.
	HomingVel  [MaxAxis]float64 `json:"homing_vel"`
	HomeOffset [MaxAxis]float64 `json:"home_offset"`

	Debug int32 `json:"debug"`

	// Generation is bumped on every configuration change so external
	// observers can detect staleness.
	Generation uint64 `json:"generation"`
}

// AxisRange returns the configured travel span of an axis.
func (c *Config) AxisRange(axis int) float64 {
	return c.MaxLimit[axis] - c.MinLimit[axis]
}

// changed marks a configuration mutation.
func (c *Config) changed() {
	c.Generation++
}

// DefaultConfig returns a config with wide-open limits so an unconfigured
// controller does not reject everything.
func DefaultConfig() *Config {
	c := &Config{
		NumAxes:  MaxAxis,
		LimitVel: 1.0,
	}
	for i := 0; i < MaxAxis; i++ {
		c.MinLimit[i] = -1e99
		c.MaxLimit[i] = 1e99
		c.AxisLimitVel[i] = 1.0
		c.MaxFerror[i] = 1.0
	}
	return c
}
