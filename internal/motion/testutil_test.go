package motion

import (
	"errors"

	"github.com/d2inventory/motioncore/internal/coord"
	"github.com/d2inventory/motioncore/internal/kinematics"
)

// inverseOnlyKin behaves like the identity mapping but reports itself
// as inverse-only, which changes the homed bookkeeping rules.
type inverseOnlyKin struct{}

func (inverseOnlyKin) Forward([]float64, *coord.Pose) error {
	return errors.New("no forward solution")
}

func (inverseOnlyKin) Inverse(pose coord.Pose, joints []float64) error {
	return kinematics.Trivial{}.Inverse(pose, joints)
}

func (inverseOnlyKin) Type() kinematics.Type {
	return kinematics.InverseOnly
}

func poseXYZ(x, y, z float64) coord.Pose {
	return coord.Pose{Tran: coord.Vector{X: x, Y: y, Z: z}}
}

func vecXYZ(x, y, z float64) coord.Vector {
	return coord.Vector{X: x, Y: y, Z: z}
}
