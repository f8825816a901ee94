package kinematics

import (
	"fmt"

	"github.com/d2inventory/motioncore/internal/coord"
)

// Type describes which directions a kinematics implementation can solve.
type Type int

const (
	// Identity means joint space and Cartesian space coincide.
	Identity Type = iota
	// Both means forward and inverse solutions exist.
	Both
	// ForwardOnly means only joint -> Cartesian is solvable.
	ForwardOnly
	// InverseOnly means only Cartesian -> joint is solvable. Machines of
	// this type cannot recompute Cartesian position from joints, which
	// drives the clear-homed-on-move rule in the dispatcher.
	InverseOnly
)

func (t Type) String() string {
	switch t {
	case Identity:
		return "identity"
	case Both:
		return "both"
	case ForwardOnly:
		return "forward_only"
	case InverseOnly:
		return "inverse_only"
	default:
		return "unknown"
	}
}

// Kinematics converts between Cartesian poses and per-joint positions.
// Joint slices are sized by the caller; implementations must not retain
// or resize them.
type Kinematics interface {
	// Forward fills pose from the joint positions.
	Forward(joints []float64, pose *coord.Pose) error

	// Inverse fills joints from the pose. Joints beyond the pose's six
	// degrees of freedom are left untouched.
	Inverse(pose coord.Pose, joints []float64) error

	// Type reports the solvable directions.
	Type() Type
}

// Trivial is the identity mapping: joints 0..5 are X, Y, Z, A, B, C.
type Trivial struct{}

func (Trivial) Forward(joints []float64, pose *coord.Pose) error {
	if len(joints) < 6 {
		return fmt.Errorf("identity kinematics: need 6 joints, have %d", len(joints))
	}
	pose.Tran.X = joints[0]
	pose.Tran.Y = joints[1]
	pose.Tran.Z = joints[2]
	pose.A = joints[3]
	pose.B = joints[4]
	pose.C = joints[5]
	return nil
}

func (Trivial) Inverse(pose coord.Pose, joints []float64) error {
	if len(joints) < 6 {
		return fmt.Errorf("identity kinematics: need 6 joints, have %d", len(joints))
	}
	joints[0] = pose.Tran.X
	joints[1] = pose.Tran.Y
	joints[2] = pose.Tran.Z
	joints[3] = pose.A
	joints[4] = pose.B
	joints[5] = pose.C
	return nil
}

func (Trivial) Type() Type {
	return Identity
}
