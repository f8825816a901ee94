package coord

import "math"

// Vector is a Cartesian translation component.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Mag returns the Euclidean magnitude of the vector.
func (v Vector) Mag() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Scale returns the vector multiplied by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the component-wise sum of two vectors.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Pose is a 6-dof position: Cartesian translation plus three rotary
// components. This is the record exchanged with the trajectory planner
// and the kinematics collaborator.
type Pose struct {
	Tran Vector  `json:"tran"`
	A    float64 `json:"a"`
	B    float64 `json:"b"`
	C    float64 `json:"c"`
}
