package spatial

import (
	"math"
	"strconv"

	"github.com/bozai/spatial/scalar"
)

// VecX is a unit vector pointing in the global X direction.
var VecX = NewVector(1, 0, 0)

// VecY is a unit vector pointing in the global Y direction.
var VecY = NewVector(0, 1, 0)

// VecZ is a unit vector pointing in the global Z direction.
var VecZ = NewVector(0, 0, 1)

// Vector represents a 3D vector for the usual 3D purposes (position, direction,
// rotation axis). Vector is a plain value type; any function that modifies the
// calling Vector returns a modified copy, so method-chaining works naturally.
type Vector struct {
	X, Y, Z float64
}

// NewVector creates a new Vector with the specified x, y, and z components.
func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// NewVectorZero creates a new "zero-ed out" Vector, with the values of 0, 0, and 0.
func NewVectorZero() Vector {
	return Vector{}
}

// Clone returns a copy of the Vector.
func (vec Vector) Clone() Vector {
	return vec
}

// Add returns a copy of the calling Vector, added together with the other Vector provided.
func (vec Vector) Add(other Vector) Vector {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Sub returns a copy of the calling Vector, with the other Vector subtracted from it.
func (vec Vector) Sub(other Vector) Vector {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Scale returns a copy of the calling Vector with all components multiplied by the value provided.
func (vec Vector) Scale(factor float64) Vector {
	vec.X *= factor
	vec.Y *= factor
	vec.Z *= factor
	return vec
}

// Invert returns a copy of the Vector with all components negated.
func (vec Vector) Invert() Vector {
	vec.X = -vec.X
	vec.Y = -vec.Y
	vec.Z = -vec.Z
	return vec
}

// Dot returns the dot product of the calling Vector and the other Vector provided.
func (vec Vector) Dot(other Vector) float64 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// Cross returns a new Vector, indicating the cross product of the calling Vector and
// the other Vector provided.
func (vec Vector) Cross(other Vector) Vector {

	ogY := vec.Y
	ogZ := vec.Z

	vec.Z = vec.X*other.Y - other.X*vec.Y
	vec.Y = ogZ*other.X - other.Z*vec.X
	vec.X = ogY*other.Z - other.Y*ogZ

	return vec

}

// Magnitude returns the length of the Vector.
func (vec Vector) Magnitude() float64 {
	return math.Sqrt(vec.Dot(vec))
}

// MagnitudeSquared returns the squared length of the Vector; this is faster than
// Magnitude() as it avoids using math.Sqrt().
func (vec Vector) MagnitudeSquared() float64 {
	return vec.Dot(vec)
}

// Unit returns a copy of the Vector, normalized (set to be of unit length). If the
// Vector's length is within the near-zero tolerance, it is returned unchanged.
func (vec Vector) Unit() Vector {
	l := vec.Magnitude()
	if l <= scalar.ZeroTolerance {
		return vec
	}
	return vec.Scale(1 / l)
}

// Rotated returns a copy of the Vector, rotated by the Quaternion provided (which
// should be of unit length). This is the sandwich product q v q* computed through
// two cross products rather than two full quaternion multiplications.
func (vec Vector) Rotated(quat Quaternion) Vector {
	qv := Vector{quat.X, quat.Y, quat.Z}
	t := qv.Cross(vec).Add(vec.Scale(quat.W))
	return vec.Add(qv.Cross(t).Scale(2))
}

// Equals returns true if the two Vectors are approximately equal in all components.
func (vec Vector) Equals(other Vector) bool {
	return scalar.Equals(vec.X, other.X) &&
		scalar.Equals(vec.Y, other.Y) &&
		scalar.Equals(vec.Z, other.Z)
}

// IsZero returns true if all of the Vector's components are within the near-zero tolerance of 0.
func (vec Vector) IsZero() bool {
	return scalar.IsZero(vec.X) && scalar.IsZero(vec.Y) && scalar.IsZero(vec.Z)
}

// ToArray writes the Vector's components into the buffer provided, starting at the
// given offset, in x, y, z order. The buffer must have room for three elements past
// the offset; no length check is done here.
func (vec Vector) ToArray(array []float64, offset int) {
	array[offset] = vec.X
	array[offset+1] = vec.Y
	array[offset+2] = vec.Z
}

// FromArray sets the Vector's components from the buffer provided, starting at the
// given offset, in x, y, z order.
func (vec *Vector) FromArray(array []float64, offset int) {
	vec.X = array[offset]
	vec.Y = array[offset+1]
	vec.Z = array[offset+2]
}

// String returns a string representation of the Vector.
func (vec Vector) String() string {
	return "{" +
		strconv.FormatFloat(vec.X, 'f', -1, 64) + ", " +
		strconv.FormatFloat(vec.Y, 'f', -1, 64) + ", " +
		strconv.FormatFloat(vec.Z, 'f', -1, 64) + "}"
}
