package spatial

import (
	"math"
	"strconv"

	"github.com/bozai/spatial/scalar"
)

// Quaternion represents the rotation w + xi + yj + zk. For use as a 3D
// rotation the quaternion should be of unit length; that invariant is not
// enforced automatically - only Unit() restores it.
// Like Vector, Quaternion is a plain value type: methods return modified
// copies of the calling Quaternion, so they can be chained easily.
type Quaternion struct {
	X, Y, Z, W float64
}

// NewQuaternion creates a new Quaternion with the specified x, y, z, and w components.
func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{x, y, z, w}
}

// NewQuaternionIdentity returns the identity Quaternion (0, 0, 0, 1), representing "no rotation".
func NewQuaternionIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1}
}

// NewQuaternionFromAxisAngle returns a Quaternion rotating by the given angle (in radians)
// around the given axis. The axis does not need to be of unit length; it is normalized first.
func NewQuaternionFromAxisAngle(axis Vector, angle float64) Quaternion {
	axis = axis.Unit()
	s, c := math.Sincos(angle * 0.5)
	return Quaternion{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: c,
	}
}

// NewQuaternionRotationX returns a Quaternion rotating by the given angle (in radians) around the X axis.
func NewQuaternionRotationX(angle float64) Quaternion {
	s, c := math.Sincos(angle * 0.5)
	return Quaternion{X: s, W: c}
}

// NewQuaternionRotationY returns a Quaternion rotating by the given angle (in radians) around the Y axis.
func NewQuaternionRotationY(angle float64) Quaternion {
	s, c := math.Sincos(angle * 0.5)
	return Quaternion{Y: s, W: c}
}

// NewQuaternionRotationZ returns a Quaternion rotating by the given angle (in radians) around the Z axis.
func NewQuaternionRotationZ(angle float64) Quaternion {
	s, c := math.Sincos(angle * 0.5)
	return Quaternion{Z: s, W: c}
}

// NewQuaternionFromYawPitchRoll returns a Quaternion composed of a yaw around the Y axis,
// then a pitch around the X axis, then a roll around the Z axis (all in radians).
func NewQuaternionFromYawPitchRoll(yaw, pitch, roll float64) Quaternion {

	sr, cr := math.Sincos(roll * 0.5)
	sp, cp := math.Sincos(pitch * 0.5)
	sy, cy := math.Sincos(yaw * 0.5)

	return Quaternion{
		X: cy*sp*cr + sy*cp*sr,
		Y: sy*cp*cr - cy*sp*sr,
		Z: cy*cp*sr - sy*sp*cr,
		W: cy*cp*cr + sy*sp*sr,
	}

}

// NewQuaternionFromEuler returns a Quaternion rotating by the given Euler angles in
// radians; x is the pitch, y the yaw, and z the roll of the rotation.
func NewQuaternionFromEuler(x, y, z float64) Quaternion {
	return NewQuaternionFromYawPitchRoll(y, x, z)
}

// NewQuaternionFromMatrix3 extracts the rotation from a 3x3 rotation matrix using
// Shepperd's method: the branch is chosen by the largest diagonal term, which keeps
// the divisor well away from zero. The branch order (trace first, then m11 with >=
// comparisons, then m22 with >, then m33 as the default) decides which branch fires
// on exact ties; don't reorder it.
func NewQuaternionFromMatrix3(m Matrix3) Quaternion {

	m11, m12, m13 := m[0], m[1], m[2]
	m21, m22, m23 := m[3], m[4], m[5]
	m31, m32, m33 := m[6], m[7], m[8]

	trace := m11 + m22 + m33

	if trace > 0 {
		s := math.Sqrt(trace + 1)
		w := s * 0.5
		s = 0.5 / s
		return Quaternion{
			X: (m23 - m32) * s,
			Y: (m31 - m13) * s,
			Z: (m12 - m21) * s,
			W: w,
		}
	}

	if m11 >= m22 && m11 >= m33 {
		s := math.Sqrt(1 + m11 - m22 - m33)
		half := 0.5 / s
		return Quaternion{
			X: 0.5 * s,
			Y: (m12 + m21) * half,
			Z: (m13 + m31) * half,
			W: (m23 - m32) * half,
		}
	}

	if m22 > m33 {
		s := math.Sqrt(1 + m22 - m11 - m33)
		half := 0.5 / s
		return Quaternion{
			X: (m21 + m12) * half,
			Y: 0.5 * s,
			Z: (m32 + m23) * half,
			W: (m31 - m13) * half,
		}
	}

	s := math.Sqrt(1 + m33 - m11 - m22)
	half := 0.5 / s
	return Quaternion{
		X: (m13 + m31) * half,
		Y: (m23 + m32) * half,
		Z: 0.5 * s,
		W: (m12 - m21) * half,
	}

}

// Clone returns a copy of the Quaternion.
func (quat Quaternion) Clone() Quaternion {
	return quat
}

// Set sets the Quaternion's components to those of the other Quaternion provided.
func (quat *Quaternion) Set(other Quaternion) {
	*quat = other
}

// Add returns a copy of the Quaternion with the other Quaternion added to it, component-wise.
func (quat Quaternion) Add(other Quaternion) Quaternion {
	quat.X += other.X
	quat.Y += other.Y
	quat.Z += other.Z
	quat.W += other.W
	return quat
}

// Mult returns the Hamilton product of the two Quaternions, with the calling
// Quaternion as the left operand. Multiplication composes rotations and is
// associative, but not commutative: a.Mult(b) applies b's rotation, then a's.
func (quat Quaternion) Mult(other Quaternion) Quaternion {
	ax, ay, az, aw := quat.X, quat.Y, quat.Z, quat.W
	bx, by, bz, bw := other.X, other.Y, other.Z, other.W
	return Quaternion{
		X: ax*bw + aw*bx + ay*bz - az*by,
		Y: ay*bw + aw*by + az*bx - ax*bz,
		Z: az*bw + aw*bz + ax*by - ay*bx,
		W: aw*bw - ax*bx - ay*by - az*bz,
	}
}

// Conjugate returns a copy of the Quaternion with the vector part negated. For a unit
// Quaternion, the conjugate is the inverse rotation.
func (quat Quaternion) Conjugate() Quaternion {
	quat.X = -quat.X
	quat.Y = -quat.Y
	quat.Z = -quat.Z
	return quat
}

// Dot returns the 4D dot product between the two Quaternions.
func (quat Quaternion) Dot(other Quaternion) float64 {
	return quat.X*other.X + quat.Y*other.Y + quat.Z*other.Z + quat.W*other.W
}

// Scale returns a copy of the Quaternion with all components multiplied by the value provided.
func (quat Quaternion) Scale(factor float64) Quaternion {
	quat.X *= factor
	quat.Y *= factor
	quat.Z *= factor
	quat.W *= factor
	return quat
}

// Magnitude returns the length of the Quaternion.
func (quat Quaternion) Magnitude() float64 {
	return math.Sqrt(quat.Dot(quat))
}

// MagnitudeSquared returns the squared length of the Quaternion; this is faster than
// Magnitude() as it avoids using math.Sqrt().
func (quat Quaternion) MagnitudeSquared() float64 {
	return quat.Dot(quat)
}

// Unit returns a copy of the Quaternion, normalized to unit length. If the Quaternion's
// length is within the near-zero tolerance, it is returned unchanged - callers that can
// feed in degenerate quaternions and need unit output have to check the length first.
func (quat Quaternion) Unit() Quaternion {
	l := quat.Magnitude()
	if l <= scalar.ZeroTolerance {
		return quat
	}
	return quat.Scale(1 / l)
}

// Invert returns the inverse of the Quaternion (the rotation that undoes the calling
// one; the conjugate divided by the squared length). If the squared length is within
// the near-zero tolerance the Quaternion is returned unchanged, as a zero quaternion
// has no inverse; this keeps the hot path free of error returns.
func (quat Quaternion) Invert() Quaternion {
	d := quat.Dot(quat)
	if d <= scalar.ZeroTolerance {
		return quat
	}
	return quat.Conjugate().Scale(1 / d)
}

// Lerp linearly interpolates between the calling Quaternion and end by t (0-1),
// negating end's contribution if the two Quaternions lie in opposite hemispheres
// so the blend takes the shorter path. The result is normalized.
func (quat Quaternion) Lerp(end Quaternion, t float64) Quaternion {

	inv := 1 - t
	if quat.Dot(end) < 0 {
		t = -t
	}

	return Quaternion{
		X: inv*quat.X + t*end.X,
		Y: inv*quat.Y + t*end.Y,
		Z: inv*quat.Z + t*end.Z,
		W: inv*quat.W + t*end.W,
	}.Unit()

}

// Slerp spherically interpolates between the calling Quaternion and end by t (0-1),
// tracing the shorter great-circle arc (end's sign is flipped if the two Quaternions
// lie in opposite hemispheres). When the two are nearly parallel the spherical weights
// would divide by a vanishing sin, so plain linear weights are used instead. The
// result is not renormalized; for unit inputs it is already of unit length to within
// floating-point error.
func (quat Quaternion) Slerp(end Quaternion, t float64) Quaternion {

	cosom := quat.Dot(end)

	flip := false
	if cosom < 0 {
		flip = true
		cosom = -cosom
	}

	var scale0, scale1 float64

	if 1-cosom > scalar.ZeroTolerance {
		omega := math.Acos(cosom)
		sinom := math.Sin(omega)
		scale0 = math.Sin((1-t)*omega) / sinom
		scale1 = math.Sin(t*omega) / sinom
	} else {
		scale0 = 1 - t
		scale1 = t
	}

	if flip {
		scale1 = -scale1
	}

	return Quaternion{
		X: scale0*quat.X + scale1*end.X,
		Y: scale0*quat.Y + scale1*end.Y,
		Z: scale0*quat.Z + scale1*end.Z,
		W: scale0*quat.W + scale1*end.W,
	}

}

// RotatedX returns a copy of the Quaternion, rotated around the X axis by the angle
// given in radians. This is quat.Mult(NewQuaternionRotationX(angle)), computed inline
// without the intermediate Quaternion.
func (quat Quaternion) RotatedX(angle float64) Quaternion {
	bx, bw := math.Sincos(angle * 0.5)
	x, y, z, w := quat.X, quat.Y, quat.Z, quat.W
	return Quaternion{
		X: x*bw + w*bx,
		Y: y*bw + z*bx,
		Z: z*bw - y*bx,
		W: w*bw - x*bx,
	}
}

// RotatedY returns a copy of the Quaternion, rotated around the Y axis by the angle
// given in radians.
func (quat Quaternion) RotatedY(angle float64) Quaternion {
	by, bw := math.Sincos(angle * 0.5)
	x, y, z, w := quat.X, quat.Y, quat.Z, quat.W
	return Quaternion{
		X: x*bw - z*by,
		Y: y*bw + w*by,
		Z: z*bw + x*by,
		W: w*bw - y*by,
	}
}

// RotatedZ returns a copy of the Quaternion, rotated around the Z axis by the angle
// given in radians.
func (quat Quaternion) RotatedZ(angle float64) Quaternion {
	bz, bw := math.Sincos(angle * 0.5)
	x, y, z, w := quat.X, quat.Y, quat.Z, quat.W
	return Quaternion{
		X: x*bw + y*bz,
		Y: y*bw - x*bz,
		Z: z*bw + w*bz,
		W: w*bw - z*bz,
	}
}

// AxisAngle returns the unit rotation axis and angle (in radians) the Quaternion
// represents. If the vector part is near zero (the Quaternion is close to the
// identity or a pure scalar), the rotation is degenerate and the X axis with an
// angle of 0 is returned instead.
func (quat Quaternion) AxisAngle() (Vector, float64) {

	lengthSquared := quat.X*quat.X + quat.Y*quat.Y + quat.Z*quat.Z

	if lengthSquared <= scalar.ZeroTolerance {
		return VecX, 0
	}

	inv := 1 / math.Sqrt(lengthSquared)
	axis := Vector{quat.X * inv, quat.Y * inv, quat.Z * inv}
	return axis, 2 * math.Acos(scalar.Clamp(quat.W, -1, 1))

}

// YawPitchRoll returns the yaw (around Y), pitch (around X), and roll (around Z)
// angles in radians that compose into the calling Quaternion, inverting
// NewQuaternionFromYawPitchRoll. The asin argument is clamped so floating-point
// drift on a nearly-unit Quaternion can't push it out of domain. At the gimbal-lock
// poles (pitch of ±π/2), yaw and roll rotate around the same axis and only their
// sum is recoverable; yaw is reported as 0 and the full turn is folded into roll.
func (quat Quaternion) YawPitchRoll() (yaw, pitch, roll float64) {

	xx := quat.X * quat.X
	yy := quat.Y * quat.Y
	zz := quat.Z * quat.Z
	xy := quat.X * quat.Y
	zw := quat.Z * quat.W
	zx := quat.Z * quat.X
	yw := quat.Y * quat.W
	yz := quat.Y * quat.Z
	xw := quat.X * quat.W

	pitch = math.Asin(scalar.Clamp(2*(xw-yz), -1, 1))

	if math.Cos(pitch) > scalar.ZeroTolerance {
		roll = math.Atan2(2*(xy+zw), 1-2*(zz+xx))
		yaw = math.Atan2(2*(zx+yw), 1-2*(yy+xx))
	} else {
		// Only roll-yaw (at the +pi/2 pole) or roll+yaw (at -pi/2) is
		// recoverable here, so the sign of the recovered turn follows the pole.
		if pitch > 0 {
			roll = math.Atan2(2*(zx-yw), 1-2*(yy+zz))
		} else {
			roll = math.Atan2(-2*(zx-yw), 1-2*(yy+zz))
		}
		yaw = 0
	}

	return yaw, pitch, roll

}

// Euler returns the Quaternion's rotation as Euler angles in radians, with the
// rotation around each axis in the matching component (pitch in X, yaw in Y, roll
// in Z). This is YawPitchRoll() reordered to line up with NewQuaternionFromEuler.
func (quat Quaternion) Euler() Vector {
	yaw, pitch, roll := quat.YawPitchRoll()
	return Vector{X: pitch, Y: yaw, Z: roll}
}

// Equals returns true if the two Quaternions are approximately equal in all components.
// Note that q and -q represent the same rotation but do not compare as equal.
func (quat Quaternion) Equals(other Quaternion) bool {
	return scalar.Equals(quat.X, other.X) &&
		scalar.Equals(quat.Y, other.Y) &&
		scalar.Equals(quat.Z, other.Z) &&
		scalar.Equals(quat.W, other.W)
}

// IsIdentity returns true if the Quaternion is approximately the identity rotation.
func (quat Quaternion) IsIdentity() bool {
	return quat.Equals(NewQuaternionIdentity())
}

// ToArray writes the Quaternion's components into the buffer provided, starting at
// the given offset, in x, y, z, w order. The buffer must have room for four elements
// past the offset; no length check is done here.
func (quat Quaternion) ToArray(array []float64, offset int) {
	array[offset] = quat.X
	array[offset+1] = quat.Y
	array[offset+2] = quat.Z
	array[offset+3] = quat.W
}

// FromArray sets the Quaternion's components from the buffer provided, starting at
// the given offset, in x, y, z, w order.
func (quat *Quaternion) FromArray(array []float64, offset int) {
	quat.X = array[offset]
	quat.Y = array[offset+1]
	quat.Z = array[offset+2]
	quat.W = array[offset+3]
}

// String returns a string representation of the Quaternion.
func (quat Quaternion) String() string {
	return "{" +
		strconv.FormatFloat(quat.X, 'f', -1, 64) + ", " +
		strconv.FormatFloat(quat.Y, 'f', -1, 64) + ", " +
		strconv.FormatFloat(quat.Z, 'f', -1, 64) + ", " +
		strconv.FormatFloat(quat.W, 'f', -1, 64) + "}"
}
