package spatial

import (
	"strconv"
	"strings"

	"github.com/bozai/spatial/scalar"
)

// Matrix3 represents a 3x3 rotation matrix as a flat array of 9 values in
// row-major order: [m11 m12 m13 m21 m22 m23 m31 m32 m33]. Vectors transform
// as rows (v' = v * M), matching the quaternion sandwich product in
// Vector.Rotated for matrices built with NewMatrix3FromQuaternion.
type Matrix3 [9]float64

// NewMatrix3 returns a new identity Matrix3.
func NewMatrix3() Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// NewMatrix3FromQuaternion returns the rotation matrix equivalent to the Quaternion
// provided (which should be of unit length). It is the inverse of
// NewQuaternionFromMatrix3: building a matrix from a quaternion and extracting it
// again returns the same rotation (possibly with all four components negated).
func NewMatrix3FromQuaternion(quat Quaternion) Matrix3 {

	x, y, z, w := quat.X, quat.Y, quat.Z, quat.W

	xx, yy, zz := x*x, y*y, z*z
	xy, yz, zx := x*y, y*z, z*x
	xw, yw, zw := x*w, y*w, z*w

	return Matrix3{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (zx - yw),
		2 * (xy - zw), 1 - 2*(zz+xx), 2 * (yz + xw),
		2 * (zx + yw), 2 * (yz - xw), 1 - 2*(yy+xx),
	}

}

// Clone returns a copy of the Matrix3.
func (matrix Matrix3) Clone() Matrix3 {
	return matrix
}

// At returns the matrix entry at the given row and column (both 0-based).
func (matrix Matrix3) At(row, column int) float64 {
	return matrix[row*3+column]
}

// Transposed returns a copy of the Matrix3 with rows and columns swapped. For a pure
// rotation matrix, the transpose is the inverse rotation.
func (matrix Matrix3) Transposed() Matrix3 {
	matrix[1], matrix[3] = matrix[3], matrix[1]
	matrix[2], matrix[6] = matrix[6], matrix[2]
	matrix[5], matrix[7] = matrix[7], matrix[5]
	return matrix
}

// Mult returns the result of multiplying the calling Matrix3 by the other Matrix3.
func (matrix Matrix3) Mult(other Matrix3) Matrix3 {
	out := Matrix3{}
	for row := 0; row < 3; row++ {
		for column := 0; column < 3; column++ {
			out[row*3+column] = matrix[row*3]*other[column] +
				matrix[row*3+1]*other[3+column] +
				matrix[row*3+2]*other[6+column]
		}
	}
	return out
}

// MultVec transforms the Vector provided by the Matrix3, treating it as a row
// vector (v' = v * M).
func (matrix Matrix3) MultVec(vec Vector) Vector {
	return Vector{
		X: vec.X*matrix[0] + vec.Y*matrix[3] + vec.Z*matrix[6],
		Y: vec.X*matrix[1] + vec.Y*matrix[4] + vec.Z*matrix[7],
		Z: vec.X*matrix[2] + vec.Y*matrix[5] + vec.Z*matrix[8],
	}
}

// Equals returns true if the two Matrix3s are approximately equal in all entries.
func (matrix Matrix3) Equals(other Matrix3) bool {
	for i := range matrix {
		if !scalar.Equals(matrix[i], other[i]) {
			return false
		}
	}
	return true
}

// String returns a string representation of the Matrix3, one row per line.
func (matrix Matrix3) String() string {
	builder := &strings.Builder{}
	for row := 0; row < 3; row++ {
		builder.WriteString("{")
		for column := 0; column < 3; column++ {
			builder.WriteString(strconv.FormatFloat(matrix.At(row, column), 'f', -1, 64))
			if column < 2 {
				builder.WriteString(", ")
			}
		}
		builder.WriteString("}\n")
	}
	return builder.String()
}
