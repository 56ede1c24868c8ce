// Package spatial implements the rotation math used by real-time 3D code:
// a Quaternion type with the full algebra (Hamilton product, axis-angle and
// Euler construction, matrix extraction, lerp/slerp), plus the small Vector
// and Matrix3 collaborators it converts to and from.
//
// The math types are plain values. Operations take their operands by value
// and return new values, so q = a.Mult(b) and q = q.Mult(q) are both fine -
// there is no shared scratch storage and nothing to synchronize across
// goroutines.
package spatial

// Cloneable describes anything that can return a deep copy of itself.
type Cloneable[T any] interface {
	Clone() T
}

// CloneSlice clones each element of a slice of Cloneables into a new slice.
func CloneSlice[T Cloneable[T]](slice []T) []T {
	out := make([]T, len(slice))
	for i, v := range slice {
		out[i] = v.Clone()
	}
	return out
}
