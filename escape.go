package mandel

import "math/cmplx"

// DefaultMaxIterations caps the escape-time search when no other cap is configured.
const DefaultMaxIterations = 100

// escapeRadius is the modulus an orbit has to exceed to count as escaped.
const escapeRadius = 2.0

// EscapeTime iterates z = z²+c from z = 0 and returns the number of completed
// iterations once |z| exceeds 2 or maxIter iterations have run.
// A point that never escapes returns maxIter.
func EscapeTime(c complex128, maxIter int) int {
	var z complex128
	n := 0
	for cmplx.Abs(z) <= escapeRadius && n < maxIter {
		z = z*z + c
		n++
	}
	return n
}

// Intensity converts an escape count into a gray level.
// maxIter maps to 0 (black), and fast escapes approach 255 (white).
func Intensity(n, maxIter int) uint8 {
	return uint8(255 - n*255/maxIter)
}
