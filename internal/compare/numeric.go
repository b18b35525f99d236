package compare

import (
	"fmt"
	"math"

	"github.com/AndreyAkinshin/westcheck/internal/artifact"
)

// absDiff returns |a - b|, treating identical values (including equal
// infinities) as zero distance. NaN on either side yields NaN.
func absDiff(a, b float64) float64 {
	if a == b {
		return 0
	}
	return math.Abs(a - b)
}

// checkShape returns an error when a and b cannot be compared elementwise.
func checkShape(a, b []float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("shape mismatch: candidate has %d elements, reference has %d", len(a), len(b))
	}
	return nil
}

// MaxAbsDiff returns the largest elementwise |a[i] - b[i]|, or NaN if any
// difference is NaN. Empty input yields 0. a and b must have equal length.
func MaxAbsDiff(a, b []float64) float64 {
	m := 0.0
	for i := range a {
		d := absDiff(a[i], b[i])
		if math.IsNaN(d) {
			return math.NaN()
		}
		if d > m {
			m = d
		}
	}
	return m
}

// AllClose reports whether |a[i] - b[i]| <= atol for every i, with zero
// relative tolerance. NaN is never close to anything.
func AllClose(a, b []float64, atol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !(absDiff(a[i], b[i]) <= atol) {
			return false
		}
	}
	return true
}

// Magnitudes returns |z| for every element, discarding the phase.
func Magnitudes(z []complex128) []float64 {
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = math.Hypot(real(v), imag(v))
	}
	return out
}

// fieldMagnitudes returns the element magnitudes of a single-particle
// field. Real fields are compared by absolute value as well.
func fieldMagnitudes(f artifact.Field) []float64 {
	if f.IsComplex() {
		return Magnitudes(f.Complex)
	}
	out := make([]float64, len(f.Real))
	for i, x := range f.Real {
		out[i] = math.Abs(x)
	}
	return out
}

// maxOf combines two maxima, propagating NaN.
func maxOf(a, b float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.NaN()
	}
	return math.Max(a, b)
}

// validTolerance rejects negative and NaN tolerances.
func validTolerance(tol float64) bool {
	return tol >= 0
}
