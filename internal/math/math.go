package math

import (
	"math"
	"strconv"
)

// Format formats a float with 4 digits precision, used mainly for log output.
func Format(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// Series creates a series of equally spaced values, starting at min.
func Series(min, step float64, limit int) []float64 {
	xx := make([]float64, limit)
	for i := 0; i < limit; i++ {
		xx[i] = min + step*float64(i)
	}
	return xx
}

// IsValid checks if the given number is well defined e.g. neither NaN nor Inf.
func IsValid(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
