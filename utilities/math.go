package utilities

import "math"

// Pow10 converts a log10 value back to linear space.
func Pow10(logValue float64) float64 {
	return math.Pow(10, logValue)
}

// ApproxEqual reports whether a and b differ by no more than tolerance.
func ApproxEqual(a, b, tolerance float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= tolerance
}

// RuneOffset converts a byte offset in s into a rune offset.
// Offsets past the end of s are clamped.
func RuneOffset(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(s) {
		byteOffset = len(s)
	}
	n := 0
	for range s[:byteOffset] {
		n++
	}
	return n
}
