// Package bytefmt renders byte counts for the summary line.
package bytefmt

import (
	"math"
	"strconv"
)

var suffixes = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB", "RB", "QB"}

// unit is the scaling factor between two suffixes.
const unit = 1024

// Format renders n with the largest suffix whose value is at least one, rounded
// up to two decimals with trailing zeros dropped: 1024 is "1 KB", 1536 is
// "1.5 KB", 1025 is "1.01 KB". Zero is "0 B"; negative counts keep their sign.
func Format(n int64) string {
	if n == 0 {
		return "0 B"
	}

	sign := ""
	abs := math.Abs(float64(n))
	if n < 0 {
		sign = "-"
	}

	idx := int(math.Floor(math.Log(abs) / math.Log(unit)))
	if idx >= len(suffixes) {
		idx = len(suffixes) - 1
	}
	// Log can land just below an exact power of unit.
	for idx+1 < len(suffixes) && abs >= math.Pow(unit, float64(idx+1)) {
		idx++
	}
	for idx > 0 && abs < math.Pow(unit, float64(idx)) {
		idx--
	}

	value := ceil2(abs / math.Pow(unit, float64(idx)))
	return sign + strconv.FormatFloat(value, 'f', -1, 64) + " " + suffixes[idx]
}

// ceil2 rounds v up to two decimals. The epsilon keeps values that are
// already exact, such as 1.5, from being pushed up by float error.
func ceil2(v float64) float64 {
	return math.Ceil(v*100-1e-9) / 100
}
