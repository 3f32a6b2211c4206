package normalize

import (
	"strconv"
	"strings"
)

// CleanNumber coerces a raw quantity cell to a non-negative integer.
// Operators enter quantities with comma decimal separators, stray
// spaces, or nothing at all; any value that does not parse yields 0.
// Floats truncate toward zero, matching the warehouse integer columns.
func CleanNumber(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	n := int(f)
	if n < 0 {
		return 0
	}
	return n
}
