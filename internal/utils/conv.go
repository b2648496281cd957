package utils

import (
	"strconv"
)

// StringToUint parses a decimal id, returns 0 when s is not a positive integer
func StringToUint(s string) uint {
	i, err := strconv.Atoi(s)
	if err != nil || i <= 0 {
		return 0
	}
	return uint(i)
}
