package util

import "strconv"

// ParseSnowflake converts a Discord id string to its numeric form,
// returning 0 for anything unparsable (empty ids, webhook pseudo-users).
func ParseSnowflake(s string) uint64 {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatSnowflake converts a numeric Discord id back to its wire form.
func FormatSnowflake(n uint64) string {
	return strconv.FormatUint(n, 10)
}
