package normalize

import "strings"

// SplitFullName splits a combined full name heuristically: first token becomes
// the first name, the remainder the last name. Single-token names land in the
// first name.
func SplitFullName(full string) (first, last string) {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "", ""
	}
	if len(fields) == 1 {
		return fields[0], ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
