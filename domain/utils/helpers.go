package common

import (
	"strconv"
	"strings"
)

// KeyfileBool interprets a keyfile boolean. Only "true", "false", "1" and "0"
// are accepted; anything else reads as false with ok == false.
func KeyfileBool(value string) (result bool, ok bool) {
	switch strings.TrimRight(value, " \t") {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	return false, false
}

// KeyfileUint64 interprets a keyfile unsigned integer. The whole value must be
// decimal digits; anything else reads as 0 with ok == false.
func KeyfileUint64(value string) (uint64, bool) {
	v := strings.TrimSpace(value)
	if v == "" || strings.HasPrefix(v, "+") || strings.HasPrefix(v, "-") {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// StringPtr returns a pointer to a copy of value.
func StringPtr(value string) *string {
	return &value
}

// Deref returns the pointed string or "".
func Deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
