package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToString converts loosely typed request values to a trimmed string.
// nil becomes the empty string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []byte:
		return strings.TrimSpace(string(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts loosely typed request values to bool.
// Numbers are true when non-zero. Strings accept the strconv.ParseBool
// forms plus "yes" and "on"; anything else is false.
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case int32:
		return v != 0
	case uint:
		return v != 0
	case uint64:
		return v != 0
	case float64:
		return v != 0
	case float32:
		return v != 0
	case string:
		return parseBool(v)
	case []byte:
		return parseBool(string(v))
	default:
		return false
	}
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "yes", "on":
		return true
	}
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
