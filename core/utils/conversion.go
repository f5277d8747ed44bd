package utils

import (
	"fmt"
	"math"
	"path"
	"strconv"
	"strings"
	"time"
)

// ToInt64 converts various types to int64.
// Values that cannot be interpreted as a number convert to zero.
func ToInt64(val any) int64 {
	switch v := val.(type) {
	case nil:
		return 0
	case int:
		return int64(v)
	case int64:
		return v
	case int32:
		return int64(v)
	case int16:
		return int64(v)
	case int8:
		return int64(v)
	case uint:
		return int64(v)
	case uint64:
		return int64(v)
	case uint32:
		return int64(v)
	case uint16:
		return int64(v)
	case uint8:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case time.Time:
		return v.Unix()
	case string:
		i, _ := ParseInt64(v)
		return i
	case []byte:
		i, _ := ParseInt64(string(v))
		return i
	default:
		i, _ := ParseInt64(fmt.Sprintf("%v", v))
		return i
	}
}

// ParseInt64 parses a decimal string, tolerating surrounding spaces and a
// trailing ".0" fraction. The boolean reports whether the value was numeric.
func ParseInt64(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

// Basename returns the last path segment of a URL or path, without any query
// string or fragment. It returns "" for empty input.
func Basename(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	ref = strings.TrimRight(ref, "/")
	if ref == "" {
		return ""
	}
	return path.Base(ref)
}
