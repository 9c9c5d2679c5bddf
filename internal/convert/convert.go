// Package convert turns raw fixture values (CSV strings, JSON numbers, YAML
// scalars) into Go scalars on request. Nothing is converted implicitly.
package convert

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ToInt64 converts integers, integral floats and numeric strings.
func ToInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint, uint8, uint16, uint32, uint64:
		u := reflect.ValueOf(v).Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", u)
		}
		return int64(u), nil
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, fmt.Errorf("cannot convert empty string to an integer")
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert '%s' to an integer", v)
		}
		return floatToInt64(f)
	default:
		return 0, fmt.Errorf("cannot convert %T to an integer", value)
	}
}

func floatToInt64(f float64) (int64, error) {
	if f != math.Trunc(f) || f < math.MinInt64 || f > math.MaxInt64 {
		return 0, fmt.Errorf("value %v is not an integer", f)
	}
	return int64(f), nil
}

// ToFloat64 converts any numeric type or numeric string.
func ToFloat64(value interface{}) (float64, error) {
	switch v := value.(type) {
	case int, int8, int16, int32, int64:
		return float64(reflect.ValueOf(v).Int()), nil
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(v).Uint()), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		f, err := strconv.ParseFloat(s, 64)
		if s == "" || err != nil {
			return 0, fmt.Errorf("cannot convert '%s' to a number", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to a number", value)
	}
}

// ToBool accepts booleans, numbers (non-zero is true) and the usual
// spellings: true/false, yes/no, t/f, y/n, 1/0.
func ToBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes", "t", "y":
			return true, nil
		case "false", "0", "no", "f", "n", "":
			return false, nil
		}
		return false, fmt.Errorf("cannot convert '%s' to a boolean", v)
	}
	if f, err := ToFloat64(value); err == nil {
		return f != 0, nil
	}
	return false, fmt.Errorf("cannot convert %T to a boolean", value)
}

// ToString renders value with %v; nil becomes "" and []byte is taken as text.
func ToString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// IsScalar reports whether value renders meaningfully as a short identifier.
func IsScalar(value interface{}) bool {
	switch value.(type) {
	case nil, bool, string, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}
