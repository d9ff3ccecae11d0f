package docstore

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Fields holds the loosely typed document body. The accessors below are the
// boundary where stored values become typed values.
type Fields map[string]any

func (f Fields) String(key string) string {
	switch v := f[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the value rounded to an int, or def when missing or not numeric.
func (f Fields) Int(key string, def int) int {
	v, ok := f.Float(key)
	if !ok {
		return def
	}
	return int(math.Round(v))
}

// Float reports false when the value is missing or not a finite number.
func (f Fields) Float(key string) (float64, bool) {
	var out float64
	switch v := f[key].(type) {
	case float64:
		out = v
	case float32:
		out = float64(v)
	case int:
		out = float64(v)
	case int32:
		out = float64(v)
	case int64:
		out = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		out = parsed
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		out = parsed
	default:
		return 0, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}

// FloatPtr is nil for a missing value, used for optional macros.
func (f Fields) FloatPtr(key string) *float64 {
	v, ok := f.Float(key)
	if !ok {
		return nil
	}
	return &v
}

func (f Fields) Map(key string) map[string]any {
	if m, ok := f[key].(map[string]any); ok {
		return m
	}
	return nil
}

func (f Fields) Strings(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// clone deep copies through JSON, so stored documents never share memory with
// callers and numbers come back the same way they would from a real store.
func (f Fields) clone() (Fields, error) {
	if f == nil {
		return Fields{}, nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}
	out := Fields{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}
	return out, nil
}
