package expect

import (
	"fmt"
	"reflect"
	"strings"
)

// looseEqual compares JSON-native values: deep equality first, then
// cross-type numeric equality so int 2 matches float64 2.
func looseEqual(actual, expected any) bool {
	if reflect.DeepEqual(actual, expected) {
		return true
	}
	a, aOK := toFloat64(actual)
	b, bOK := toFloat64(expected)
	return aOK && bOK && a == b
}

func contains(actual, expected any) (bool, string) {
	switch v := actual.(type) {
	case string:
		needle := fmt.Sprintf("%v", expected)
		if strings.Contains(v, needle) {
			return true, ""
		}
		return false, fmt.Sprintf("expected %q to contain %q", v, needle)
	case []any:
		for _, item := range v {
			if looseEqual(item, expected) {
				return true, ""
			}
		}
		return false, fmt.Sprintf("expected array to contain %s", formatValue(expected))
	case map[string]any:
		key := fmt.Sprintf("%v", expected)
		if _, ok := v[key]; ok {
			return true, ""
		}
		return false, fmt.Sprintf("expected object to contain key %q", key)
	default:
		return false, fmt.Sprintf("cannot check containment on %s", formatValue(actual))
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func computeLength(v any) (int, bool) {
	switch val := v.(type) {
	case string:
		return len(val), true
	case []any:
		return len(val), true
	case map[string]any:
		return len(val), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len(), true
	}
	return 0, false
}

// formatValue renders a value for failure messages, summarizing large
// composites.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		if len(val) > 80 {
			return fmt.Sprintf("%q...", val[:80])
		}
		return fmt.Sprintf("%q", val)
	case []any:
		if len(val) > 5 {
			return fmt.Sprintf("[array with %d items]", len(val))
		}
	case map[string]any:
		if len(val) > 5 {
			return fmt.Sprintf("{object with %d keys}", len(val))
		}
	}
	return fmt.Sprintf("%v", v)
}

func joinSemicolon(parts []string) string {
	return strings.Join(parts, "; ")
}
