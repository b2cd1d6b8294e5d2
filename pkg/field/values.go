package field

import (
	"fmt"
	"reflect"
	"strconv"
)

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case bool:
		if v {
			return "1"
		}
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// truthy mirrors how the host evaluates loosely typed flags: nil, false,
// zero numbers, "", "0" and empty collections are all false.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "0"
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// isSet reports whether key exists with a non-nil value.
func isSet(m map[string]any, key string) bool {
	value, ok := m[key]
	return ok && value != nil
}

func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []any:
		return v, true
	case string:
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case Field:
		return v, true
	case Rule:
		return v, true
	case Layout:
		return v, true
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = item
		}
		return out, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = item
		}
		return out, true
	}
	return nil, false
}

func cloneMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return cloneMap(v)
	case Field:
		return Field(cloneMap(v))
	case Rule:
		return Rule(cloneMap(v))
	case Layout:
		return Layout(cloneMap(v))
	case map[string]string:
		out := make(map[string]string, len(v))
		for key, item := range v {
			out[key] = item
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []Field:
		out := make([]Field, len(v))
		for i, item := range v {
			out[i] = item.Clone()
		}
		return out
	case []Layout:
		out := make([]Layout, len(v))
		for i, item := range v {
			out[i] = Layout(cloneMap(item))
		}
		return out
	case []Rule:
		out := make([]Rule, len(v))
		for i, item := range v {
			out[i] = Rule(cloneMap(item))
		}
		return out
	case RuleGroup:
		out := make(RuleGroup, len(v))
		for i, item := range v {
			out[i] = Rule(cloneMap(item))
		}
		return out
	case []RuleGroup:
		out := make([]RuleGroup, len(v))
		for i, item := range v {
			out[i] = cloneValue(item).(RuleGroup)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(v))
		for i, item := range v {
			out[i] = cloneMap(item)
		}
		return out
	case []string:
		return append([]string(nil), v...)
	default:
		return value
	}
}
