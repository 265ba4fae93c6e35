package domain

import (
	"fmt"
	"sort"
)

// MergeConfigs folds layers from lowest to highest priority. Mappings merge
// key by key at every depth; any other value, lists included, replaces what
// the lower layer had. Inputs are never modified and the result shares no
// mutable structure with them.
func MergeConfigs(layers []map[string]any) map[string]any {
	result := map[string]any{}
	for _, layer := range layers {
		mergeInto(result, layer)
	}
	return result
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		if existing, ok := dst[k].(map[string]any); ok {
			if incoming, ok := v.(map[string]any); ok {
				mergeInto(existing, incoming)
				continue
			}
		}
		dst[k] = cloneValue(v)
	}
}

// CloneMap returns a deep copy of m.
func CloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// NormalizeMap converts nested map[any]any values into map[string]any so
// the merge and validation code only deal with one mapping type.
func NormalizeMap(m map[string]any) map[string]any {
	for k, v := range m {
		m[k] = NormalizeValue(v)
	}
	return m
}

func NormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return NormalizeMap(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = NormalizeValue(item)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = NormalizeValue(item)
		}
		return t
	default:
		return v
	}
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TypeName describes a decoded YAML value for error messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any, map[any]any:
		return "mapping"
	case []any, []string:
		return "list"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
