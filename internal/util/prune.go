package util

// RemoveNullValues drops every map key whose value is nil, recursing into nested
// maps and slices. Nil elements inside slices are kept.
func RemoveNullValues(data any) any {
	switch v := data.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			if value == nil {
				continue
			}
			out[key] = RemoveNullValues(value)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = RemoveNullValues(item)
		}
		return out
	default:
		return data
	}
}
