package docpath

import (
	"reflect"
)

// Set writes value at path inside doc, creating intermediate objects and
// arrays as needed. A nil value is a no-op, as is a malformed path or one
// that starts with an array marker (doc is an object).
//
// For a "[]" segment, a slice value is broadcast: element i of value goes
// into element i of the target array, growing it as needed. A non-slice
// value is written into element 0 only.
func Set(doc map[string]any, path string, value any) {
	if doc == nil || value == nil {
		return
	}

	p, err := Parse(path)
	if err != nil {
		return
	}

	SetPath(doc, p, value)
}

// SetPath is Set for an already parsed path.
func SetPath(doc map[string]any, p Path, value any) {
	if doc == nil || value == nil || len(p.Segments) == 0 || p.Segments[0].Name == "" {
		return
	}

	setSegments(doc, p.Segments, value)
}

// setSegments returns the updated value for the position cur occupies.
func setSegments(cur any, segs []Segment, value any) any {
	if len(segs) == 0 {
		return value
	}

	seg, rest := segs[0], segs[1:]

	if seg.Name == "" {
		return setMarked(cur, seg, rest, value)
	}

	// numeric names index into an existing array, as property does on read
	if arr, ok := cur.([]any); ok {
		if idx, ok := arrayIndex(seg.Name); ok {
			arr = grow(arr, idx+1)
			arr[idx] = setMarked(arr[idx], seg, rest, value)

			return arr
		}
	}

	obj, ok := cur.(map[string]any)
	if !ok {
		obj = map[string]any{}
	}

	obj[seg.Name] = setMarked(obj[seg.Name], seg, rest, value)

	return obj
}

func setMarked(child any, seg Segment, rest []Segment, value any) any {
	switch seg.Marker {
	case MarkerWildcard:
		arr, _ := child.([]any)

		values, ok := asSlice(value)
		if !ok {
			// Scalars land in the first element only.
			arr = grow(arr, 1)
			arr[0] = setSegments(arr[0], rest, value)

			return arr
		}

		arr = grow(arr, len(values))

		for i, v := range values {
			if v == nil {
				if len(rest) > 0 && arr[i] == nil {
					arr[i] = map[string]any{}
				}

				continue
			}

			arr[i] = setSegments(arr[i], rest, v)
		}

		return arr
	case MarkerIndex:
		arr, _ := child.([]any)
		arr = grow(arr, seg.Index+1)
		arr[seg.Index] = setSegments(arr[seg.Index], rest, value)

		return arr
	default:
		return setSegments(child, rest, value)
	}
}

func grow(arr []any, n int) []any {
	for len(arr) < n {
		arr = append(arr, nil)
	}

	return arr
}

// asSlice views any slice value as []any. []byte is treated as a scalar.
func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case nil, []byte:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}
