package docpath

import (
	"strconv"
)

// Get returns the value at path inside doc, or nil when any step is missing.
// An empty path returns doc itself. A "[]" segment returns a []any holding
// the rest of the path evaluated against every element; elements that do
// not resolve contribute nil entries rather than being dropped.
func Get(doc any, path string) any {
	if doc == nil {
		return nil
	}

	if path == "" {
		return doc
	}

	p, err := Parse(path)
	if err != nil {
		return nil
	}

	return GetPath(doc, p)
}

// GetPath is Get for an already parsed path.
func GetPath(doc any, p Path) any {
	return getSegments(doc, p.Segments)
}

func getSegments(cur any, segs []Segment) any {
	for i, seg := range segs {
		if cur == nil {
			return nil
		}

		if seg.Name != "" {
			cur = property(cur, seg.Name)
			if cur == nil {
				return nil
			}
		}

		switch seg.Marker {
		case MarkerWildcard:
			arr, ok := asSlice(cur)
			if !ok {
				return nil
			}

			rest := segs[i+1:]
			out := make([]any, len(arr))

			for j, el := range arr {
				out[j] = getSegments(el, rest)
			}

			return out
		case MarkerIndex:
			arr, ok := asSlice(cur)
			if !ok || seg.Index >= len(arr) {
				return nil
			}

			cur = arr[seg.Index]
		}
	}

	return cur
}

// property reads a named property. Numeric names also index into arrays,
// so "devices.0.ip" reads like "devices[0].ip".
func property(cur any, name string) any {
	switch c := cur.(type) {
	case map[string]any:
		return c[name]
	case []any:
		idx, ok := arrayIndex(name)
		if !ok || idx >= len(c) {
			return nil
		}

		return c[idx]
	default:
		return nil
	}
}

// arrayIndex parses a plain segment name used as an array index.
func arrayIndex(name string) (int, bool) {
	idx, err := strconv.Atoi(name)
	if err != nil || idx < 0 || idx > MaxIndex {
		return 0, false
	}

	return idx, true
}
