package transform

import (
	"math"
	"strconv"
	"strings"

	"ocsf-mapper/internal/docpath"
	"ocsf-mapper/internal/mapping"
)

// translate applies the enum table to a scalar or each array element.
// Values with no entry, or an empty entry, pass through unchanged.
func translate(v any, m mapping.AttributeMapping) any {
	if len(m.EnumMapping) == 0 {
		return v
	}

	one := func(e any) any {
		mapped, ok := m.EnumMapping[docpath.Stringify(e)]
		if !ok || mapped == "" {
			return e
		}

		if m.IsEnum {
			if n, ok := toNumber(mapped); ok {
				return n
			}
		}

		return mapped
	}

	if arr, ok := v.([]any); ok {
		out := make([]any, len(arr))
		for i, e := range arr {
			out[i] = one(e)
		}

		return out
	}

	return one(v)
}

// coerceNumbers converts numeric strings to numbers for numeric and enum
// targets.
func coerceNumbers(v any, m mapping.AttributeMapping) any {
	if !m.IsNumber && !m.IsEnum {
		return v
	}

	one := func(e any) any {
		s, ok := e.(string)
		if !ok {
			return e
		}

		if n, ok := toNumber(s); ok {
			return n
		}

		return e
	}

	if arr, ok := v.([]any); ok {
		out := make([]any, len(arr))
		for i, e := range arr {
			out[i] = one(e)
		}

		return out
	}

	return one(v)
}

// toNumber parses finite decimal numbers only.
func toNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}

	return n, true
}

// clone deep-copies containers so writes into the output never reach the
// input document or the config.
func clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = clone(e)
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = clone(e)
		}

		return out
	default:
		return v
	}
}
