package docpath

import (
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
)

func TestStringify(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{"abc", "abc"},
		{true, "true"},
		{1.0, "1"},
		{1.5, "1.5"},
		{-0.25, "-0.25"},
		{1e21, "1e+21"},
		{7, "7"},
		{int64(9), "9"},
		{json.Number("12"), "12"},
		{[]any{"a", nil, 2.0}, "a,,2"},
		{map[string]any{"b": 1.0, "a": "x"}, `{"a":"x","b":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Stringify(tt.in))
		})
	}
}

func TestIsScalar(t *testing.T) {
	assert.True(t, IsScalar("x"))
	assert.True(t, IsScalar(2.0))
	assert.True(t, IsScalar(false))
	assert.False(t, IsScalar(nil))
	assert.False(t, IsScalar([]any{}))
	assert.False(t, IsScalar(map[string]any{}))
}
