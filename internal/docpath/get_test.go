package docpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleDoc() map[string]any {
	return map[string]any{
		"user": map[string]any{"name": "jdoe", "id": 42.0},
		"devices": []any{
			map[string]any{"ip": "10.0.0.1", "tags": []any{"a", "b"}},
			map[string]any{"name": "no-ip"},
			map[string]any{"ip": "10.0.0.3"},
		},
		"empty": nil,
	}
}

func TestGet(t *testing.T) {
	doc := sampleDoc()

	tests := []struct {
		name string
		path string
		want any
	}{
		{"plain", "user.name", "jdoe"},
		{"number", "user.id", 42.0},
		{"missing leaf", "user.email", nil},
		{"missing intermediate", "actor.user.name", nil},
		{"through null", "empty.x", nil},
		{"through scalar", "user.name.first", nil},
		{"wildcard maps not filters", "devices[].ip", []any{"10.0.0.1", nil, "10.0.0.3"}},
		{"index", "devices[2].ip", "10.0.0.3"},
		{"index out of range", "devices[9].ip", nil},
		{"numeric segment indexes arrays", "devices.0.ip", "10.0.0.1"},
		{"nested wildcard", "devices[].tags[]", []any{[]any{"a", "b"}, nil, nil}},
		{"wildcard on non-array", "user[].name", nil},
		{"malformed", "user..name", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Get(doc, tt.path))
		})
	}
}

func TestGet_EmptyPathAndNilDoc(t *testing.T) {
	doc := sampleDoc()
	assert.Equal(t, doc, Get(doc, ""))
	assert.Nil(t, Get(nil, "user.name"))
}

func TestGet_RootArray(t *testing.T) {
	doc := []any{map[string]any{"n": 1.0}, map[string]any{"n": 2.0}}
	assert.Equal(t, []any{1.0, 2.0}, Get(doc, "[].n"))
	assert.Equal(t, 2.0, Get(doc, "[1].n"))
}
