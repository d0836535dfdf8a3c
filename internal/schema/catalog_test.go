package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Lookup(t *testing.T) {
	catalog := loadMini(t)

	tests := []struct {
		class    string
		path     string
		wantType string
		wantOK   bool
	}{
		{"authentication", "user.name", "string_t", true},
		{"authentication", "user.groups[].name", "string_t", true},
		{"authentication", "src_endpoint.ip", "ip_t", true},
		{"authentication", "metadata.product.vendor_name", "string_t", true},
		{"network_activity", "process.parent_process.parent_process.pid", "integer_t", true},
		{"authentication", "user", "user", true},
		{"authentication", "user.nope", "", false},
		{"authentication", "time.seconds", "", false},
		{"authentication", "", "", false},
		{"missing_class", "user", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.class+"/"+tt.path, func(t *testing.T) {
			attr, ok := catalog.Lookup(tt.class, tt.path)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantType, attr.TypeName())
		})
	}
}

func TestCatalog_NilSafe(t *testing.T) {
	var c *Catalog

	_, ok := c.Class("x")
	assert.False(t, ok)
}

func TestAttribute_EnumValuesOrdering(t *testing.T) {
	attr := Attribute{Kind: Enum{Type: "integer_t", Values: map[string]EnumValue{
		"99": {Caption: "Other"},
		"10": {Caption: "Ten"},
		"2":  {Caption: "Two"},
		"0":  {Caption: "Unknown"},
	}}}

	assert.Equal(t, []string{"0", "2", "10", "99"}, attr.EnumValues())
	assert.Nil(t, Attribute{Kind: Scalar{Type: "string_t"}}.EnumValues())
}

func TestIsNumericType(t *testing.T) {
	for _, name := range []string{"integer_t", "long_t", "float_t", "double_t", "timestamp_t", "port_t"} {
		assert.True(t, IsNumericType(name), name)
	}

	for _, name := range []string{"string_t", "boolean_t", "ip_t", "json_t"} {
		assert.False(t, IsNumericType(name), name)
	}
}
