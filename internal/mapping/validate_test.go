package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ocsf-mapper/internal/observable"
)

func TestValidate(t *testing.T) {
	catalog := loadCatalog(t)

	tests := []struct {
		name     string
		mutate   func(*ParserConfig)
		wantCode string
		wantErr  bool
	}{
		{
			name:   "valid",
			mutate: func(*ParserConfig) {},
		},
		{
			name:     "empty class",
			mutate:   func(c *ParserConfig) { c.SelectedClass = "" },
			wantCode: "empty_class",
			wantErr:  true,
		},
		{
			name: "empty discriminator",
			mutate: func(c *ParserConfig) {
				c.Conditionals[0].Field = ""
			},
			wantCode: "empty_discriminator",
			wantErr:  true,
		},
		{
			name: "duplicate branch",
			mutate: func(c *ParserConfig) {
				c.Conditionals = append(c.Conditionals, c.Conditionals[0])
			},
			wantCode: "duplicate_branch",
		},
		{
			name: "unknown path",
			mutate: func(c *ParserConfig) {
				c.DefaultMapping["user.shoe_size"] = AttributeMapping{Binding: Source{Path: "x"}}
			},
			wantCode: "unknown_path",
		},
		{
			name: "unknown branch class",
			mutate: func(c *ParserConfig) {
				c.Conditionals[0].ClassName = "teleport"
			},
			wantCode: "unknown_class",
			wantErr:  true,
		},
		{
			name: "missing binding",
			mutate: func(c *ParserConfig) {
				c.DefaultMapping["message"] = AttributeMapping{}
			},
			wantCode: "missing_binding",
			wantErr:  true,
		},
		{
			name: "empty source",
			mutate: func(c *ParserConfig) {
				c.DefaultMapping["message"] = AttributeMapping{Binding: Source{}}
			},
			wantCode: "empty_source",
			wantErr:  true,
		},
		{
			name: "root array capture",
			mutate: func(c *ParserConfig) {
				c.DefaultMapping["unmapped[].host"] = AttributeMapping{Binding: Source{Path: "[].host"}}
			},
		},
		{
			name: "index out of range",
			mutate: func(c *ParserConfig) {
				c.DefaultMapping["metadata.labels[4000000000]"] = AttributeMapping{Binding: Static{Value: "x"}}
			},
			wantCode: "invalid_path",
			wantErr:  true,
		},
		{
			name: "malformed source",
			mutate: func(c *ParserConfig) {
				c.DefaultMapping["message"] = AttributeMapping{Binding: Source{Path: "a..b"}}
			},
			wantCode: "invalid_source",
			wantErr:  true,
		},
		{
			name: "undefined observable",
			mutate: func(c *ParserConfig) {
				id := observable.TypeID(77)
				c.DefaultMapping["message"] = AttributeMapping{Binding: Source{Path: "m"}, ObservableTypeID: &id}
			},
			wantCode: "invalid_observable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sampleConfig()
			tt.mutate(cfg)

			diags := Validate(cfg, catalog)

			assert.Equal(t, tt.wantErr, diags.HasErrors(), diags.All())

			if tt.wantCode != "" {
				assert.True(t, diags.HasCode(tt.wantCode), diags.All())
			} else {
				assert.Empty(t, diags.All(), diags.All())
			}
		})
	}
}

func TestValidate_WithoutCatalog(t *testing.T) {
	cfg := sampleConfig()
	cfg.DefaultMapping["anything.goes"] = AttributeMapping{Binding: Source{Path: "x"}}

	assert.Empty(t, Validate(cfg, nil).All())
	assert.True(t, Validate(nil, nil).HasCode("config_is_nil"))
}
