package mapping

import (
	"fmt"

	"ocsf-mapper/internal/diagnostic"
	"ocsf-mapper/internal/fields"
	"ocsf-mapper/internal/schema"
)

// Request is everything a mapping session declares.
type Request struct {
	Category     string
	Class        string
	Mappings     map[string]UserMapping
	Fields       []fields.Field
	Conditionals []BranchRequest
}

// BranchRequest declares one conditional branch.
type BranchRequest struct {
	Field    string
	Value    string
	Category string
	Class    string
	Mappings map[string]UserMapping
}

// BuildConfig resolves a complete ParserConfig. Branches are resolved with
// the default table as their base. A branch naming an unknown class is
// dropped with a warning, so inputs it would have matched keep the default.
func (r *Resolver) BuildConfig(req Request) (*ParserConfig, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	def, d := r.Resolve(req.Class, req.Mappings, req.Fields, nil)
	diags.Merge(d)

	cfg := &ParserConfig{
		DefaultMapping:   def,
		SelectedClass:    req.Class,
		SelectedCategory: r.categoryOf(req.Class, req.Category),
	}

	for i, b := range req.Conditionals {
		where := fmt.Sprintf("conditionals[%d]", i)

		if b.Field == "" {
			diags.AddWarning("empty_discriminator", "branch has no discriminator field; dropped", b.Class, where)
			continue
		}

		if _, ok := r.catalog.Class(b.Class); !ok {
			diags.AddWarning("branch_unknown_class",
				fmt.Sprintf("branch %s == %q names unknown class %q; dropped", b.Field, b.Value, b.Class),
				b.Class, where)

			continue
		}

		table, d := r.Resolve(b.Class, b.Mappings, req.Fields, def)
		diags.Merge(d)

		cfg.Conditionals = append(cfg.Conditionals, ConditionalMapping{
			Field:        b.Field,
			Value:        b.Value,
			ClassName:    b.Class,
			CategoryName: r.categoryOf(b.Class, b.Category),
			Mapping:      table,
		})
	}

	return cfg, diags
}

// BuildConfig resolves req with the default resolver configuration.
func BuildConfig(catalog *schema.Catalog, req Request) (*ParserConfig, *diagnostic.Diagnostics) {
	return NewResolver(catalog, DefaultResolverConfig(), nil).BuildConfig(req)
}

// categoryOf returns the declared category, else the class's own.
func (r *Resolver) categoryOf(class, declared string) string {
	if declared != "" {
		return declared
	}

	if c, ok := r.catalog.Class(class); ok {
		return c.Category
	}

	return ""
}
