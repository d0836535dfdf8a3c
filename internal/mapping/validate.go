package mapping

import (
	"fmt"

	"ocsf-mapper/internal/diagnostic"
	"ocsf-mapper/internal/docpath"
	"ocsf-mapper/internal/schema"
)

// Validate checks a ParserConfig for structural problems. When catalog is
// non-nil, every target path is also checked against its class.
func Validate(cfg *ParserConfig, catalog *schema.Catalog) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if cfg == nil {
		res.AddError("config_is_nil", "parser config is nil", "", "")
		return res
	}

	if cfg.SelectedClass == "" {
		res.AddError("empty_class", "selectedClass is empty", "", "")
	}

	validateTable(res, cfg.SelectedClass, cfg.DefaultMapping, catalog)

	type branchKey struct{ field, value string }

	seen := map[branchKey]int{}

	for i, c := range cfg.Conditionals {
		where := fmt.Sprintf("conditionals[%d]", i)

		if c.Field == "" {
			res.AddError("empty_discriminator", "conditional has no field", c.ClassName, where)
		}

		if c.ClassName == "" {
			res.AddError("empty_class", "conditional has no className", "", where)
		}

		key := branchKey{c.Field, c.Value}
		if first, ok := seen[key]; ok {
			res.AddWarning("duplicate_branch",
				fmt.Sprintf("unreachable: conditionals[%d] already matches %s == %q", first, c.Field, c.Value),
				c.ClassName, where)
		} else {
			seen[key] = i
		}

		validateTable(res, c.ClassName, c.Mapping, catalog)
	}

	return res
}

func validateTable(res *diagnostic.Diagnostics, class string, t Table, catalog *schema.Catalog) {
	for _, path := range t.Paths() {
		m := t[path]

		if m.Binding == nil {
			res.AddError("missing_binding", "mapping has no binding", class, path)
			continue
		}

		if _, err := docpath.Parse(path); err != nil {
			res.AddError("invalid_path", err.Error(), class, path)
			continue
		}

		if src, ok := m.SourcePath(); ok && src == "" {
			res.AddError("empty_source", "source binding with empty path", class, path)
		} else if ok {
			if _, err := docpath.Parse(src); err != nil {
				res.AddError("invalid_source", err.Error(), class, path)
			}
		}

		if m.ObservableTypeID != nil && !m.ObservableTypeID.IsValid() {
			res.AddWarning("invalid_observable",
				fmt.Sprintf("observable type id %d is not defined", *m.ObservableTypeID), class, path)
		}

		if catalog == nil || class == "" || IsUnmappedPath(path) {
			continue
		}

		if _, ok := catalog.Class(class); !ok {
			continue
		}

		if _, ok := catalog.Lookup(class, path); !ok {
			res.AddWarning("unknown_path", fmt.Sprintf("%q is not an attribute of %s", path, class), class, path)
		}
	}

	if catalog != nil && class != "" {
		if _, ok := catalog.Class(class); !ok {
			res.AddError("unknown_class", fmt.Sprintf("class %q not found", class), class, "")
		}
	}
}
