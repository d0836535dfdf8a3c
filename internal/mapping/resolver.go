package mapping

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"ocsf-mapper/internal/common"
	"ocsf-mapper/internal/diagnostic"
	"ocsf-mapper/internal/docpath"
	"ocsf-mapper/internal/fields"
	"ocsf-mapper/internal/observable"
	"ocsf-mapper/internal/schema"
)

// ResolverConfig holds configuration for the resolution process.
type ResolverConfig struct {
	// MaxDepth limits how many references deep the path closure descends
	// (0 = unlimited). The cycle guard applies regardless.
	MaxDepth int
	// CaptureUnmapped enables "unmapped.<field>" capture.
	CaptureUnmapped bool
}

// DefaultResolverConfig returns the default resolution configuration.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		MaxDepth:        8,
		CaptureUnmapped: true,
	}
}

// Resolver turns user bindings into resolved mapping tables.
type Resolver struct {
	catalog *schema.Catalog
	config  ResolverConfig
	logger  *zap.Logger
}

// NewResolver creates a Resolver over catalog. logger may be nil.
func NewResolver(catalog *schema.Catalog, config ResolverConfig, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{catalog: catalog, config: config, logger: logger}
}

// Resolve resolves className with the default configuration.
func Resolve(
	catalog *schema.Catalog,
	className string,
	user map[string]UserMapping,
	sourceFields []fields.Field,
	base Table,
) (Table, *diagnostic.Diagnostics) {
	return NewResolver(catalog, DefaultResolverConfig(), nil).Resolve(className, user, sourceFields, base)
}

// target is one addressable path of the class closure.
type target struct {
	path string
	attr schema.Attribute
	// top is true for attributes of the class itself.
	top bool
}

// Resolve produces the mapping table for className. base, when non-nil,
// supplies fallback bindings path by path (used for conditional branches).
// Problems are reported as diagnostics; the table is always usable.
func (r *Resolver) Resolve(
	className string,
	user map[string]UserMapping,
	sourceFields []fields.Field,
	base Table,
) (Table, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}
	table := Table{}

	cls, ok := r.catalog.Class(className)
	if !ok {
		diags.AddError("unknown_class", fmt.Sprintf("class %q not found", className), className, "")
		return table, diags
	}

	targets := r.closure(cls)

	userByPath := r.indexUser(className, user, targets, diags)
	fieldIndex := fields.Index(sourceFields)

	for _, t := range targets {
		if t.top && IsSystemPath(t.path) {
			if u, ok := userByPath[t.path]; !ok || !u.IsBound() {
				table[t.path] = AttributeMapping{Binding: Synthesized{Kind: SynthKindFor(t.path)}}
				continue
			}
		}

		m, ok := r.effective(t, userByPath, base)
		if !ok {
			continue
		}

		m.ObservableTypeID, m.IsObservableOverride = r.classify(t, m, userByPath, base, fieldIndex)

		if src, ok := m.SourcePath(); ok && len(fieldIndex) > 0 {
			if _, known := fieldIndex[src]; !known {
				diags.AddInfo("unknown_source", fmt.Sprintf("source %q is not in the sample", src), className, t.path)
			}
		}

		table[t.path] = m
	}

	if _, ok := cls.Attributes[PathUnmapped]; ok && r.config.CaptureUnmapped {
		captureUnmapped(table, sourceFields)
	}

	r.logger.Debug("resolved mapping table",
		zap.String("class", className),
		zap.Int("targets", len(targets)),
		zap.Int("bound", len(table)))

	return table, diags
}

// closure lists every addressable path of cls, depth first in attribute
// name order. References are not followed into a class that already
// appears on the current descent.
func (r *Resolver) closure(cls *schema.Class) []target {
	var out []target

	var walk func(c *schema.Class, prefix string, lineage []string, depth int)

	walk = func(c *schema.Class, prefix string, lineage []string, depth int) {
		for _, name := range common.SortedKeys(c.Attributes) {
			attr := c.Attributes[name]
			path := docpath.Join(prefix, name)

			out = append(out, target{path: path, attr: attr, top: prefix == ""})

			ref, ok := attr.Reference()
			if !ok || containsName(lineage, ref) {
				continue
			}

			if r.config.MaxDepth > 0 && depth >= r.config.MaxDepth {
				continue
			}

			nested, ok := r.catalog.Class(ref)
			if !ok {
				continue
			}

			child := path
			if attr.Array {
				child += "[]"
			}

			walk(nested, child, append(lineage[:len(lineage):len(lineage)], ref), depth+1)
		}
	}

	walk(cls, "", []string{cls.Name}, 0)

	return out
}

// indexUser keys user mappings by closure path. Keys may omit array markers
// ("user.groups.name" for "user.groups[].name"). Keys that match no path
// are reported and dropped.
func (r *Resolver) indexUser(
	className string,
	user map[string]UserMapping,
	targets []target,
	diags *diagnostic.Diagnostics,
) map[string]UserMapping {
	byStripped := make(map[string]string, len(targets))
	for _, t := range targets {
		byStripped[docpath.Strip(t.path)] = t.path
	}

	out := make(map[string]UserMapping, len(user))

	for _, key := range common.SortedKeys(user) {
		path, ok := byStripped[docpath.Strip(key)]
		if !ok {
			diags.AddWarning("unknown_path", fmt.Sprintf("%q is not an attribute of %s", key, className), className, key)
			continue
		}

		out[path] = user[key]
	}

	return out
}

// effective applies binding precedence: user, single-valued enum, base.
func (r *Resolver) effective(t target, user map[string]UserMapping, base Table) (AttributeMapping, bool) {
	m := AttributeMapping{
		IsEnum:   t.attr.IsEnum(),
		IsNumber: t.attr.IsNumber(),
	}

	if u, ok := user[t.path]; ok && u.IsBound() {
		if u.Static != nil {
			m.Binding = Static{Value: u.Static}
		} else {
			m.Binding = Source{Path: u.Source}
		}

		m.EnumMapping = u.EnumMapping

		return m, true
	}

	if values := t.attr.EnumValues(); len(values) == 1 {
		m.Binding = Static{Value: enumLiteral(values[0], t.attr.IsNumber())}
		return m, true
	}

	if b, ok := base[t.path]; ok && b.Binding != nil && !b.IsDirective() {
		m.Binding = b.Binding
		m.EnumMapping = b.EnumMapping

		return m, true
	}

	return AttributeMapping{}, false
}

// classify applies observable precedence: user override, source field
// detection, catalog default. Overrides inherited from base carry over.
func (r *Resolver) classify(
	t target,
	m AttributeMapping,
	user map[string]UserMapping,
	base Table,
	fieldIndex map[string]fields.Field,
) (*observable.TypeID, bool) {
	if u, ok := user[t.path]; ok && u.overridesObservable() {
		return u.ObservableTypeID, true
	}

	if _, fromUser := user[t.path]; !fromUser {
		if b, ok := base[t.path]; ok && b.IsObservableOverride {
			return b.ObservableTypeID, true
		}
	}

	if src, ok := m.SourcePath(); ok {
		if f, ok := fieldIndex[src]; ok && f.Observable {
			return f.ObservableTypeID.Ptr(), false
		}
	}

	return t.attr.Observable, false
}

// captureUnmapped adds "unmapped.<field>" for every scalar field that is
// neither bound as a source nor below a bound ancestor.
func captureUnmapped(table Table, sourceFields []fields.Field) {
	mapped := table.SourcePaths()

	for _, f := range sourceFields {
		if !f.IsScalar() || mapped[f.Name] {
			continue
		}

		covered := false

		for _, p := range docpath.Prefixes(f.Name) {
			if mapped[p] {
				covered = true
				break
			}
		}

		if covered {
			continue
		}

		path := UnmappedPath(f.Name)
		if _, exists := table[path]; exists {
			continue
		}

		table[path] = AttributeMapping{Binding: Source{Path: f.Name}}
	}
}

func enumLiteral(key string, numeric bool) any {
	if numeric {
		if n, err := strconv.ParseFloat(key, 64); err == nil {
			return n
		}
	}

	return key
}

func containsName(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}

	return false
}
