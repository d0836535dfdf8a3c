package mapping

import (
	"github.com/segmentio/encoding/json"

	"ocsf-mapper/internal/common"
	"ocsf-mapper/internal/observable"
)

// AttributeMapping is the resolved binding rule for one target path.
type AttributeMapping struct {
	Binding Binding
	// EnumMapping translates stringified source values to target values.
	EnumMapping map[string]string
	// IsEnum and IsNumber are coercion hints from the target attribute.
	IsEnum   bool
	IsNumber bool
	// ObservableTypeID, when set, emits an observable record per value.
	ObservableTypeID     *observable.TypeID
	IsObservableOverride bool
}

// IsDirective returns true for Synthesized bindings.
func (m AttributeMapping) IsDirective() bool {
	_, ok := m.Binding.(Synthesized)
	return ok
}

// SourcePath returns the source path of a Source binding.
func (m AttributeMapping) SourcePath() (string, bool) {
	if s, ok := m.Binding.(Source); ok {
		return s.Path, true
	}

	return "", false
}

type wireMapping struct {
	Source               *string            `json:"source,omitempty"`
	Static               any                `json:"static,omitempty"`
	EnumMapping          map[string]string  `json:"enumMapping,omitempty"`
	IsEnum               bool               `json:"isEnum,omitempty"`
	IsNumber             bool               `json:"isNumber,omitempty"`
	ObservableTypeID     *observable.TypeID `json:"observableTypeId,omitempty"`
	IsObservableOverride bool               `json:"isObservableOverride,omitempty"`
}

// MarshalJSON writes the flat wire shape. Directives become an empty
// "source" with no "static".
func (m AttributeMapping) MarshalJSON() ([]byte, error) {
	w := wireMapping{
		EnumMapping:          m.EnumMapping,
		IsEnum:               m.IsEnum,
		IsNumber:             m.IsNumber,
		ObservableTypeID:     m.ObservableTypeID,
		IsObservableOverride: m.IsObservableOverride,
	}

	switch b := m.Binding.(type) {
	case Source:
		w.Source = &b.Path
	case Static:
		w.Static = b.Value
	default:
		empty := ""
		w.Source = &empty
	}

	return json.Marshal(w)
}

// UnmarshalJSON reads the flat wire shape. A present "static" wins over
// "source"; neither yields a WholeInput directive until the owning Table
// assigns the kind from the target path.
func (m *AttributeMapping) UnmarshalJSON(data []byte) error {
	var w wireMapping
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*m = AttributeMapping{
		EnumMapping:          w.EnumMapping,
		IsEnum:               w.IsEnum,
		IsNumber:             w.IsNumber,
		ObservableTypeID:     w.ObservableTypeID,
		IsObservableOverride: w.IsObservableOverride,
	}

	switch {
	case w.Static != nil:
		m.Binding = Static{Value: w.Static}
	case w.Source != nil && *w.Source != "":
		m.Binding = Source{Path: *w.Source}
	default:
		m.Binding = Synthesized{Kind: WholeInput}
	}

	return nil
}

// Table maps target paths to their resolved mapping.
type Table map[string]AttributeMapping

// Paths returns the target paths in sorted order.
func (t Table) Paths() []string {
	return common.SortedKeys(t)
}

// UnmarshalJSON decodes the table and assigns directive kinds by path.
func (t *Table) UnmarshalJSON(data []byte) error {
	var raw map[string]AttributeMapping
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for path, m := range raw {
		if m.IsDirective() {
			m.Binding = Synthesized{Kind: SynthKindFor(path)}
			raw[path] = m
		}
	}

	*t = raw

	return nil
}

// SourcePaths returns the set of source paths bound in the table.
func (t Table) SourcePaths() map[string]bool {
	out := map[string]bool{}

	for _, m := range t {
		if p, ok := m.SourcePath(); ok {
			out[p] = true
		}
	}

	return out
}

// ConditionalMapping is one discriminator branch. When Field stringifies to
// Value, the branch's class, category and mapping replace the defaults.
type ConditionalMapping struct {
	Field        string `json:"field"`
	Value        string `json:"value"`
	ClassName    string `json:"className"`
	CategoryName string `json:"categoryName"`
	Mapping      Table  `json:"mapping"`
}

// ParserConfig is a complete, resolved transform unit.
type ParserConfig struct {
	DefaultMapping   Table                `json:"defaultMapping"`
	Conditionals     []ConditionalMapping `json:"conditionals,omitempty"`
	SelectedClass    string               `json:"selectedClass"`
	SelectedCategory string               `json:"selectedCategory"`
}

// UserMapping is a user-declared binding for one target path. Source and
// Static are alternatives; Static wins when both are set.
type UserMapping struct {
	Source      string            `json:"source,omitempty" yaml:"source,omitempty"`
	Static      any               `json:"static,omitempty" yaml:"static,omitempty"`
	EnumMapping map[string]string `json:"enumMapping,omitempty" yaml:"enum,omitempty"`
	// ObservableTypeID overrides the catalog default. With IsObservableOverride
	// set and no id, the path is explicitly not observable.
	ObservableTypeID     *observable.TypeID `json:"observableTypeId,omitempty" yaml:"observable,omitempty"`
	IsObservableOverride bool               `json:"isObservableOverride,omitempty" yaml:"observable_override,omitempty"`
}

// IsBound returns true when the mapping names a source or a static value.
func (u UserMapping) IsBound() bool {
	return u.Source != "" || u.Static != nil
}

// overridesObservable returns true when the user decided observability.
func (u UserMapping) overridesObservable() bool {
	return u.IsObservableOverride || u.ObservableTypeID != nil
}
