package schema

import (
	"fmt"

	"ocsf-mapper/internal/common"
	"ocsf-mapper/internal/diagnostic"
	"ocsf-mapper/internal/observable"
)

// BaseEventName is the root event class every OCSF event class extends.
const BaseEventName = "base_event"

type visitState int

const (
	unvisited visitState = iota
	visiting
	done
)

type flattener struct {
	raw      *RawSchema
	dict     map[string]RawAttribute
	types    map[string]RawType
	defs     map[string]RawClass
	names    map[string]bool
	state    map[string]visitState
	catalog  *Catalog
	diags    *diagnostic.Diagnostics
	profiles map[string]map[string]Attribute
}

// Flatten merges inheritance and profiles into a Catalog. Problems that
// only affect part of the schema (missing parents or profiles, cycles,
// malformed attributes) are reported as diagnostics and the affected edge
// or attribute is skipped.
func Flatten(raw *RawSchema) (*Catalog, *diagnostic.Diagnostics) {
	f := &flattener{
		raw:      raw,
		dict:     raw.dictionary(),
		types:    raw.types(),
		defs:     map[string]RawClass{},
		names:    map[string]bool{},
		state:    map[string]visitState{},
		catalog:  NewCatalog(),
		diags:    &diagnostic.Diagnostics{},
		profiles: map[string]map[string]Attribute{},
	}

	f.catalog.Version = raw.Version

	f.collect()
	f.loadCategories()

	for _, name := range common.SortedKeys(f.defs) {
		f.visit(name)
	}

	return f.catalog, f.diags
}

// collect gathers every class and object definition, keyed by name.
// Objects and classes share one namespace; classes win on collision.
func (f *flattener) collect() {
	add := func(key string, def RawClass) {
		name := def.Name
		if name == "" {
			name = key
		}

		def.Name = name
		f.defs[name] = def
		f.names[name] = true
	}

	for key, def := range f.raw.Objects {
		add(key, def)
	}

	for key, def := range f.raw.Classes {
		add(key, def)
	}

	if f.raw.BaseEvent != nil {
		add(BaseEventName, *f.raw.BaseEvent)
	}
}

func (f *flattener) loadCategories() {
	cats, err := f.raw.categories()
	if err != nil {
		f.diags.AddWarning("invalid_categories", err.Error(), "", "")
		return
	}

	for name, c := range cats {
		if len(name) > 0 && name[0] == '$' {
			continue
		}

		caption := c.Caption
		if caption == "" {
			caption = name
		}

		f.catalog.Categories[name] = Category{
			Name:        name,
			Caption:     caption,
			Description: c.Description,
			UID:         c.UID,
		}
	}
}

// visit flattens name after its parent (depth-first topological order).
// Returns false when the class is part of a cycle still being resolved.
func (f *flattener) visit(name string) bool {
	switch f.state[name] {
	case done:
		return true
	case visiting:
		return false
	}

	f.state[name] = visiting

	def := f.defs[name]

	var parent *Class

	if def.Extends != "" && def.Extends != name {
		switch {
		case !f.names[def.Extends]:
			f.diags.AddWarning("unknown_parent",
				fmt.Sprintf("extends unknown class %q", def.Extends), name, "")
		case !f.visit(def.Extends):
			f.diags.AddError("class_cycle",
				fmt.Sprintf("inheritance cycle through %q; edge ignored", def.Extends), name, "")
		default:
			parent = f.catalog.Classes[def.Extends]
		}
	}

	f.catalog.Classes[name] = f.build(def, parent)
	f.state[name] = done

	return true
}

// build merges parent <- profiles <- local attributes.
func (f *flattener) build(def RawClass, parent *Class) *Class {
	attrs := map[string]Attribute{}

	if parent != nil {
		for k, v := range parent.Attributes {
			attrs[k] = v
		}
	}

	local, includes, err := splitAttributes(def.Attributes)
	if err != nil {
		f.diags.AddWarning("invalid_attributes", err.Error(), def.Name, "")
	}

	profileNames := append(append([]string{}, def.Profiles...), includes...)

	var seen []string

	for _, p := range profileNames {
		if containsString(seen, p) {
			continue
		}

		seen = append(seen, p)

		for k, v := range f.profile(p, def.Name) {
			attrs[k] = v
		}
	}

	for k, v := range local {
		attrs[k] = f.attribute(k, v)
	}

	category := def.Category
	if category == "" && parent != nil {
		category = parent.Category
	}

	if category == "" && def.Name == BaseEventName {
		category = "other"
	}

	caption := def.Caption
	if caption == "" {
		caption = def.Name
	}

	return &Class{
		Name:        def.Name,
		Caption:     caption,
		Description: def.Description,
		Category:    category,
		UID:         def.UID,
		Extends:     def.Extends,
		Profiles:    seen,
		Attributes:  attrs,
	}
}

// profile returns the attribute bundle of a profile, building it once.
func (f *flattener) profile(name, owner string) map[string]Attribute {
	if attrs, ok := f.profiles[name]; ok {
		return attrs
	}

	def, ok := f.raw.Profiles[name]
	if !ok {
		f.diags.AddWarning("unknown_profile", fmt.Sprintf("profile %q not found", name), owner, "")
		f.profiles[name] = nil

		return nil
	}

	local, _, err := splitAttributes(def.Attributes)
	if err != nil {
		f.diags.AddWarning("invalid_attributes", err.Error(), "profile:"+name, "")
	}

	attrs := make(map[string]Attribute, len(local))
	for k, v := range local {
		attrs[k] = f.attribute(k, v)
	}

	f.profiles[name] = attrs

	return attrs
}

// attribute merges a class-local definition over the dictionary entry and
// derives its kind and default observability.
func (f *flattener) attribute(name string, local RawAttribute) Attribute {
	merged := f.dict[name].merge(local)

	typeName := merged.Type
	if typeName == "" {
		typeName = "string_t"
	}

	attr := Attribute{
		Name:        name,
		Caption:     merged.Caption,
		Description: merged.Description,
		Array:       merged.IsArray != nil && *merged.IsArray,
		Requirement: merged.Requirement,
	}

	if attr.Caption == "" {
		attr.Caption = name
	}

	switch {
	case len(merged.Enum) > 0:
		attr.Kind = Enum{Type: typeName, Values: merged.Enum}
	case merged.ObjectType != "":
		attr.Kind = Reference{Class: merged.ObjectType}
	case f.names[typeName]:
		attr.Kind = Reference{Class: typeName}
	default:
		attr.Kind = Scalar{Type: typeName}
	}

	attr.Observable = f.observability(merged, typeName)

	return attr
}

// observability: attribute, then data type, then referenced object.
func (f *flattener) observability(a RawAttribute, typeName string) *observable.TypeID {
	if a.Observable != nil {
		return observable.TypeID(*a.Observable).Ptr()
	}

	if t, ok := f.types[typeName]; ok && t.Observable != nil {
		return observable.TypeID(*t.Observable).Ptr()
	}

	objName := a.ObjectType
	if objName == "" {
		objName = typeName
	}

	return f.objectObservable(objName)
}

// objectObservable walks the extends chain of an object for a declared
// observable type.
func (f *flattener) objectObservable(name string) *observable.TypeID {
	for hops := 0; hops < len(f.defs); hops++ {
		obj, ok := f.defs[name]
		if !ok {
			return nil
		}

		if obj.Observable != nil {
			return observable.TypeID(*obj.Observable).Ptr()
		}

		if obj.Extends == "" || obj.Extends == name {
			return nil
		}

		name = obj.Extends
	}

	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
