package schema

import (
	"fmt"
	"os"
	"strings"

	"github.com/segmentio/encoding/json"

	"ocsf-mapper/internal/diagnostic"
)

// RawSchema is the JSON export of an OCSF schema server (/export/schema),
// optionally combined with its categories and profiles listings.
type RawSchema struct {
	Version              string                  `json:"version,omitempty"`
	BaseEvent            *RawClass               `json:"base_event,omitempty"`
	Classes              map[string]RawClass     `json:"classes,omitempty"`
	Objects              map[string]RawClass     `json:"objects,omitempty"`
	DictionaryAttributes map[string]RawAttribute `json:"dictionary_attributes,omitempty"`
	Dictionary           *RawDictionary          `json:"dictionary,omitempty"`
	Types                map[string]RawType      `json:"types,omitempty"`
	Profiles             map[string]RawClass     `json:"profiles,omitempty"`
	Categories           json.RawMessage         `json:"categories,omitempty"`
}

// RawDictionary is the nested dictionary layout used by some exports.
type RawDictionary struct {
	Attributes map[string]RawAttribute `json:"attributes,omitempty"`
	Types      struct {
		Attributes map[string]RawType `json:"attributes,omitempty"`
	} `json:"types"`
}

// RawClass is a class, object, or profile definition before flattening.
type RawClass struct {
	Name        string                     `json:"name,omitempty"`
	Caption     string                     `json:"caption,omitempty"`
	Description string                     `json:"description,omitempty"`
	Category    string                     `json:"category,omitempty"`
	UID         int                        `json:"uid,omitempty"`
	Extends     string                     `json:"extends,omitempty"`
	Profiles    []string                   `json:"profiles,omitempty"`
	Observable  *int                       `json:"observable,omitempty"`
	Attributes  map[string]json.RawMessage `json:"attributes,omitempty"`
}

// RawAttribute is an attribute definition as it appears in a class or the
// dictionary. Class-local definitions override dictionary fields.
type RawAttribute struct {
	Caption     string               `json:"caption,omitempty"`
	Description string               `json:"description,omitempty"`
	Type        string               `json:"type,omitempty"`
	ObjectType  string               `json:"object_type,omitempty"`
	IsArray     *bool                `json:"is_array,omitempty"`
	Requirement string               `json:"requirement,omitempty"`
	Enum        map[string]EnumValue `json:"enum,omitempty"`
	Observable  *int                 `json:"observable,omitempty"`
}

// RawType is a dictionary data type.
type RawType struct {
	Caption    string `json:"caption,omitempty"`
	Type       string `json:"type,omitempty"`
	Observable *int   `json:"observable,omitempty"`
}

type rawCategory struct {
	Caption     string `json:"caption,omitempty"`
	Description string `json:"description,omitempty"`
	UID         int    `json:"uid,omitempty"`
}

// LoadFile reads and flattens a schema export from disk.
func LoadFile(path string) (*Catalog, *diagnostic.Diagnostics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes and flattens a schema export.
func Parse(data []byte) (*Catalog, *diagnostic.Diagnostics, error) {
	var raw RawSchema

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	catalog, diags := Flatten(&raw)

	return catalog, diags, nil
}

// dictionary returns the attribute dictionary from whichever layout is present.
func (r *RawSchema) dictionary() map[string]RawAttribute {
	if len(r.DictionaryAttributes) > 0 {
		return r.DictionaryAttributes
	}

	if r.Dictionary != nil {
		return r.Dictionary.Attributes
	}

	return nil
}

func (r *RawSchema) types() map[string]RawType {
	if len(r.Types) > 0 {
		return r.Types
	}

	if r.Dictionary != nil {
		return r.Dictionary.Types.Attributes
	}

	return nil
}

// categories accepts both {"attributes": {...}} and a bare name map.
func (r *RawSchema) categories() (map[string]rawCategory, error) {
	if len(r.Categories) == 0 {
		return nil, nil
	}

	var wrapped struct {
		Attributes map[string]rawCategory `json:"attributes"`
	}

	if err := json.Unmarshal(r.Categories, &wrapped); err == nil && len(wrapped.Attributes) > 0 {
		return wrapped.Attributes, nil
	}

	var bare map[string]rawCategory
	if err := json.Unmarshal(r.Categories, &bare); err != nil {
		return nil, fmt.Errorf("failed to parse categories: %w", err)
	}

	return bare, nil
}

// splitAttributes separates attribute definitions from "$include" directives.
// Included profile references like "profiles/host.json" become "host".
func splitAttributes(raw map[string]json.RawMessage) (map[string]RawAttribute, []string, error) {
	attrs := make(map[string]RawAttribute, len(raw))

	var includes []string

	for name, msg := range raw {
		if name == "$include" {
			var list []string
			if err := json.Unmarshal(msg, &list); err != nil {
				return nil, nil, fmt.Errorf("invalid $include: %w", err)
			}

			for _, inc := range list {
				if strings.Contains(inc, "profiles/") {
					base := inc[strings.LastIndex(inc, "/")+1:]
					includes = append(includes, strings.TrimSuffix(base, ".json"))
				}
			}

			continue
		}

		if strings.HasPrefix(name, "$") {
			continue
		}

		var a RawAttribute
		if err := json.Unmarshal(msg, &a); err != nil {
			return nil, nil, fmt.Errorf("invalid attribute %q: %w", name, err)
		}

		attrs[name] = a
	}

	return attrs, includes, nil
}

// merge overlays local on top of dict, field by field.
func (dict RawAttribute) merge(local RawAttribute) RawAttribute {
	out := dict

	if local.Caption != "" {
		out.Caption = local.Caption
	}

	if local.Description != "" {
		out.Description = local.Description
	}

	if local.Type != "" {
		out.Type = local.Type
	}

	if local.ObjectType != "" {
		out.ObjectType = local.ObjectType
	}

	if local.IsArray != nil {
		out.IsArray = local.IsArray
	}

	if local.Requirement != "" {
		out.Requirement = local.Requirement
	}

	if len(local.Enum) > 0 {
		out.Enum = local.Enum
	}

	if local.Observable != nil {
		out.Observable = local.Observable
	}

	return out
}
