package schema

import (
	"slices"
	"strings"

	"ocsf-mapper/internal/common"
	"ocsf-mapper/internal/observable"
)

// Kind is the closed set of attribute kinds: Scalar, Enum, or Reference.
type Kind interface {
	isKind()
}

// Scalar is a leaf value of an OCSF data type such as "string_t".
type Scalar struct {
	Type string
}

// Enum is an attribute restricted to a fixed value table. Type is the
// underlying data type, usually "integer_t".
type Enum struct {
	Type   string
	Values map[string]EnumValue
}

// Reference is an attribute whose value is an instance of another class.
type Reference struct {
	Class string
}

func (Scalar) isKind()    {}
func (Enum) isKind()      {}
func (Reference) isKind() {}

// EnumValue describes one allowed value of an Enum.
type EnumValue struct {
	Caption     string `json:"caption"`
	Description string `json:"description,omitempty"`
}

var numericTypes = map[string]bool{
	"integer_t":   true,
	"long_t":      true,
	"float_t":     true,
	"double_t":    true,
	"timestamp_t": true,
	"port_t":      true,
}

// IsNumericType returns true if the OCSF data type holds numbers.
func IsNumericType(name string) bool {
	return numericTypes[name]
}

// Attribute is one merged attribute of a class.
type Attribute struct {
	Name        string
	Caption     string
	Description string
	Kind        Kind
	Array       bool
	Requirement string
	// Observable is the default observable type for values of this
	// attribute, if the schema declares one.
	Observable *observable.TypeID
}

// TypeName returns the OCSF data type or referenced class name.
func (a Attribute) TypeName() string {
	switch k := a.Kind.(type) {
	case Scalar:
		return k.Type
	case Enum:
		return k.Type
	case Reference:
		return k.Class
	default:
		return ""
	}
}

// IsEnum returns true for Enum attributes.
func (a Attribute) IsEnum() bool {
	_, ok := a.Kind.(Enum)
	return ok
}

// IsNumber returns true for numeric scalars and enums.
func (a Attribute) IsNumber() bool {
	switch k := a.Kind.(type) {
	case Scalar:
		return IsNumericType(k.Type)
	case Enum:
		return IsNumericType(k.Type)
	default:
		return false
	}
}

// Reference returns the referenced class name for Reference attributes.
func (a Attribute) Reference() (string, bool) {
	if r, ok := a.Kind.(Reference); ok {
		return r.Class, true
	}

	return "", false
}

// EnumValues returns the allowed enum values, numerically ordered when
// possible, or nil for non-enums.
func (a Attribute) EnumValues() []string {
	e, ok := a.Kind.(Enum)
	if !ok {
		return nil
	}

	keys := common.SortedKeys(e.Values)
	slices.SortStableFunc(keys, compareEnumKeys)

	return keys
}

func compareEnumKeys(a, b string) int {
	if len(a) != len(b) && isDigits(a) && isDigits(b) {
		return len(a) - len(b)
	}

	return strings.Compare(a, b)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
