package match

import (
	"math"
	"strconv"
	"strings"

	"ocsf-mapper/internal/fields"
	"ocsf-mapper/internal/schema"
)

// TypeCompatibility represents the level of compatibility between a sample
// field and a schema attribute.
type TypeCompatibility int

const (
	// TypeIncompatible means the value cannot land in the attribute.
	TypeIncompatible TypeCompatibility = iota
	// TypeNeedsTransform means the mapping needs an enum table or a
	// different source shape.
	TypeNeedsTransform
	// TypeConvertible means the transform engine coerces the value on its own.
	TypeConvertible
	// TypeAssignable means the value is accepted as is by a loosely typed
	// attribute.
	TypeAssignable
	// TypeIdentical means the JSON type is the attribute's natural encoding.
	TypeIdentical
)

const (
	VerdictIdentical      = "identical"
	VerdictAssignable     = "assignable"
	VerdictConvertible    = "convertible"
	VerdictNeedsTransform = "needs_transform"
	VerdictIncompatible   = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeConvertible:
		return VerdictConvertible
	case TypeNeedsTransform:
		return VerdictNeedsTransform
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// Score returns a numeric score for sorting (higher is better).
func (c TypeCompatibility) Score() int {
	return int(c)
}

// TypeCompatibilityResult contains detailed information about type compatibility.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Reason        string // Human-readable explanation
	SourceType    string // JSON type of the field
	TargetType    string // OCSF type of the attribute, "[]" suffixed for arrays
}

const (
	typeBoolean = "boolean_t"
	typeJSON    = "json_t"
)

// ScoreCompatibility determines how well values of field fit attr.
func ScoreCompatibility(field fields.Field, attr schema.Attribute) TypeCompatibilityResult {
	result := TypeCompatibilityResult{
		SourceType: field.Type,
		TargetType: attr.TypeName(),
	}
	if attr.Array {
		result.TargetType += "[]"
	}

	result.Compatibility, result.Reason = score(field, attr)

	return result
}

func score(field fields.Field, attr schema.Attribute) (TypeCompatibility, string) {
	if field.Type == fields.TypeNull {
		return TypeNeedsTransform, "sample value is null"
	}

	if attr.TypeName() == typeJSON {
		return TypeAssignable, "json attribute accepts any value"
	}

	if field.Type == fields.TypeArray {
		if !attr.Array {
			return TypeNeedsTransform, "array field for a single-valued attribute"
		}

		return TypeConvertible, "array elements are copied as is"
	}

	if _, ok := attr.Reference(); ok {
		if field.Type == fields.TypeObject {
			return TypeConvertible, "object copied into a reference attribute"
		}

		return TypeIncompatible, "scalar field for an object attribute"
	}

	if field.Type == fields.TypeObject {
		return TypeIncompatible, "object field for a scalar attribute"
	}

	if attr.IsEnum() {
		return scoreEnum(field, attr)
	}

	return scoreScalar(field, attr)
}

func scoreEnum(field fields.Field, attr schema.Attribute) (TypeCompatibility, string) {
	switch field.Type {
	case fields.TypeNumber:
		if attr.IsNumber() {
			return TypeIdentical, "numeric enum value"
		}

		return TypeNeedsTransform, "number for a non-numeric enum"
	case fields.TypeString:
		if attr.IsNumber() && isNumericString(field.Example) {
			return TypeConvertible, "numeric string is coerced to the enum id"
		}

		return TypeNeedsTransform, "string needs an enum translation table"
	default:
		return TypeNeedsTransform, "boolean needs an enum translation table"
	}
}

func scoreScalar(field fields.Field, attr schema.Attribute) (TypeCompatibility, string) {
	typeName := attr.TypeName()

	switch {
	case attr.IsNumber():
		switch field.Type {
		case fields.TypeNumber:
			return TypeIdentical, "numeric value"
		case fields.TypeString:
			if isNumericString(field.Example) {
				return TypeConvertible, "numeric string is coerced to a number"
			}

			return TypeNeedsTransform, "string is not numeric"
		default:
			return TypeIncompatible, "boolean for a numeric attribute"
		}
	case typeName == typeBoolean:
		if field.Type == fields.TypeBoolean {
			return TypeIdentical, "boolean value"
		}

		return TypeNeedsTransform, field.Type + " for a boolean attribute"
	default:
		if field.Type == fields.TypeString {
			return TypeIdentical, "string value"
		}

		return TypeNeedsTransform, field.Type + " for a string attribute"
	}
}

func isNumericString(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)

	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}
