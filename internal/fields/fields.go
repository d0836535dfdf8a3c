package fields

import (
	"errors"
	"fmt"

	"github.com/buger/jsonparser"

	"ocsf-mapper/internal/docpath"
	"ocsf-mapper/internal/observable"
)

// Field types, as reported for JSON values.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
	TypeNull    = "null"
)

// ErrInvalidSample is returned when the sample is not a JSON object or array.
var ErrInvalidSample = errors.New("sample must be a JSON object or array")

// Field is one addressable field of a sample payload.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
	// Example holds the sample value for scalars, nil for containers.
	Example any `json:"example,omitempty"`
	// Observable is set when Example was classified by the detector.
	Observable       bool              `json:"observable,omitempty"`
	ObservableTypeID observable.TypeID `json:"observableTypeId,omitempty"`
}

// IsScalar returns true for string, number, boolean and null fields.
func (f Field) IsScalar() bool {
	return f.Type != TypeObject && f.Type != TypeArray
}

// Parse walks sample in document order and returns its fields.
func Parse(sample []byte) ([]Field, error) {
	value, dataType, _, err := jsonparser.Get(sample)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sample: %w", err)
	}

	var out []Field

	switch dataType {
	case jsonparser.Object:
		err = walkObject(value, "", &out)
	case jsonparser.Array:
		err = walkFirstObject(value, "[]", &out)
	default:
		return nil, ErrInvalidSample
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse sample: %w", err)
	}

	return out, nil
}

func walkObject(data []byte, prefix string, out *[]Field) error {
	return jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil {
			return err
		}

		path := docpath.Join(prefix, name)

		field, err := newField(path, value, dataType)
		if err != nil {
			return err
		}

		*out = append(*out, field)

		switch dataType {
		case jsonparser.Object:
			return walkObject(value, path, out)
		case jsonparser.Array:
			return walkFirstObject(value, path+"[]", out)
		default:
			return nil
		}
	})
}

// walkFirstObject descends into the first element of an array when that
// element is an object. Other arrays contribute no sub-fields.
func walkFirstObject(data []byte, path string, out *[]Field) error {
	first, dataType, _, err := jsonparser.Get(data, "[0]")
	if err != nil {
		if errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return nil
		}

		return err
	}

	if dataType != jsonparser.Object {
		return nil
	}

	return walkObject(first, path, out)
}

func newField(name string, raw []byte, dataType jsonparser.ValueType) (Field, error) {
	f := Field{Name: name}

	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return f, err
		}

		f.Type, f.Example = TypeString, s
	case jsonparser.Number:
		n, err := jsonparser.ParseFloat(raw)
		if err != nil {
			return f, err
		}

		f.Type, f.Example = TypeNumber, n
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return f, err
		}

		f.Type, f.Example = TypeBoolean, b
	case jsonparser.Object:
		f.Type = TypeObject
	case jsonparser.Array:
		f.Type = TypeArray
	default:
		f.Type = TypeNull
	}

	if id, ok := observable.Detect(f.Example, name); ok {
		f.Observable, f.ObservableTypeID = true, id
	}

	return f, nil
}

// Names returns the field names in order.
func Names(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}

	return out
}

// Index returns the fields keyed by name.
func Index(fields []Field) map[string]Field {
	out := make(map[string]Field, len(fields))
	for _, f := range fields {
		out[f.Name] = f
	}

	return out
}
