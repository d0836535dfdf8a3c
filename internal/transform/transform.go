package transform

import (
	"bytes"
	"fmt"

	"github.com/segmentio/encoding/json"

	"ocsf-mapper/internal/docpath"
	"ocsf-mapper/internal/mapping"
	"ocsf-mapper/internal/observable"
)

// Output keys always written from the selected branch.
const (
	KeyClassName    = "class_name"
	KeyCategoryName = "category_name"
)

// call holds the per-input state of one Transform.
type call struct {
	input any
	raw   []byte
	// records collected from source-bound observable paths
	records []observable.Record
}

// Transform maps input through cfg. It never fails; a nil cfg yields nil.
func Transform(input any, cfg *mapping.ParserConfig) map[string]any {
	if cfg == nil {
		return nil
	}

	raw, err := encode(input)
	if err != nil {
		raw = []byte(docpath.Stringify(input))
	}

	c := &call{input: input, raw: raw}

	class, category, table := selectBranch(input, cfg)

	out := map[string]any{
		KeyClassName:    class,
		KeyCategoryName: category,
	}

	for _, path := range table.Paths() {
		c.apply(out, path, table[path])
	}

	c.mergeObservables(out)

	return out
}

// TransformJSON decodes data, transforms it and encodes the result with
// sorted keys. Only undecodable input is an error.
func TransformJSON(data []byte, cfg *mapping.ParserConfig) ([]byte, error) {
	var input any

	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to decode input document: %w", err)
	}

	out, err := encode(Transform(input, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to encode output document: %w", err)
	}

	return out, nil
}

// encode serializes v with sorted map keys and without HTML escaping, so
// "<", ">" and "&" keep their literal bytes in raw_data and its digest.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetSortMapKeys(true)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// selectBranch returns the first matching conditional, or the defaults.
func selectBranch(input any, cfg *mapping.ParserConfig) (string, string, mapping.Table) {
	for _, cond := range cfg.Conditionals {
		if docpath.Stringify(docpath.Get(input, cond.Field)) == cond.Value {
			return cond.ClassName, cond.CategoryName, cond.Mapping
		}
	}

	return cfg.SelectedClass, cfg.SelectedCategory, cfg.DefaultMapping
}

func (c *call) apply(out map[string]any, path string, m mapping.AttributeMapping) {
	var (
		v      any
		source bool
	)

	switch b := m.Binding.(type) {
	case mapping.Synthesized:
		v = c.synthesize(b.Kind)
	case mapping.Static:
		v = clone(b.Value)
	case mapping.Source:
		v, source = clone(docpath.Get(c.input, b.Path)), true
	}

	if v == nil {
		return
	}

	v = translate(v, m)
	v = coerceNumbers(v, m)

	docpath.Set(out, path, v)

	if source && m.ObservableTypeID != nil {
		c.collect(path, *m.ObservableTypeID, v)
	}
}

func (c *call) synthesize(kind mapping.SynthKind) any {
	switch kind {
	case mapping.RawPayload:
		return string(c.raw)
	case mapping.RawHash:
		return fingerprint(c.raw)
	case mapping.RawSize:
		return float64(len(c.raw))
	case mapping.ObservableList:
		return nil
	default:
		return clone(c.input)
	}
}

// collect records one observable per non-nil element, or one for a scalar.
func (c *call) collect(path string, id observable.TypeID, v any) {
	if arr, ok := v.([]any); ok {
		for _, e := range arr {
			if e != nil {
				c.records = append(c.records, observable.NewRecord(path, id, e))
			}
		}

		return
	}

	c.records = append(c.records, observable.NewRecord(path, id, v))
}

// mergeObservables writes collected records. An existing observables array
// keeps its entries; records whose name is already present are dropped.
func (c *call) mergeObservables(out map[string]any) {
	if len(c.records) == 0 {
		return
	}

	existing := docpath.Get(out, mapping.PathObservables)

	if existing == nil {
		list := make([]any, len(c.records))
		for i, r := range c.records {
			list[i] = r.Map()
		}

		out[mapping.PathObservables] = list

		return
	}

	arr, ok := existing.([]any)
	if !ok {
		return
	}

	names := map[string]bool{}

	for _, e := range arr {
		if obj, ok := e.(map[string]any); ok {
			if name, ok := obj["name"].(string); ok {
				names[name] = true
			}
		}
	}

	for _, r := range c.records {
		if !names[r.Name] {
			arr = append(arr, r.Map())
		}
	}

	out[mapping.PathObservables] = arr
}
