package observable

// Record is one entry of an OCSF event's observables array.
type Record struct {
	Name   string `json:"name"`
	TypeID TypeID `json:"type_id"`
	Type   string `json:"type"`
	Value  any    `json:"value,omitempty"`
}

// NewRecord builds a record for the attribute at name. The value is dropped
// for object types and for empty strings.
func NewRecord(name string, id TypeID, value any) Record {
	r := Record{Name: name, TypeID: id, Type: id.String()}

	if id.IsObjectType() {
		return r
	}

	if s, ok := value.(string); ok && s == "" {
		return r
	}

	r.Value = value

	return r
}

// Map renders the record as a JSON object for dynamic documents.
func (r Record) Map() map[string]any {
	m := map[string]any{
		"name":    r.Name,
		"type_id": float64(r.TypeID),
		"type":    r.Type,
	}

	if r.Value != nil {
		m["value"] = r.Value
	}

	return m
}
