package session

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"ocsf-mapper/internal/diagnostic"
	"ocsf-mapper/internal/fields"
	"ocsf-mapper/internal/mapping"
	"ocsf-mapper/internal/schema"
)

// CurrentVersion is the session file format version.
const CurrentVersion = "1"

// Session is a saved mapping session.
type Session struct {
	Version      string                         `yaml:"version"`
	ID           string                         `yaml:"id"`
	Name         string                         `yaml:"name,omitempty"`
	Category     string                         `yaml:"category,omitempty"`
	Class        string                         `yaml:"class"`
	Sample       string                         `yaml:"sample,omitempty"`
	Mappings     map[string]mapping.UserMapping `yaml:"mappings,omitempty"`
	Conditionals []Conditional                  `yaml:"conditionals,omitempty"`
}

// Conditional is a branch selected when Field stringifies to Value.
type Conditional struct {
	Field    string                         `yaml:"field"`
	Value    string                         `yaml:"value"`
	Category string                         `yaml:"category,omitempty"`
	Class    string                         `yaml:"class"`
	Mappings map[string]mapping.UserMapping `yaml:"mappings,omitempty"`
}

// New returns an empty session with a fresh id.
func New(name string) *Session {
	return &Session{
		Version:  CurrentVersion,
		ID:       uuid.NewString(),
		Name:     name,
		Mappings: map[string]mapping.UserMapping{},
	}
}

// LoadFile loads and parses a YAML session file from the given path.
func LoadFile(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Session.
func Parse(data []byte) (*Session, error) {
	var s Session

	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session YAML: %w", err)
	}

	if err := applyDefaults(&s); err != nil {
		return nil, err
	}

	return &s, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(s *Session) error {
	if s.Version == "" {
		s.Version = CurrentVersion
	}

	if s.Version != CurrentVersion {
		return fmt.Errorf("unsupported session version %q", s.Version)
	}

	if s.ID == "" {
		s.ID = uuid.NewString()
	} else if _, err := uuid.Parse(s.ID); err != nil {
		return fmt.Errorf("invalid session id %q: %w", s.ID, err)
	}

	if s.Mappings == nil {
		s.Mappings = map[string]mapping.UserMapping{}
	}

	return nil
}

// Marshal serializes a Session to YAML.
func Marshal(s *Session) ([]byte, error) {
	return yaml.Marshal(s)
}

// WriteFile writes a Session to the given path.
func WriteFile(s *Session, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session file %s: %w", path, err)
	}

	return nil
}

// Fields parses the session's sample payload. An empty sample has no fields.
func (s *Session) Fields() ([]fields.Field, error) {
	if s.Sample == "" {
		return nil, nil
	}

	return fields.Parse([]byte(s.Sample))
}

// Request converts the session into a resolver request.
func (s *Session) Request() (mapping.Request, error) {
	fs, err := s.Fields()
	if err != nil {
		return mapping.Request{}, fmt.Errorf("session %s: %w", s.ID, err)
	}

	req := mapping.Request{
		Category: s.Category,
		Class:    s.Class,
		Mappings: s.Mappings,
		Fields:   fs,
	}

	for _, c := range s.Conditionals {
		req.Conditionals = append(req.Conditionals, mapping.BranchRequest{
			Field:    c.Field,
			Value:    c.Value,
			Category: c.Category,
			Class:    c.Class,
			Mappings: c.Mappings,
		})
	}

	return req, nil
}

// Build resolves the session against catalog. An invalid sample is an
// error; everything else is reported as diagnostics.
func (s *Session) Build(catalog *schema.Catalog) (*mapping.ParserConfig, *diagnostic.Diagnostics, error) {
	return s.BuildWith(mapping.NewResolver(catalog, mapping.DefaultResolverConfig(), nil))
}

// BuildWith resolves the session with a configured resolver.
func (s *Session) BuildWith(r *mapping.Resolver) (*mapping.ParserConfig, *diagnostic.Diagnostics, error) {
	req, err := s.Request()
	if err != nil {
		return nil, nil, err
	}

	cfg, diags := r.BuildConfig(req)

	return cfg, diags, nil
}
