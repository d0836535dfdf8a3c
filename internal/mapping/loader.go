package mapping

import (
	"fmt"
	"os"

	"github.com/segmentio/encoding/json"
)

// LoadConfigFile loads a ParserConfig from a JSON file.
func LoadConfigFile(path string) (*ParserConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parser config %s: %w", path, err)
	}

	return UnmarshalConfig(data)
}

// UnmarshalConfig decodes a ParserConfig.
func UnmarshalConfig(data []byte) (*ParserConfig, error) {
	var cfg ParserConfig

	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse parser config: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults makes decoded configs safe to replay.
func applyDefaults(cfg *ParserConfig) {
	if cfg.DefaultMapping == nil {
		cfg.DefaultMapping = Table{}
	}

	for i := range cfg.Conditionals {
		if cfg.Conditionals[i].Mapping == nil {
			cfg.Conditionals[i].Mapping = Table{}
		}
	}
}

// MarshalConfig serializes a ParserConfig as indented JSON with sorted keys.
func MarshalConfig(cfg *ParserConfig) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "  ")
}

// WriteConfigFile writes a ParserConfig to the given path.
func WriteConfigFile(cfg *ParserConfig, path string) error {
	data, err := MarshalConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal parser config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write parser config %s: %w", path, err)
	}

	return nil
}
