package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"ocsf-mapper/internal/docpath"
)

// expectation pins one value of one output line.
type expectation struct {
	Line  int    `yaml:"line"`
	Path  string `yaml:"path"`
	Value any    `yaml:"value"`
}

// TestExamples builds every examples/<name>/session.yaml, transforms its
// input.ndjson and checks the values listed in expect.yaml.
func TestExamples(t *testing.T) {
	dirs, err := filepath.Glob(filepath.Join("..", "..", "examples", "*"))
	require.NoError(t, err)
	require.NotEmpty(t, dirs)

	for _, dir := range dirs {
		t.Run(filepath.Base(dir), func(t *testing.T) {
			target := filepath.Join(t.TempDir(), "config.json")

			_, err := run(t, "", "build", "--session", filepath.Join(dir, "session.yaml"), "--out", target)
			require.NoError(t, err)

			out, err := run(t, "", "transform", "--config", target, filepath.Join(dir, "input.ndjson"))
			require.NoError(t, err)

			var docs []any

			for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
				var doc any
				require.NoError(t, json.Unmarshal([]byte(line), &doc))

				docs = append(docs, doc)
			}

			for _, want := range loadExpectations(t, filepath.Join(dir, "expect.yaml")) {
				require.Less(t, want.Line, len(docs))

				got := docpath.Get(docs[want.Line], want.Path)
				assert.Equal(t, want.Value, got, fmt.Sprintf("line %d, %s", want.Line, want.Path))
			}
		})
	}
}

// loadExpectations reads expect.yaml with values normalized to their JSON
// decoded form, so YAML integers compare equal to float64.
func loadExpectations(t *testing.T, path string) []expectation {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out []expectation
	require.NoError(t, yaml.Unmarshal(data, &out))

	for i := range out {
		raw, err := json.Marshal(out[i].Value)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &out[i].Value))
	}

	return out
}
