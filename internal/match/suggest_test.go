package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocsf-mapper/internal/fields"
	"ocsf-mapper/internal/mapping"
	"ocsf-mapper/internal/schema"
)

const loginSample = `{
	"time": 1700000000,
	"src_ip": "10.0.0.5",
	"user_name": "jdoe",
	"status": "ok",
	"message": "login ok",
	"mfa": true
}`

func loadCatalog(t *testing.T) *schema.Catalog {
	t.Helper()

	catalog, _, err := schema.LoadFile("../schema/testdata/mini_schema.json")
	require.NoError(t, err)

	return catalog
}

func loginFields(t *testing.T) []fields.Field {
	t.Helper()

	fs, err := fields.Parse([]byte(loginSample))
	require.NoError(t, err)

	return fs
}

func suggested(suggestions []Suggestion) map[string]string {
	out := map[string]string{}
	for _, s := range suggestions {
		out[s.Target] = s.Source
	}

	return out
}

func TestSuggest(t *testing.T) {
	suggestions, err := Suggest(loadCatalog(t), "authentication", loginFields(t), DefaultSuggestConfig())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"is_mfa":          "mfa",
		"message":         "message",
		"src_endpoint.ip": "src_ip",
		"status_id":       "status",
		"time":            "time",
		"user.name":       "user_name",
	}, suggested(suggestions))

	for i := 1; i < len(suggestions); i++ {
		assert.Less(t, suggestions[i-1].Target, suggestions[i].Target)
	}

	byTarget := map[string]Suggestion{}
	for _, s := range suggestions {
		byTarget[s.Target] = s
	}

	assert.True(t, byTarget["src_endpoint.ip"].Observable)
	assert.Equal(t, VerdictNeedsTransform, byTarget["status_id"].Verdict)
	assert.Equal(t, VerdictIdentical, byTarget["time"].Verdict)
	assert.InDelta(t, 1.0, byTarget["message"].Score, 0.001)
	assert.Len(t, byTarget["message"].Alternatives, 2)
}

func TestSuggest_SkipsSystemAndFixedPaths(t *testing.T) {
	sample := `{"raw_data": "x", "class_uid": 1, "unmapped": "y", "observables": "z"}`

	fs, err := fields.Parse([]byte(sample))
	require.NoError(t, err)

	suggestions, err := Suggest(loadCatalog(t), "authentication", fs, DefaultSuggestConfig())
	require.NoError(t, err)

	for _, s := range suggestions {
		assert.NotContains(t, []string{"raw_data", "class_uid", "category_uid", "unmapped", "observables"}, s.Target)
	}
}

func TestSuggest_TopLevelOnly(t *testing.T) {
	cfg := DefaultSuggestConfig()
	cfg.Depth = 0

	suggestions, err := Suggest(loadCatalog(t), "authentication", loginFields(t), cfg)
	require.NoError(t, err)

	for _, s := range suggestions {
		assert.NotContains(t, s.Target, ".")
	}

	assert.Equal(t, "time", suggested(suggestions)["time"])
}

func TestSuggest_Thresholds(t *testing.T) {
	cfg := DefaultSuggestConfig()
	cfg.MinScore = 0.99

	suggestions, err := Suggest(loadCatalog(t), "authentication", loginFields(t), cfg)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"message":   "message",
		"time":      "time",
		"user.name": "user_name",
	}, suggested(suggestions))
}

func TestSuggest_UnknownClass(t *testing.T) {
	_, err := Suggest(loadCatalog(t), "nope", nil, DefaultSuggestConfig())
	require.Error(t, err)
}

func TestSuggest_NoFields(t *testing.T) {
	suggestions, err := Suggest(loadCatalog(t), "authentication", nil, DefaultSuggestConfig())
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestToUserMappings(t *testing.T) {
	got := ToUserMappings([]Suggestion{
		{Target: "time", Source: "ts"},
		{Target: "user.name", Source: "user_name"},
	})

	assert.Equal(t, map[string]mapping.UserMapping{
		"time":      {Source: "ts"},
		"user.name": {Source: "user_name"},
	}, got)
}
