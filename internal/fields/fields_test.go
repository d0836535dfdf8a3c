package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocsf-mapper/internal/observable"
)

const loginSample = `{
	"event_type": "login",
	"user": {"name": "jdoe", "email": "jdoe@example.com"},
	"src_ip": "10.1.2.3",
	"success": true,
	"attempts": 3,
	"session": null,
	"tags": ["a", "b"],
	"answers": [{"host": "web01", "ttl": 60}, {"host": "db01"}],
	"empty": [],
	"note": "quote \"inside\""
}`

func TestParse_DocumentOrder(t *testing.T) {
	fields, err := Parse([]byte(loginSample))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"event_type",
		"user",
		"user.name",
		"user.email",
		"src_ip",
		"success",
		"attempts",
		"session",
		"tags",
		"answers",
		"answers[].host",
		"answers[].ttl",
		"empty",
		"note",
	}, Names(fields))
}

func TestParse_TypesAndExamples(t *testing.T) {
	fields, err := Parse([]byte(loginSample))
	require.NoError(t, err)

	idx := Index(fields)

	tests := []struct {
		name     string
		wantType string
		example  any
	}{
		{"event_type", TypeString, "login"},
		{"user", TypeObject, nil},
		{"success", TypeBoolean, true},
		{"attempts", TypeNumber, 3.0},
		{"session", TypeNull, nil},
		{"tags", TypeArray, nil},
		{"answers[].ttl", TypeNumber, 60.0},
		{"note", TypeString, `quote "inside"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := idx[tt.name]
			require.True(t, ok)
			assert.Equal(t, tt.wantType, f.Type)
			assert.Equal(t, tt.example, f.Example)
		})
	}

	assert.True(t, idx["session"].IsScalar())
	assert.False(t, idx["user"].IsScalar())
	assert.False(t, idx["tags"].IsScalar())
}

func TestParse_Observables(t *testing.T) {
	fields, err := Parse([]byte(loginSample))
	require.NoError(t, err)

	idx := Index(fields)

	tests := []struct {
		name   string
		want   observable.TypeID
		wantOK bool
	}{
		{"src_ip", observable.IPAddress, true},
		{"user.email", observable.EmailAddress, true},
		{"user.name", observable.UserName, true},
		{"answers[].host", observable.Hostname, true},
		{"event_type", observable.Unknown, false},
		{"success", observable.Unknown, false},
		{"attempts", observable.Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := idx[tt.name]
			assert.Equal(t, tt.wantOK, f.Observable)
			assert.Equal(t, tt.want, f.ObservableTypeID)
		})
	}
}

func TestParse_RootArray(t *testing.T) {
	fields, err := Parse([]byte(`[{"id": 1, "host": {"name": "x"}}]`))
	require.NoError(t, err)

	assert.Equal(t, []string{"[].id", "[].host", "[].host.name"}, Names(fields))
}

func TestParse_Invalid(t *testing.T) {
	for _, sample := range []string{``, `{`, `"text"`, `42`, `{"a": }`} {
		_, err := Parse([]byte(sample))
		assert.Error(t, err, sample)
	}
}
