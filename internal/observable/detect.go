package observable

import (
	"strings"

	"ocsf-mapper/internal/docpath"
)

// Keyword sets used to disambiguate hostname-like values by field name.
// A segment matches a set when it contains any of its keywords.
var (
	userKeywords = []string{"user", "username", "login", "account", "actor", "subject", "principal"}
	hostKeywords = []string{"host", "hostname", "server", "node", "device", "endpoint", "computer", "fqdn", "domain"}
	fileKeywords = []string{"file", "path", "filename", "filepath", "exe", "process"}
)

// Detect classifies value, using hint (usually the source field name) to
// resolve hostname-like values. ok is false when the value is empty, not a
// scalar, or too ambiguous to classify.
func Detect(value any, hint string) (TypeID, bool) {
	if value == nil || !docpath.IsScalar(value) {
		return Unknown, false
	}

	// "true" is a valid hostname label; flags are never observables.
	if _, isBool := value.(bool); isBool {
		return Unknown, false
	}

	s := docpath.Stringify(value)
	if s == "" {
		return Unknown, false
	}

	for _, p := range patterns {
		if p.Regex.MatchString(s) {
			return p.TypeID, true
		}
	}

	if !hostnamePattern.MatchString(s) {
		return Unknown, false
	}

	if id, ok := fromHint(hint); ok {
		return id, true
	}

	if strings.Contains(s, ".") {
		return Hostname, true
	}

	return Unknown, false
}

// fromHint scans the hint's segments leaf first, so "user.host" resolves
// through "host" and "host.user" through "user".
func fromHint(hint string) (TypeID, bool) {
	if hint == "" {
		return Unknown, false
	}

	parts := strings.FieldsFunc(strings.ToLower(hint), func(r rune) bool {
		return r == '.' || r == '_'
	})

	for i := len(parts) - 1; i >= 0; i-- {
		part := parts[i]

		switch {
		case containsAny(part, userKeywords):
			return UserName, true
		case containsAny(part, hostKeywords):
			return Hostname, true
		case containsAny(part, fileKeywords):
			return FileName, true
		}
	}

	return Unknown, false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}

	return false
}
