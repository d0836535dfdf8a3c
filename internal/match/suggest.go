package match

import (
	"fmt"
	"slices"
	"sort"

	"ocsf-mapper/internal/common"
	"ocsf-mapper/internal/fields"
	"ocsf-mapper/internal/mapping"
	"ocsf-mapper/internal/schema"
)

// SuggestConfig tunes which candidates are accepted as suggestions.
type SuggestConfig struct {
	// MinScore is the minimum combined score of an accepted candidate.
	MinScore float64
	// MinGap is the minimum score lead over the runner-up.
	MinGap float64
	// Depth is how many reference levels below the class are offered as
	// targets. Zero limits suggestions to top-level attributes.
	Depth int
	// Alternatives is the number of runner-up field names reported.
	Alternatives int
}

// DefaultSuggestConfig returns the default thresholds.
func DefaultSuggestConfig() SuggestConfig {
	return SuggestConfig{
		MinScore:     DefaultMinScore,
		MinGap:       DefaultMinGap,
		Depth:        1,
		Alternatives: 2,
	}
}

// Suggestion proposes one sample field as the source of a target path.
type Suggestion struct {
	Target        string            `json:"target"`
	Source        string            `json:"source"`
	Score         float64           `json:"score"`
	Compatibility TypeCompatibility `json:"-"`
	Verdict       string            `json:"verdict"`
	Reason        string            `json:"reason"`
	Observable    bool              `json:"observable,omitempty"`
	Alternatives  []string          `json:"alternatives,omitempty"`
}

// Suggest proposes source fields for the scalar and enum attributes of
// className. Each field is suggested for at most one target, highest score
// first. Results are ordered by target path.
func Suggest(
	catalog *schema.Catalog,
	className string,
	sample []fields.Field,
	cfg SuggestConfig,
) ([]Suggestion, error) {
	cls, ok := catalog.Class(className)
	if !ok {
		return nil, fmt.Errorf("unknown class %q", className)
	}

	var accepted []Suggestion

	for _, target := range suggestTargets(catalog, cls, "", cfg.Depth, nil) {
		candidates := RankCandidates(target.path, target.attr, sample)

		best := candidates.HighConfidence(cfg.MinScore, cfg.MinGap)
		if best == nil {
			continue
		}

		s := Suggestion{
			Target:        target.path,
			Source:        best.Field.Name,
			Score:         best.CombinedScore,
			Compatibility: best.TypeCompat.Compatibility,
			Verdict:       best.TypeCompat.Compatibility.String(),
			Reason:        best.TypeCompat.Reason,
			Observable:    best.ObservableMatch,
		}

		for _, alt := range candidates[1:].Top(cfg.Alternatives) {
			s.Alternatives = append(s.Alternatives, alt.Field.Name)
		}

		accepted = append(accepted, s)
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		if accepted[i].Score != accepted[j].Score {
			return accepted[i].Score > accepted[j].Score
		}

		return accepted[i].Target < accepted[j].Target
	})

	used := map[string]bool{}
	out := make([]Suggestion, 0, len(accepted))

	for _, s := range accepted {
		if used[s.Source] {
			continue
		}

		used[s.Source] = true
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Target < out[j].Target })

	return out, nil
}

// ToUserMappings turns suggestions into source bindings keyed by target path.
func ToUserMappings(suggestions []Suggestion) map[string]mapping.UserMapping {
	out := make(map[string]mapping.UserMapping, len(suggestions))
	for _, s := range suggestions {
		out[s.Target] = mapping.UserMapping{Source: s.Source}
	}

	return out
}

type suggestTarget struct {
	path string
	attr schema.Attribute
}

func suggestTargets(
	catalog *schema.Catalog,
	cls *schema.Class,
	prefix string,
	depth int,
	lineage []string,
) []suggestTarget {
	var out []suggestTarget

	lineage = append(lineage, cls.Name)

	for _, name := range common.SortedKeys(cls.Attributes) {
		attr := cls.Attributes[name]

		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		if prefix == "" && (mapping.IsSystemPath(path) || path == mapping.PathUnmapped) {
			continue
		}

		if ref, ok := attr.Reference(); ok {
			if depth <= 0 || attr.Array || slices.Contains(lineage, ref) {
				continue
			}

			if child, ok := catalog.Class(ref); ok {
				out = append(out, suggestTargets(catalog, child, path, depth-1, lineage)...)
			}

			continue
		}

		// Single-valued enums resolve to their only value without a source
		if attr.IsEnum() && common.IsSingle(attr.EnumValues()) {
			continue
		}

		out = append(out, suggestTarget{path: path, attr: attr})
	}

	return out
}
