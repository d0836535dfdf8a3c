package match

import (
	"sort"

	"ocsf-mapper/internal/fields"
	"ocsf-mapper/internal/schema"
)

// Candidate represents a potential mapping from a sample field to a target
// attribute path.
type Candidate struct {
	Field      fields.Field
	TargetPath string
	Attribute  schema.Attribute

	// Scoring components
	NameScore  float64                 // Normalized Levenshtein similarity (0-1)
	TypeCompat TypeCompatibilityResult // Type compatibility result
	// ObservableMatch is set when the field's detected observable type equals
	// the attribute's default observable type.
	ObservableMatch bool

	// Combined score for ranking (higher is better)
	CombinedScore float64

	// Metadata for debugging/explanation
	NormalizedSourceName string
	NormalizedTargetName string
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Partial matches are discounted so an exact path match always ranks first:
// "user.name" must beat "src_endpoint.name" and "user_uid" for "user.name".
const (
	strippedWeight = 0.95
	leafWeight     = 0.9
)

// RankCandidates finds and ranks potential sample fields for a target
// attribute path. Returns candidates sorted by combined score (descending).
func RankCandidates(targetPath string, attr schema.Attribute, sourceFields []fields.Field) CandidateList {
	var candidates CandidateList

	targetNorm := NormalizeIdent(targetPath)
	targetNormStripped := NormalizeIdentWithSuffixStrip(targetPath)
	targetLeaf := NormalizeIdent(Leaf(targetPath))

	_, isRef := attr.Reference()

	for _, field := range sourceFields {
		// Containers are only offered to object attributes
		if field.Type == fields.TypeObject && !isRef {
			continue
		}

		sourceNorm := NormalizeIdent(field.Name)

		// Calculate name similarity (best of full path, suffix-stripped and leaf)
		nameScore := max(
			Similarity(sourceNorm, targetNorm),
			Similarity(NormalizeIdentWithSuffixStrip(field.Name), targetNormStripped)*strippedWeight,
			Similarity(NormalizeIdent(Leaf(field.Name)), targetLeaf)*leafWeight,
		)

		typeCompat := ScoreCompatibility(field, attr)

		observableMatch := attr.Observable != nil && field.Observable &&
			field.ObservableTypeID == *attr.Observable

		candidates = append(candidates, Candidate{
			Field:                field,
			TargetPath:           targetPath,
			Attribute:            attr,
			NameScore:            nameScore,
			TypeCompat:           typeCompat,
			ObservableMatch:      observableMatch,
			CombinedScore:        calculateCombinedScore(nameScore, typeCompat.Compatibility, observableMatch),
			NormalizedSourceName: sourceNorm,
			NormalizedTargetName: targetNorm,
		})
	}

	// Sort by combined score (descending), then by name for determinism
	sort.Sort(candidates)

	return candidates
}

// calculateCombinedScore computes a combined score from name similarity and type compatibility.
// Weights:
//   - Name similarity: 60% (0.0-0.6)
//   - Type compatibility: 40% (0.0-0.4)
//   - Observable type match: +0.1, capped at 1.0
func calculateCombinedScore(nameScore float64, typeCompat TypeCompatibility, observableMatch bool) float64 {
	const (
		nameWeight      = 0.6
		typeWeight      = 0.4
		observableBonus = 0.1
	)

	// Normalize type compatibility to 0-1 range
	var typeScore float64
	switch typeCompat {
	case TypeIdentical:
		typeScore = 1.0
	case TypeAssignable:
		typeScore = 0.9
	case TypeConvertible:
		typeScore = 0.7
	case TypeNeedsTransform:
		typeScore = 0.4
	case TypeIncompatible:
		typeScore = 0.0
	}

	score := nameScore*nameWeight + typeScore*typeWeight
	if observableMatch {
		score = min(score+observableBonus, 1.0)
	}

	return score
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by combined score descending, then by field name for determinism.
func (c CandidateList) Less(i, j int) bool {
	// Higher score comes first
	if c[i].CombinedScore != c[j].CombinedScore {
		return c[i].CombinedScore > c[j].CombinedScore
	}
	// Tie-breaker: alphabetical by field name
	return c[i].Field.Name < c[j].Field.Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}
	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}
	return &c[0]
}

// IsAmbiguous returns true if the top two candidates are within the threshold.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}
	diff := c[0].CombinedScore - c[1].CombinedScore
	return diff < threshold
}

// AboveThreshold returns candidates with combined score above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList
	for _, cand := range c {
		if cand.CombinedScore >= threshold {
			result = append(result, cand)
		}
	}
	return result
}

// HighConfidence returns the best candidate if it's significantly better than alternatives.
// Returns nil if no clear winner exists.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	if len(c) == 0 {
		return nil
	}
	best := &c[0]

	// Must meet minimum score threshold
	if best.CombinedScore < minScore {
		return nil
	}

	// Must be compatible (at least needs transform)
	if best.TypeCompat.Compatibility < TypeNeedsTransform {
		return nil
	}

	// If there's a second candidate, must have sufficient gap
	if len(c) > 1 {
		gap := c[0].CombinedScore - c[1].CombinedScore
		if gap < minGap {
			return nil
		}
	}

	return best
}

// Confidence thresholds for auto-accepting matches.
const (
	// DefaultMinScore is the minimum combined score for auto-acceptance.
	DefaultMinScore = 0.7
	// DefaultMinGap is the minimum score gap between top candidates.
	DefaultMinGap = 0.15
	// DefaultAmbiguityThreshold is the score difference that marks ambiguity.
	DefaultAmbiguityThreshold = 0.1
)
