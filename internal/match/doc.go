// Package match proposes sample fields for OCSF attribute paths.
//
// Key functions:
//   - NormalizeIdent: normalizes field names and paths for fuzzy matching
//   - Levenshtein, Similarity: rune edit distance and its 0..1 score
//   - ScoreCompatibility: scores a JSON field type against an attribute kind
//   - RankCandidates: ranks sample fields for one target path
//   - Suggest: proposes source bindings for a whole class
package match
