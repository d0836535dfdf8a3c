package match

import (
	"sort"
	"testing"

	"ocsf-mapper/internal/fields"
	"ocsf-mapper/internal/observable"
	"ocsf-mapper/internal/schema"
)

func ipAttribute() schema.Attribute {
	return schema.Attribute{
		Name:       "ip",
		Kind:       schema.Scalar{Type: "ip_t"},
		Observable: observable.IPAddress.Ptr(),
	}
}

func TestRankCandidates(t *testing.T) {
	sourceFields := []fields.Field{
		{Name: "src_ip", Type: fields.TypeString, Example: "10.0.0.5", Observable: true, ObservableTypeID: observable.IPAddress},
		{Name: "dst_ip", Type: fields.TypeString, Example: "10.0.0.6", Observable: true, ObservableTypeID: observable.IPAddress},
		{Name: "src_endpoint_ip", Type: fields.TypeString, Example: "10.0.0.5", Observable: true, ObservableTypeID: observable.IPAddress},
		{Name: "port", Type: fields.TypeNumber, Example: 22.0},
		{Name: "meta", Type: fields.TypeObject},
	}

	candidates := RankCandidates("src_endpoint.ip", ipAttribute(), sourceFields)

	// Should have 4 candidates (object field filtered out)
	if len(candidates) != 4 {
		t.Fatalf("Expected 4 candidates, got %d", len(candidates))
	}

	// Best match should be "src_endpoint_ip" (same path after normalization)
	if candidates[0].Field.Name != "src_endpoint_ip" {
		t.Errorf("Expected best match to be 'src_endpoint_ip', got '%s'", candidates[0].Field.Name)
	}

	if candidates[0].CombinedScore < 0.99 {
		t.Errorf("Expected full score for exact match, got %f", candidates[0].CombinedScore)
	}

	if !candidates[0].ObservableMatch {
		t.Error("Expected observable match for an IP field")
	}

	// src_ip shares the prefix with the target, dst_ip does not
	if candidates[1].Field.Name != "src_ip" {
		t.Errorf("Expected second match to be 'src_ip', got '%s'", candidates[1].Field.Name)
	}

	if last := candidates[len(candidates)-1]; last.Field.Name != "port" ||
		last.TypeCompat.Compatibility != TypeNeedsTransform {
		t.Errorf("Expected 'port' last with needs_transform, got '%s' (%s)",
			last.Field.Name, last.TypeCompat.Compatibility)
	}
}

func TestRankCandidates_ReferenceTarget(t *testing.T) {
	attr := schema.Attribute{Name: "user", Kind: schema.Reference{Class: "user"}}
	sourceFields := []fields.Field{
		{Name: "user", Type: fields.TypeObject},
		{Name: "user.name", Type: fields.TypeString, Example: "jdoe"},
	}

	candidates := RankCandidates("user", attr, sourceFields)
	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(candidates))
	}

	if candidates[0].Field.Name != "user" || candidates[0].TypeCompat.Compatibility != TypeConvertible {
		t.Errorf("Expected object field 'user' first, got '%s' (%s)",
			candidates[0].Field.Name, candidates[0].TypeCompat.Compatibility)
	}
}

func TestCandidateList_Sorting(t *testing.T) {
	candidates := CandidateList{
		{Field: fields.Field{Name: "FieldA"}, CombinedScore: 0.5},
		{Field: fields.Field{Name: "FieldC"}, CombinedScore: 0.9},
		{Field: fields.Field{Name: "FieldB"}, CombinedScore: 0.7},
		{Field: fields.Field{Name: "FieldD"}, CombinedScore: 0.7}, // Same score as FieldB
	}

	sort.Sort(candidates)

	want := []string{"FieldC", "FieldB", "FieldD", "FieldA"}
	for i, name := range want {
		if candidates[i].Field.Name != name {
			t.Errorf("position %d: got '%s', want '%s'", i, candidates[i].Field.Name, name)
		}
	}

	best := candidates.Best()
	if best == nil || best.Field.Name != "FieldC" {
		t.Errorf("Expected best candidate 'FieldC', got %v", best)
	}

	if (CandidateList{}).Best() != nil {
		t.Error("Expected nil best for an empty list")
	}
}

func TestCandidateList_Top(t *testing.T) {
	candidates := CandidateList{
		{Field: fields.Field{Name: "A"}, CombinedScore: 0.9},
		{Field: fields.Field{Name: "B"}, CombinedScore: 0.8},
		{Field: fields.Field{Name: "C"}, CombinedScore: 0.7},
	}

	top2 := candidates.Top(2)
	if len(top2) != 2 {
		t.Errorf("Expected 2 candidates, got %d", len(top2))
	}

	// Request more than available
	top10 := candidates.Top(10)
	if len(top10) != 3 {
		t.Errorf("Expected 3 candidates (all), got %d", len(top10))
	}
}

func TestCandidateList_IsAmbiguous(t *testing.T) {
	tests := []struct {
		name      string
		scores    []float64
		threshold float64
		expected  bool
	}{
		{
			name:      "clear winner",
			scores:    []float64{0.9, 0.5},
			threshold: 0.1,
			expected:  false,
		},
		{
			name:      "ambiguous",
			scores:    []float64{0.9, 0.85},
			threshold: 0.1,
			expected:  true,
		},
		{
			name:      "single candidate",
			scores:    []float64{0.9},
			threshold: 0.1,
			expected:  false,
		},
		{
			name:      "no candidates",
			scores:    []float64{},
			threshold: 0.1,
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var candidates CandidateList
			for i, score := range tt.scores {
				candidates = append(candidates, Candidate{
					Field:   fields.Field{Name: string(rune('A' + i))},
					CombinedScore: score,
				})
			}

			if got := candidates.IsAmbiguous(tt.threshold); got != tt.expected {
				t.Errorf("IsAmbiguous() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCandidateList_AboveThreshold(t *testing.T) {
	candidates := CandidateList{
		{Field: fields.Field{Name: "A"}, CombinedScore: 0.9},
		{Field: fields.Field{Name: "B"}, CombinedScore: 0.7},
		{Field: fields.Field{Name: "C"}, CombinedScore: 0.5},
		{Field: fields.Field{Name: "D"}, CombinedScore: 0.3},
	}

	above := candidates.AboveThreshold(0.6)
	if len(above) != 2 {
		t.Errorf("Expected 2 candidates above 0.6, got %d", len(above))
	}
}

func TestCandidateList_HighConfidence(t *testing.T) {
	tests := []struct {
		name     string
		cands    CandidateList
		minScore float64
		minGap   float64
		wantNil  bool
	}{
		{
			name: "high confidence",
			cands: CandidateList{
				{
					Field:   fields.Field{Name: "A"},
					CombinedScore: 0.95,
					TypeCompat:    TypeCompatibilityResult{Compatibility: TypeIdentical},
				},
				{
					Field:   fields.Field{Name: "B"},
					CombinedScore: 0.5,
					TypeCompat:    TypeCompatibilityResult{Compatibility: TypeConvertible},
				},
			},
			minScore: 0.7,
			minGap:   0.15,
			wantNil:  false,
		},
		{
			name: "too close",
			cands: CandidateList{
				{
					Field:   fields.Field{Name: "A"},
					CombinedScore: 0.9,
					TypeCompat:    TypeCompatibilityResult{Compatibility: TypeIdentical},
				},
				{
					Field:   fields.Field{Name: "B"},
					CombinedScore: 0.85,
					TypeCompat:    TypeCompatibilityResult{Compatibility: TypeIdentical},
				},
			},
			minScore: 0.7,
			minGap:   0.15,
			wantNil:  true,
		},
		{
			name: "below min score",
			cands: CandidateList{
				{
					Field:   fields.Field{Name: "A"},
					CombinedScore: 0.5,
					TypeCompat:    TypeCompatibilityResult{Compatibility: TypeIdentical},
				},
			},
			minScore: 0.7,
			minGap:   0.15,
			wantNil:  true,
		},
		{
			name: "incompatible type",
			cands: CandidateList{
				{
					Field:   fields.Field{Name: "A"},
					CombinedScore: 0.95,
					TypeCompat:    TypeCompatibilityResult{Compatibility: TypeIncompatible},
				},
			},
			minScore: 0.7,
			minGap:   0.15,
			wantNil:  true,
		},
		{
			name:     "empty list",
			cands:    CandidateList{},
			minScore: 0.7,
			minGap:   0.15,
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.cands.HighConfidence(tt.minScore, tt.minGap)
			if (result == nil) != tt.wantNil {
				t.Errorf("HighConfidence() returned nil=%v, want nil=%v", result == nil, tt.wantNil)
			}
		})
	}
}

func TestCalculateCombinedScore(t *testing.T) {
	tests := []struct {
		nameScore       float64
		typeCompat      TypeCompatibility
		observableMatch bool
		minScore        float64
		maxScore        float64
	}{
		// Perfect match
		{1.0, TypeIdentical, false, 0.99, 1.01},
		// Bonus is capped
		{1.0, TypeIdentical, true, 0.99, 1.01},
		// Good name, identical type
		{0.8, TypeIdentical, false, 0.85, 0.95},
		// Good name, identical type, observable match
		{0.8, TypeIdentical, true, 0.97, 0.99},
		// Perfect name, needs transform
		{1.0, TypeNeedsTransform, false, 0.7, 0.8},
		// No name match, identical type
		{0.0, TypeIdentical, false, 0.35, 0.45},
		// No match at all
		{0.0, TypeIncompatible, false, -0.01, 0.01},
	}

	for i, tt := range tests {
		score := calculateCombinedScore(tt.nameScore, tt.typeCompat, tt.observableMatch)
		if score < tt.minScore || score > tt.maxScore {
			t.Errorf("Test %d: calculateCombinedScore(%f, %v, %v) = %f, want in [%f, %f]",
				i, tt.nameScore, tt.typeCompat, tt.observableMatch, score, tt.minScore, tt.maxScore)
		}
	}
}

func TestRankCandidates_Determinism(t *testing.T) {
	// Run ranking multiple times to verify deterministic ordering
	attr := schema.Attribute{Name: "value", Kind: schema.Scalar{Type: "integer_t"}}

	sourceFields := []fields.Field{
		{Name: "valueB", Type: fields.TypeNumber, Example: 1.0},
		{Name: "valueA", Type: fields.TypeNumber, Example: 1.0},
		{Name: "valueC", Type: fields.TypeNumber, Example: 1.0},
	}

	// All have equal scores, so tie-breaker (alphabetical) should be consistent
	firstRun := RankCandidates("value", attr, sourceFields)
	if firstRun[0].Field.Name != "valueA" {
		t.Errorf("Expected 'valueA' first, got '%s'", firstRun[0].Field.Name)
	}

	for i := 0; i < 10; i++ {
		nextRun := RankCandidates("value", attr, sourceFields)
		for j := range firstRun {
			if firstRun[j].Field.Name != nextRun[j].Field.Name {
				t.Errorf("Run %d: position %d has '%s', expected '%s'",
					i, j, nextRun[j].Field.Name, firstRun[j].Field.Name)
			}
		}
	}
}
