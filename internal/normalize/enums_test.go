package normalize

import (
	"testing"

	"caseforge/internal/types"
)

func TestCanonicalTestType(t *testing.T) {
	tests := []struct {
		in   any
		want types.TestType
	}{
		{"functional", types.TestTypeFunctional},
		{"Edge Case", types.TestTypeEdgeCase},
		{"edge-case", types.TestTypeEdgeCase},
		{"EDGE_CASE", types.TestTypeEdgeCase},
		{"boundary", types.TestTypeEdgeCase},
		{"e2e", types.TestTypeIntegration},
		{"uat", types.TestTypeAcceptance},
		{"load", types.TestTypePerformance},
		{"sanity", types.TestTypeSmoke},
		// Totality: anything unrecognized maps to the functional default.
		{"exploratory", types.TestTypeFunctional},
		{"", types.TestTypeFunctional},
		{nil, types.TestTypeFunctional},
		{42, types.TestTypeFunctional},
	}
	for _, tt := range tests {
		if got := CanonicalTestType(tt.in); got != tt.want {
			t.Errorf("CanonicalTestType(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalPriority(t *testing.T) {
	tests := []struct {
		in   any
		want types.Priority
	}{
		{"critical", types.PriorityCritical},
		{"P0", types.PriorityCritical},
		{"blocker", types.PriorityCritical},
		{1, types.PriorityCritical},
		{"2", types.PriorityHigh},
		{"major", types.PriorityHigh},
		{3, types.PriorityMedium},
		{"normal", types.PriorityMedium},
		{4, types.PriorityLow},
		{"trivial", types.PriorityLow},
		// Totality: anything unrecognized maps to the medium default.
		{"someday", types.PriorityMedium},
		{"", types.PriorityMedium},
		{nil, types.PriorityMedium},
		{99, types.PriorityMedium},
	}
	for _, tt := range tests {
		if got := CanonicalPriority(tt.in); got != tt.want {
			t.Errorf("CanonicalPriority(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Every enum member must map to itself so canonical output survives a
// second pass through the canonicalizer unchanged.
func TestCanonical_FixedPoint(t *testing.T) {
	for _, want := range testTypeSynonyms {
		if got := CanonicalTestType(string(want)); got != want {
			t.Errorf("CanonicalTestType(%q) = %q, not a fixed point", want, got)
		}
	}
	for _, want := range prioritySynonyms {
		if got := CanonicalPriority(string(want)); got != want {
			t.Errorf("CanonicalPriority(%q) = %q, not a fixed point", want, got)
		}
	}
}
