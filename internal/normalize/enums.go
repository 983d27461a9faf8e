package normalize

import (
	"strings"

	"caseforge/internal/types"
)

// testTypeSynonyms maps folded tokens to the closed TestType enumeration.
// Every enum member maps to itself so canonical output is a fixed point.
var testTypeSynonyms = map[string]types.TestType{
	"functional":    types.TestTypeFunctional,
	"function":      types.TestTypeFunctional,
	"integration":   types.TestTypeIntegration,
	"unit":          types.TestTypeUnit,
	"performance":   types.TestTypePerformance,
	"perf":          types.TestTypePerformance,
	"load":          types.TestTypePerformance,
	"security":      types.TestTypeSecurity,
	"usability":     types.TestTypeUsability,
	"edge_case":     types.TestTypeEdgeCase,
	"edge":          types.TestTypeEdgeCase,
	"boundary":      types.TestTypeEdgeCase,
	"negative":      types.TestTypeNegative,
	"regression":    types.TestTypeRegression,
	"smoke":         types.TestTypeSmoke,
	"sanity":        types.TestTypeSmoke,
	"acceptance":    types.TestTypeAcceptance,
	"uat":           types.TestTypeAcceptance,
	"end_to_end":    types.TestTypeIntegration,
	"e2e":           types.TestTypeIntegration,
	"accessibility": types.TestTypeUsability,
}

// prioritySynonyms maps folded tokens (including ordinals 1-4) to the closed
// Priority enumeration.
var prioritySynonyms = map[string]types.Priority{
	"critical": types.PriorityCritical,
	"1":        types.PriorityCritical,
	"p0":       types.PriorityCritical,
	"p1":       types.PriorityCritical,
	"urgent":   types.PriorityCritical,
	"blocker":  types.PriorityCritical,
	"high":     types.PriorityHigh,
	"2":        types.PriorityHigh,
	"p2":       types.PriorityHigh,
	"major":    types.PriorityHigh,
	"medium":   types.PriorityMedium,
	"med":      types.PriorityMedium,
	"3":        types.PriorityMedium,
	"p3":       types.PriorityMedium,
	"normal":   types.PriorityMedium,
	"moderate": types.PriorityMedium,
	"low":      types.PriorityLow,
	"4":        types.PriorityLow,
	"p4":       types.PriorityLow,
	"minor":    types.PriorityLow,
	"trivial":  types.PriorityLow,
}

// foldEnumToken lowercases a token and folds spaces and hyphens to
// underscores so "Edge Case", "edge-case", and "EDGE_CASE" all match.
func foldEnumToken(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// CanonicalTestType maps a free-text type token onto the closed TestType
// enumeration. It is total: unrecognized tokens return TestTypeFunctional.
func CanonicalTestType(v any) types.TestType {
	if t, ok := testTypeSynonyms[foldEnumToken(coerceString(v))]; ok {
		return t
	}
	return types.TestTypeFunctional
}

// CanonicalPriority maps a free-text or ordinal priority token onto the
// closed Priority enumeration. It is total: unrecognized tokens return
// PriorityMedium. Ordinals 1-4 map to CRITICAL..LOW.
func CanonicalPriority(v any) types.Priority {
	if p, ok := prioritySynonyms[foldEnumToken(coerceString(v))]; ok {
		return p
	}
	return types.PriorityMedium
}
