package normalize

import (
	"strings"
	"unicode"
)

// Canonical field names after normalization.
const (
	fieldID              = "id"
	fieldTitle           = "title"
	fieldDescription     = "description"
	fieldTestType        = "test_type"
	fieldPriority        = "priority"
	fieldPreconditions   = "preconditions"
	fieldPostconditions  = "postconditions"
	fieldExpectedResults = "expected_results"
	fieldSteps           = "steps"
	fieldTags            = "tags"
	fieldTestData        = "test_data"
	fieldSummary         = "summary" // resolved specially, see normalizeFields
)

// fieldSynonyms maps normalized (snake_case, lowercase) keys to canonical
// field names. Keys already in canonical form are listed for clarity. The
// table is the authoritative minimum set; unknown keys are preserved under
// test_data, never dropped.
var fieldSynonyms = map[string]string{
	fieldID:     fieldID,
	"test_id":   fieldID,
	"case_id":   fieldID,
	fieldTitle:  fieldTitle,
	"name":      fieldTitle,
	"test_name": fieldTitle,

	fieldDescription: fieldDescription,
	"desc":           fieldDescription,
	"details":        fieldDescription,
	"objective":      fieldDescription,

	fieldTestType: fieldTestType,
	"type":        fieldTestType,
	"category":    fieldTestType,

	fieldPriority: fieldPriority,
	"severity":    fieldPriority,

	fieldPreconditions:   fieldPreconditions,
	"prerequisites":      fieldPreconditions,
	"preconditions_text": fieldPreconditions,
	"precondition":       fieldPreconditions,

	fieldPostconditions: fieldPostconditions,
	"postcondition":     fieldPostconditions,

	fieldExpectedResults: fieldExpectedResults,
	"expected_result":    fieldExpectedResults,
	"expected_outcome":   fieldExpectedResults,

	fieldSteps:   fieldSteps,
	"test_steps": fieldSteps,
	"procedure":  fieldSteps,

	fieldTags: fieldTags,
	"labels":  fieldTags,

	fieldTestData: fieldTestData,
	"data":        fieldTestData,
}

// normalizeKey folds CamelCase, kebab-case, and spaced keys into lowercase
// snake_case before synonym lookup: "testType" -> "test_type",
// "Expected-Result" -> "expected_result", "Test Type" -> "test_type".
func normalizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	prevLower := false
	for _, r := range key {
		switch {
		case r == '-' || r == ' ' || r == '.':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return strings.Trim(b.String(), "_")
}

// normalizeFields maps synonym keys to canonical field names. Unknown keys
// are folded into the test_data map so no information is silently lost.
// The "summary" key resolves by checking title presence first, then
// description; when both are absent summary becomes the description.
func normalizeFields(rec looseRecord) looseRecord {
	out := make(looseRecord, len(rec))
	extras := make(map[string]any)
	var summary any
	hasSummary := false

	for key, value := range rec {
		nk := normalizeKey(key)
		if nk == fieldSummary {
			summary = value
			hasSummary = true
			continue
		}
		canonical, ok := fieldSynonyms[nk]
		if !ok {
			extras[nk] = value
			continue
		}
		if canonical == fieldTestData {
			if m, isMap := asAnyMap(value); isMap {
				for k, v := range m {
					extras[normalizeKey(k)] = v
				}
				continue
			}
		}
		if _, exists := out[canonical]; !exists {
			out[canonical] = value
		} else {
			extras[nk] = value
		}
	}

	if hasSummary {
		switch {
		case out[fieldTitle] == nil || coerceString(out[fieldTitle]) == "":
			if out[fieldDescription] != nil && coerceString(out[fieldDescription]) != "" {
				out[fieldTitle] = summary
			} else {
				out[fieldDescription] = summary
			}
		case out[fieldDescription] == nil || coerceString(out[fieldDescription]) == "":
			out[fieldDescription] = summary
		default:
			extras[fieldSummary] = summary
		}
	}

	if len(extras) > 0 {
		out[fieldTestData] = extras
	}
	return out
}

// asAnyMap converts JSON- and YAML-decoded map shapes to map[string]any.
func asAnyMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[coerceString(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
