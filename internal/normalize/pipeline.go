package normalize

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"caseforge/internal/logging"
	"caseforge/internal/types"
)

// Parse converts raw model output into canonical test cases. It never
// returns an error for malformed input: structural parsers are tried in
// sniffed order, parse failures fall through to the next candidate, and if
// zero valid records survive the fallback synthesizer manufactures exactly
// one. The result is always non-empty.
//
// hint is one of "json", "yaml", "markdown", "text", or "" for auto-detect.
func Parse(raw string, hint string) []types.TestCase {
	log := logging.Get(logging.CategoryParse)

	for _, parser := range sniffOrder(raw, hint) {
		records, ok := parser.parse(raw)
		if !ok {
			continue
		}
		cases := make([]types.TestCase, 0, len(records))
		for _, rec := range records {
			if tc, valid := buildCase(rec); valid {
				cases = append(cases, tc)
			}
		}
		if len(cases) > 0 {
			log.Debug("parsed model output",
				zap.String("parser", parser.name),
				zap.Int("records", len(cases)))
			return cases
		}
		// Structurally matched but nothing valid; keep trying.
	}

	log.Debug("no structural parser matched, synthesizing fallback record")
	return []types.TestCase{synthesizeFallback(raw)}
}

// buildCase converts one loosely-typed record into a typed TestCase. A
// record is valid when at least one of title, description, or steps is
// present; the remaining mandatory fields are default-synthesized at the
// field level.
func buildCase(rec looseRecord) (types.TestCase, bool) {
	fields := normalizeFields(rec)

	title := coerceString(fields[fieldTitle])
	description := coerceString(fields[fieldDescription])
	steps := extractSteps(fields[fieldSteps])

	if title == "" && description == "" && len(steps) == 0 {
		return types.TestCase{}, false
	}

	if title == "" {
		title = firstLine(description)
		if title == "" {
			title = fallbackTitle
		}
		title = truncateRunes(title, fallbackTitleBound)
	}
	if description == "" {
		description = title
	}
	if len(steps) == 0 {
		steps = []types.Step{
			{StepNumber: 1, Action: "Execute the test scenario", ExpectedResult: defaultExpectedResult},
		}
	}

	id := coerceString(fields[fieldID])
	if id == "" {
		id = uuid.NewString()
	}

	tc := types.TestCase{
		ID:              id,
		Title:           title,
		Description:     description,
		Type:            CanonicalTestType(fields[fieldTestType]),
		Priority:        CanonicalPriority(fields[fieldPriority]),
		Preconditions:   coerceString(fields[fieldPreconditions]),
		Steps:           steps,
		Postconditions:  coerceString(fields[fieldPostconditions]),
		ExpectedResults: coerceString(fields[fieldExpectedResults]),
		Tags:            dedupeStrings(coerceStringSlice(fields[fieldTags])),
	}
	if data, ok := asAnyMap(fields[fieldTestData]); ok && len(data) > 0 {
		tc.TestData = data
	}
	return tc, true
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			return l
		}
	}
	return ""
}
