package normalize

import (
	"regexp"
	"strings"

	"caseforge/internal/types"
)

// defaultExpectedResult is the placeholder used when the source omitted an
// expected result for a step.
const defaultExpectedResult = "Step completes successfully"

// stepSource is the closed sum over the shapes a raw "steps" value can take.
// Classification happens once at ingestion; each variant has exactly one
// extraction function.
type stepSource interface{ isStepSource() }

type stringStep string      // one plain string per step
type objectStep looseRecord // structured step object
type freeTextBlock string   // multi-line block from markdown/plain text

func (stringStep) isStepSource()    {}
func (objectStep) isStepSource()    {}
func (freeTextBlock) isStepSource() {}

// classifyStepSources resolves the raw steps value into the closed sum.
func classifyStepSources(v any) []stepSource {
	switch s := v.(type) {
	case nil:
		return nil
	case []any:
		sources := make([]stepSource, 0, len(s))
		for _, item := range s {
			if m, ok := asAnyMap(item); ok {
				sources = append(sources, objectStep(m))
				continue
			}
			if str := coerceString(item); str != "" {
				sources = append(sources, stringStep(str))
			}
		}
		return sources
	case string:
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return []stepSource{freeTextBlock(s)}
	default:
		if str := coerceString(v); str != "" {
			return []stepSource{stringStep(str)}
		}
		return nil
	}
}

// extractSteps produces the ordered step sequence from any accepted shape.
// Step numbers are renumbered to a contiguous 1..N sequence regardless of
// source numbering.
func extractSteps(v any) []types.Step {
	var steps []types.Step
	for _, src := range classifyStepSources(v) {
		switch s := src.(type) {
		case stringStep:
			steps = append(steps, extractStringStep(s))
		case objectStep:
			if st, ok := extractObjectStep(s); ok {
				steps = append(steps, st)
			}
		case freeTextBlock:
			steps = append(steps, extractFreeTextSteps(s)...)
		}
	}
	renumberSteps(steps)
	return steps
}

func renumberSteps(steps []types.Step) {
	for i := range steps {
		steps[i].StepNumber = i + 1
	}
}

func extractStringStep(s stringStep) types.Step {
	action, expected := splitActionExpected(string(s))
	return types.Step{Action: action, ExpectedResult: expected}
}

// Step-object synonym keys, checked in order after key normalization.
var (
	stepActionKeys   = []string{"action", "step", "description", "instruction"}
	stepExpectedKeys = []string{"expected_result", "expected", "result", "expected_outcome"}
	stepDataKeys     = []string{"test_data", "data"}
)

func extractObjectStep(s objectStep) (types.Step, bool) {
	folded := make(looseRecord, len(s))
	for k, v := range s {
		folded[normalizeKey(k)] = v
	}

	var step types.Step
	for _, key := range stepActionKeys {
		if a := coerceString(folded[key]); a != "" {
			step.Action = a
			break
		}
	}
	if step.Action == "" {
		return types.Step{}, false
	}
	for _, key := range stepExpectedKeys {
		if e := coerceString(folded[key]); e != "" {
			step.ExpectedResult = e
			break
		}
	}
	if step.ExpectedResult == "" {
		step.ExpectedResult = defaultExpectedResult
	}
	for _, key := range stepDataKeys {
		if m, ok := asAnyMap(folded[key]); ok && len(m) > 0 {
			step.TestData = m
			break
		}
	}
	return step, true
}

var (
	numberedStepRe = regexp.MustCompile(`^\s*\d+[.)]\s*(.+)$`)
	labeledStepRe  = regexp.MustCompile(`(?i)^\s*step\s+\d+\s*[:.]\s*(.+)$`)
)

// extractFreeTextSteps splits a free-text block into steps. Line rules are
// applied in priority order: numbered-list syntax, "Step N:" labels,
// "action : expected", then whole-line action with the default expected
// result as last resort.
func extractFreeTextSteps(block freeTextBlock) []types.Step {
	var steps []types.Step
	for _, line := range strings.Split(string(block), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var action, expected string
		if m := numberedStepRe.FindStringSubmatch(line); m != nil {
			action, expected = splitActionExpected(m[1])
		} else if m := labeledStepRe.FindStringSubmatch(line); m != nil {
			action, expected = splitActionExpected(m[1])
		} else if a, e, ok := splitColonStep(line); ok {
			action, expected = a, e
		} else {
			action, expected = line, defaultExpectedResult
		}
		if action == "" {
			continue
		}
		steps = append(steps, types.Step{Action: action, ExpectedResult: expected})
	}
	return steps
}

// splitActionExpected splits "action -> expected" or "action - expected"
// content. The arrow form wins; the dash form requires surrounding spaces so
// hyphenated words survive.
func splitActionExpected(content string) (string, string) {
	content = strings.TrimSpace(content)
	if idx := strings.Index(content, "->"); idx >= 0 {
		action := strings.TrimSpace(content[:idx])
		expected := strings.TrimSpace(content[idx+2:])
		if action != "" && expected != "" {
			return action, expected
		}
	}
	if idx := strings.Index(content, " - "); idx >= 0 {
		action := strings.TrimSpace(content[:idx])
		expected := strings.TrimSpace(content[idx+3:])
		if action != "" && expected != "" {
			return action, expected
		}
	}
	if content == "" {
		return "", defaultExpectedResult
	}
	return content, defaultExpectedResult
}

// splitColonStep handles the "action : expected" rule. Both sides must be
// non-empty and the action side must not look like a field label to avoid
// swallowing "Preconditions: ..." lines that leaked into a steps block.
func splitColonStep(line string) (string, string, bool) {
	idx := strings.Index(line, " : ")
	if idx < 0 {
		return "", "", false
	}
	action := strings.TrimSpace(line[:idx])
	expected := strings.TrimSpace(line[idx+3:])
	if action == "" || expected == "" {
		return "", "", false
	}
	return action, expected, true
}
