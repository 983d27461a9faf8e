package normalize

import (
	"strings"

	"github.com/google/uuid"

	"caseforge/internal/types"
)

const (
	fallbackTitle       = "Generated Test Case"
	fallbackDescription = "The model returned no content."
	fallbackTitleBound  = 80 // runes
)

// synthesizeFallback manufactures exactly one minimally valid record from
// raw text that defeated every structural parser. This is what guarantees
// the pipeline's "at least one record" output contract unconditionally.
func synthesizeFallback(raw string) types.TestCase {
	title := fallbackTitle
	description := fallbackDescription

	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		description = trimmed
		for _, line := range strings.Split(trimmed, "\n") {
			if l := strings.TrimSpace(line); l != "" {
				title = truncateRunes(l, fallbackTitleBound)
				break
			}
		}
	}

	return types.TestCase{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Type:        types.TestTypeFunctional,
		Priority:    types.PriorityMedium,
		Steps: []types.Step{
			{StepNumber: 1, Action: "Review generated content", ExpectedResult: "Content is valid"},
		},
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
