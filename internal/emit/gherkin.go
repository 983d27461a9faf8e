package emit

import (
	"fmt"
	"strings"

	"caseforge/internal/types"
)

// formatGherkin emits one Scenario per record. Tags become @tag annotations.
// When explicit preconditions exist they become the Given; otherwise the
// first step does. The last step becomes Then and interior steps alternate
// When/And.
func formatGherkin(records []types.TestCase) string {
	var sb strings.Builder
	sb.WriteString("Feature: Generated test cases\n")

	for _, tc := range records {
		sb.WriteString("\n")
		if len(tc.Tags) > 0 {
			annotations := make([]string, 0, len(tc.Tags))
			for _, tag := range tc.Tags {
				annotations = append(annotations, "@"+gherkinTag(tag))
			}
			sb.WriteString("  " + strings.Join(annotations, " ") + "\n")
		}
		sb.WriteString(fmt.Sprintf("  Scenario: %s\n", tc.Title))

		steps := tc.Steps
		if tc.Preconditions != "" {
			sb.WriteString(fmt.Sprintf("    Given %s\n", tc.Preconditions))
		} else if len(steps) > 0 {
			sb.WriteString(fmt.Sprintf("    Given %s\n", steps[0].Action))
			steps = steps[1:]
		}

		for i, st := range steps {
			last := i == len(steps)-1
			switch {
			case last:
				sb.WriteString(fmt.Sprintf("    When %s\n", st.Action))
				sb.WriteString(fmt.Sprintf("    Then %s\n", st.ExpectedResult))
			case i == 0:
				sb.WriteString(fmt.Sprintf("    When %s\n", st.Action))
			default:
				sb.WriteString(fmt.Sprintf("    And %s\n", st.Action))
			}
		}
		if len(steps) == 0 {
			// All steps were consumed as Given; close with the expected result.
			expected := tc.ExpectedResults
			if expected == "" && len(tc.Steps) > 0 {
				expected = tc.Steps[len(tc.Steps)-1].ExpectedResult
			}
			if expected != "" {
				sb.WriteString(fmt.Sprintf("    Then %s\n", expected))
			}
		}
	}
	return sb.String()
}

func gherkinTag(tag string) string {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "@")
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return '-'
		}
		return r
	}, tag)
}
