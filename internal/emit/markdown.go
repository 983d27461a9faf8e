package emit

import (
	"fmt"
	"strings"

	"caseforge/internal/types"
)

// formatMarkdown emits one ## section per record, with a table of contents
// when more than one record is present. Field lines use the **Field**: value
// shape the markdown parser recognizes on the way back in.
func formatMarkdown(records []types.TestCase) string {
	var sb strings.Builder
	sb.WriteString("# Test Cases\n\n")

	if len(records) > 1 {
		sb.WriteString("## Table of Contents\n\n")
		for _, tc := range records {
			sb.WriteString(fmt.Sprintf("- [%s](#%s)\n", tc.Title, anchor(tc.Title)))
		}
		sb.WriteString("\n")
	}

	for _, tc := range records {
		sb.WriteString(fmt.Sprintf("## %s\n\n", tc.Title))
		sb.WriteString(fmt.Sprintf("**ID**: %s\n", tc.ID))
		sb.WriteString(fmt.Sprintf("**Type**: %s\n", tc.Type))
		sb.WriteString(fmt.Sprintf("**Priority**: %s\n", tc.Priority))
		sb.WriteString(fmt.Sprintf("**Description**: %s\n", tc.Description))
		if tc.Preconditions != "" {
			sb.WriteString(fmt.Sprintf("**Preconditions**: %s\n", tc.Preconditions))
		}
		if len(tc.Tags) > 0 {
			sb.WriteString(fmt.Sprintf("**Tags**: %s\n", strings.Join(tc.Tags, ", ")))
		}
		sb.WriteString("\n**Steps**:\n\n")
		for _, st := range tc.Steps {
			sb.WriteString(fmt.Sprintf("%d. %s -> %s\n", st.StepNumber, st.Action, st.ExpectedResult))
		}
		if tc.ExpectedResults != "" {
			sb.WriteString(fmt.Sprintf("\n**Expected Results**: %s\n", tc.ExpectedResults))
		}
		if tc.Postconditions != "" {
			sb.WriteString(fmt.Sprintf("**Postconditions**: %s\n", tc.Postconditions))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func anchor(title string) string {
	a := strings.ToLower(title)
	a = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-':
			return '-'
		default:
			return -1
		}
	}, a)
	return a
}
