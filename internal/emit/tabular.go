package emit

import (
	"encoding/csv"
	"fmt"
	"strings"

	"caseforge/internal/types"
)

// formatCSV emits one row per record. Steps collapse into a single cell as
// "N. action -> expected" lines.
func formatCSV(records []types.TestCase) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	_ = w.Write([]string{
		"id", "title", "description", "test_type", "priority",
		"preconditions", "steps", "expected_results", "postconditions", "tags",
	})
	for _, tc := range records {
		_ = w.Write([]string{
			tc.ID,
			tc.Title,
			tc.Description,
			string(tc.Type),
			string(tc.Priority),
			tc.Preconditions,
			collapseSteps(tc.Steps),
			tc.ExpectedResults,
			tc.Postconditions,
			strings.Join(tc.Tags, ","),
		})
	}
	w.Flush()
	return sb.String()
}

func collapseSteps(steps []types.Step) string {
	lines := make([]string, 0, len(steps))
	for _, st := range steps {
		lines = append(lines, fmt.Sprintf("%d. %s -> %s", st.StepNumber, st.Action, st.ExpectedResult))
	}
	return strings.Join(lines, "\n")
}
