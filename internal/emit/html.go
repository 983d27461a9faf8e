package emit

import (
	"fmt"
	"html"
	"strings"

	"caseforge/internal/types"
)

const htmlStyles = `  <style>
    body { font-family: sans-serif; margin: 2em; color: #222; }
    .test-case { border: 1px solid #ddd; border-radius: 6px; padding: 1em 1.5em; margin-bottom: 1.5em; }
    .test-case h2 { margin-top: 0; }
    .meta { color: #666; font-size: 0.9em; }
    .tag { background: #eef; border-radius: 3px; padding: 0 0.4em; margin-right: 0.3em; }
    ol.steps li { margin-bottom: 0.4em; }
    .expected { color: #060; }
  </style>
`

// formatHTML emits a self-contained document with one div block per record.
func formatHTML(records []types.TestCase, opts Options) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString("  <meta charset=\"utf-8\">\n  <title>Test Cases</title>\n")
	if opts.InlineStyles {
		sb.WriteString(htmlStyles)
	}
	sb.WriteString("</head>\n<body>\n<h1>Test Cases</h1>\n")

	for _, tc := range records {
		sb.WriteString(fmt.Sprintf("<div class=\"test-case\" id=\"%s\">\n", html.EscapeString(tc.ID)))
		sb.WriteString(fmt.Sprintf("  <h2>%s</h2>\n", html.EscapeString(tc.Title)))
		sb.WriteString(fmt.Sprintf("  <p class=\"meta\">Type: %s | Priority: %s</p>\n",
			html.EscapeString(string(tc.Type)), html.EscapeString(string(tc.Priority))))
		sb.WriteString(fmt.Sprintf("  <p>%s</p>\n", html.EscapeString(tc.Description)))
		if tc.Preconditions != "" {
			sb.WriteString(fmt.Sprintf("  <p><strong>Preconditions:</strong> %s</p>\n",
				html.EscapeString(tc.Preconditions)))
		}
		if len(tc.Tags) > 0 {
			sb.WriteString("  <p>")
			for _, tag := range tc.Tags {
				sb.WriteString(fmt.Sprintf("<span class=\"tag\">%s</span>", html.EscapeString(tag)))
			}
			sb.WriteString("</p>\n")
		}
		sb.WriteString("  <ol class=\"steps\">\n")
		for _, st := range tc.Steps {
			sb.WriteString(fmt.Sprintf("    <li>%s <span class=\"expected\">&rarr; %s</span></li>\n",
				html.EscapeString(st.Action), html.EscapeString(st.ExpectedResult)))
		}
		sb.WriteString("  </ol>\n")
		if tc.ExpectedResults != "" {
			sb.WriteString(fmt.Sprintf("  <p><strong>Expected Results:</strong> %s</p>\n",
				html.EscapeString(tc.ExpectedResults)))
		}
		sb.WriteString("</div>\n")
	}

	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}
