package emit

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseforge/internal/types"
)

func sampleRecords() []types.TestCase {
	return []types.TestCase{
		{
			ID:          "tc-001",
			Title:       "Login succeeds",
			Description: "Valid credentials log the user in",
			Type:        types.TestTypeFunctional,
			Priority:    types.PriorityHigh,
			Tags:        []string{"auth", "smoke test"},
			Steps: []types.Step{
				{StepNumber: 1, Action: "Open the login page", ExpectedResult: "Form is shown"},
				{StepNumber: 2, Action: "Submit valid credentials", ExpectedResult: "Dashboard loads"},
			},
		},
		{
			ID:            "tc-002",
			Title:         "Lockout after failures",
			Description:   "Account locks after five bad attempts",
			Type:          types.TestTypeSecurity,
			Priority:      types.PriorityCritical,
			Preconditions: "A registered account exists",
			Steps: []types.Step{
				{StepNumber: 1, Action: "Fail login five times", ExpectedResult: "Account is locked"},
			},
		},
	}
}

func TestFormat_Gherkin(t *testing.T) {
	records := sampleRecords()
	out := Format(records, "gherkin", Options{})

	assert.True(t, strings.HasPrefix(out, "Feature: Generated test cases\n"))
	assert.Contains(t, out, "Scenario: "+records[0].Title)
	assert.Contains(t, out, "Scenario: "+records[1].Title)
	assert.Contains(t, out, "@auth @smoke-test")
	// No explicit preconditions: the first step becomes Given.
	assert.Contains(t, out, "Given Open the login page")
	assert.Contains(t, out, "When Submit valid credentials")
	assert.Contains(t, out, "Then Dashboard loads")
	// Explicit preconditions become Given and all steps stay When/Then.
	assert.Contains(t, out, "Given A registered account exists")
	assert.Contains(t, out, "When Fail login five times")
	assert.Contains(t, out, "Then Account is locked")
}

func TestFormat_UnknownFormatFallsBackToJSON(t *testing.T) {
	records := sampleRecords()
	assert.Equal(t, Format(records, "json", Options{}), Format(records, "unknown-format-xyz", Options{}))
	assert.Equal(t, Format(records, "json", Options{}), Format(records, "", Options{}))
}

func TestFormat_JSONBareArray(t *testing.T) {
	out := Format(sampleRecords(), "json", Options{})

	var back []types.TestCase
	require.NoError(t, json.Unmarshal([]byte(out), &back))
	require.Len(t, back, 2)
	assert.Equal(t, "Login succeeds", back[0].Title)
	assert.Equal(t, 2, back[0].Steps[1].StepNumber)
}

func TestFormat_JSONEmptyRecords(t *testing.T) {
	assert.Equal(t, "[]", Format(nil, "json", Options{}))
}

func TestFormat_JSONMetadataEnvelope(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	out := Format(sampleRecords(), "json", Options{IncludeMetadata: true, Now: now})

	var env struct {
		Metadata  map[string]any   `json:"metadata"`
		TestCases []types.TestCase `json:"test_cases"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, "2026-03-14T09:30:00Z", env.Metadata["generated_at"])
	assert.Equal(t, float64(2), env.Metadata["count"])
	assert.Len(t, env.TestCases, 2)
}

func TestFormat_YAMLWrapper(t *testing.T) {
	out := Format(sampleRecords(), "yaml", Options{})
	assert.True(t, strings.HasPrefix(out, "test_cases:"))
	assert.Contains(t, out, "title: Login succeeds")
}

func TestFormat_CSV(t *testing.T) {
	out := Format(sampleRecords(), "csv", Options{})

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + two records
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, "tc-001", rows[1][0])
	assert.Equal(t, "Login succeeds", rows[1][1])
	assert.Contains(t, rows[1][6], "1. Open the login page -> Form is shown")
	assert.Contains(t, rows[1][6], "2. Submit valid credentials -> Dashboard loads")
	assert.Equal(t, "auth,smoke test", rows[1][9])
}

func TestFormat_Markdown(t *testing.T) {
	out := Format(sampleRecords(), "markdown", Options{})

	assert.True(t, strings.HasPrefix(out, "# Test Cases\n"))
	assert.Contains(t, out, "## Table of Contents")
	assert.Contains(t, out, "- [Login succeeds](#login-succeeds)")
	assert.Contains(t, out, "## Login succeeds")
	assert.Contains(t, out, "**Priority**: high")
	assert.Contains(t, out, "1. Open the login page -> Form is shown")

	// A single record gets no table of contents.
	single := Format(sampleRecords()[:1], "markdown", Options{})
	assert.NotContains(t, single, "Table of Contents")
}

func TestFormat_XMLWellFormed(t *testing.T) {
	out := Format(sampleRecords(), "xml", Options{})
	assert.True(t, strings.HasPrefix(out, xml.Header))

	var doc struct {
		XMLName xml.Name `xml:"testsuites"`
		Tests   int      `xml:"tests,attr"`
		Suites  []struct {
			Name  string `xml:"name,attr"`
			Cases []struct {
				ID   string `xml:"id,attr"`
				Name string `xml:"name,attr"`
			} `xml:"testcase"`
		} `xml:"testsuite"`
	}
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2, doc.Tests)
	require.Len(t, doc.Suites, 1)
	require.Len(t, doc.Suites[0].Cases, 2)
	assert.Equal(t, "tc-001", doc.Suites[0].Cases[0].ID)
	assert.Equal(t, "Lockout after failures", doc.Suites[0].Cases[1].Name)
}

func TestFormat_HTMLEscapes(t *testing.T) {
	records := []types.TestCase{{
		ID:          "tc-esc",
		Title:       `<script>alert("x")</script>`,
		Description: "a & b",
		Type:        types.TestTypeFunctional,
		Priority:    types.PriorityMedium,
		Steps:       []types.Step{{StepNumber: 1, Action: "a < b", ExpectedResult: "ok"}},
	}}
	out := Format(records, "html", Options{InlineStyles: true})

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "a &amp; b")
	assert.Contains(t, out, "<style>")

	plain := Format(records, "html", Options{})
	assert.NotContains(t, plain, "<style>")
}

func TestFormat_AliasNames(t *testing.T) {
	records := sampleRecords()
	assert.Equal(t, Format(records, "yaml", Options{}), Format(records, "yml", Options{}))
	assert.Equal(t, Format(records, "markdown", Options{}), Format(records, "md", Options{}))
	assert.Equal(t, Format(records, "gherkin", Options{}), Format(records, "feature", Options{}))
	assert.Equal(t, Format(records, "xml", Options{}), Format(records, "junit", Options{}))
	assert.Equal(t, Format(records, "JSON", Options{}), Format(records, "json", Options{}))
}
