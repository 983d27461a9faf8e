package emit

import (
	"encoding/xml"
	"fmt"
	"strings"

	"caseforge/internal/types"
)

// JUnit-shaped report structures so common CI tooling can ingest the output.
type xmlTestSuites struct {
	XMLName xml.Name       `xml:"testsuites"`
	Tests   int            `xml:"tests,attr"`
	Suites  []xmlTestSuite `xml:"testsuite"`
}

type xmlTestSuite struct {
	Name  string        `xml:"name,attr"`
	Tests int           `xml:"tests,attr"`
	Cases []xmlTestCase `xml:"testcase"`
}

type xmlTestCase struct {
	ID         string        `xml:"id,attr"`
	Name       string        `xml:"name,attr"`
	Classname  string        `xml:"classname,attr"`
	Properties xmlProperties `xml:"properties"`
	SystemOut  string        `xml:"system-out"`
}

type xmlProperties struct {
	Properties []xmlProperty `xml:"property"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// formatXML emits one testcase element per record with description/priority
// as properties and step detail folded into the system-out text blob.
func formatXML(records []types.TestCase) string {
	suite := xmlTestSuite{
		Name:  "caseforge",
		Tests: len(records),
	}
	for _, tc := range records {
		props := []xmlProperty{
			{Name: "description", Value: tc.Description},
			{Name: "priority", Value: string(tc.Priority)},
			{Name: "test_type", Value: string(tc.Type)},
		}
		if tc.Preconditions != "" {
			props = append(props, xmlProperty{Name: "preconditions", Value: tc.Preconditions})
		}
		if len(tc.Tags) > 0 {
			props = append(props, xmlProperty{Name: "tags", Value: strings.Join(tc.Tags, ",")})
		}
		suite.Cases = append(suite.Cases, xmlTestCase{
			ID:         tc.ID,
			Name:       tc.Title,
			Classname:  fmt.Sprintf("caseforge.%s", tc.Type),
			Properties: xmlProperties{Properties: props},
			SystemOut:  collapseSteps(tc.Steps),
		})
	}

	doc := xmlTestSuites{Tests: len(records), Suites: []xmlTestSuite{suite}}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return xml.Header + "<testsuites></testsuites>"
	}
	return xml.Header + string(out)
}
