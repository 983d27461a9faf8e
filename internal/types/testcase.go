// Package types holds the canonical record shapes shared by the parsing,
// emission, and provider layers. Every parse path converges onto TestCase;
// nothing downstream of the normalizer sees loosely-typed data.
package types

// TestType classifies a test case. Unrecognized source tokens canonicalize
// to TestTypeFunctional.
type TestType string

const (
	TestTypeFunctional  TestType = "functional"
	TestTypeIntegration TestType = "integration"
	TestTypeUnit        TestType = "unit"
	TestTypePerformance TestType = "performance"
	TestTypeSecurity    TestType = "security"
	TestTypeUsability   TestType = "usability"
	TestTypeEdgeCase    TestType = "edge_case"
	TestTypeNegative    TestType = "negative"
	TestTypeRegression  TestType = "regression"
	TestTypeSmoke       TestType = "smoke"
	TestTypeAcceptance  TestType = "acceptance"
)

// Priority ranks a test case. Unrecognized source tokens canonicalize to
// PriorityMedium.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Step is one ordered action within a test case. StepNumber is always a
// contiguous 1..N sequence in final form regardless of source numbering.
type Step struct {
	StepNumber     int            `json:"step_number" yaml:"step_number"`
	Action         string         `json:"action" yaml:"action"`
	ExpectedResult string         `json:"expected_result" yaml:"expected_result"`
	TestData       map[string]any `json:"test_data,omitempty" yaml:"test_data,omitempty"`
}

// TestCase is the single normalized shape every parse path must converge on.
// It is created fresh per parse, immutable once handed to a formatter, and
// never outlives one request/response cycle.
type TestCase struct {
	ID              string         `json:"id" yaml:"id"`
	Title           string         `json:"title" yaml:"title"`
	Description     string         `json:"description" yaml:"description"`
	Type            TestType       `json:"test_type" yaml:"test_type"`
	Priority        Priority       `json:"priority" yaml:"priority"`
	Preconditions   string         `json:"preconditions,omitempty" yaml:"preconditions,omitempty"`
	Steps           []Step         `json:"steps" yaml:"steps"`
	Postconditions  string         `json:"postconditions,omitempty" yaml:"postconditions,omitempty"`
	ExpectedResults string         `json:"expected_results,omitempty" yaml:"expected_results,omitempty"`
	Tags            []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	TestData        map[string]any `json:"test_data,omitempty" yaml:"test_data,omitempty"`
}
