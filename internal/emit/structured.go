package emit

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"caseforge/internal/types"
)

// formatJSON emits the canonical JSON shape: a bare array by default so the
// output round-trips through Parse unchanged, or a metadata envelope when
// requested.
func formatJSON(records []types.TestCase, opts Options) string {
	var v any = records
	if records == nil {
		v = []types.TestCase{}
	}
	if opts.IncludeMetadata {
		v = envelope(records, opts)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(out)
}

// formatYAML emits the record list under a test_cases key, the wrapper shape
// the YAML parser unwraps on the way back in.
func formatYAML(records []types.TestCase, opts Options) string {
	var v any = map[string][]types.TestCase{"test_cases": records}
	if opts.IncludeMetadata {
		v = envelope(records, opts)
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return "test_cases: []\n"
	}
	return string(out)
}
