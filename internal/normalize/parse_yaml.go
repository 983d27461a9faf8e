package normalize

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// parseYAML accepts the same shapes as the JSON parser and additionally
// unwraps a top-level test_cases (or synonym) key holding a list. Scalars
// decode successfully under YAML, so a plain-prose reply is rejected here
// rather than treated as a match.
func parseYAML(raw string) ([]looseRecord, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}

	if recs, ok := decodeYAMLValue(trimmed); ok {
		return recs, true
	}

	if m := fencedAnyRe.FindStringSubmatch(trimmed); m != nil {
		if recs, ok := decodeYAMLValue(strings.TrimSpace(m[1])); ok {
			return recs, true
		}
	}

	return nil, false
}

func decodeYAMLValue(s string) ([]looseRecord, bool) {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return looseRecordsFrom(v)
}
