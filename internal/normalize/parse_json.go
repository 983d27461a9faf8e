package normalize

import (
	"encoding/json"
	"strings"
)

// parseJSON accepts a single object or an array of objects. When the raw
// text is not itself valid JSON it extracts the first fenced json block, and
// as a last resort decodes from the first opening brace so prose-wrapped
// replies still parse.
func parseJSON(raw string) ([]looseRecord, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}

	if recs, ok := decodeJSONValue(trimmed); ok {
		return recs, true
	}

	if m := fencedJSONRe.FindStringSubmatch(trimmed); m != nil {
		if recs, ok := decodeJSONValue(strings.TrimSpace(m[1])); ok {
			return recs, true
		}
	}

	// Decode the first JSON value embedded in surrounding prose.
	if start := strings.IndexAny(trimmed, "{["); start >= 0 {
		dec := json.NewDecoder(strings.NewReader(trimmed[start:]))
		var v any
		if err := dec.Decode(&v); err == nil {
			if recs, ok := looseRecordsFrom(v); ok {
				return recs, true
			}
		}
	}

	return nil, false
}

func decodeJSONValue(s string) ([]looseRecord, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return looseRecordsFrom(v)
}

// looseRecordsFrom converts a decoded value into a record sequence: one
// object becomes a one-element sequence, an array contributes each object
// element, and a wrapper object holding a record list under a known key is
// unwrapped.
func looseRecordsFrom(v any) ([]looseRecord, bool) {
	switch val := v.(type) {
	case map[string]any:
		if recs, ok := unwrapRecordList(val); ok {
			return recs, true
		}
		return []looseRecord{looseRecord(val)}, true
	case map[any]any:
		m, _ := asAnyMap(val)
		if recs, ok := unwrapRecordList(m); ok {
			return recs, true
		}
		return []looseRecord{looseRecord(m)}, true
	case []any:
		recs := make([]looseRecord, 0, len(val))
		for _, item := range val {
			if m, ok := asAnyMap(item); ok {
				recs = append(recs, looseRecord(m))
			}
		}
		return recs, true
	default:
		return nil, false
	}
}

// Wrapper keys whose list value is treated as the record sequence.
var recordListKeys = []string{"test_cases", "testcases", "tests", "cases", "records"}

func unwrapRecordList(m map[string]any) ([]looseRecord, bool) {
	for key, value := range m {
		nk := normalizeKey(key)
		for _, want := range recordListKeys {
			if nk != want {
				continue
			}
			list, ok := value.([]any)
			if !ok {
				continue
			}
			recs := make([]looseRecord, 0, len(list))
			for _, item := range list {
				if rm, isMap := asAnyMap(item); isMap {
					recs = append(recs, looseRecord(rm))
				}
			}
			return recs, true
		}
	}
	return nil, false
}
