// Package normalize turns untrusted, inconsistently shaped model output into
// canonical test-case records. The pipeline is: sniff the format, run the
// structural parsers in order, normalize field names against the synonym
// table, extract and renumber steps, canonicalize enums, and synthesize a
// fallback record when nothing valid survived. Parse never returns an error
// and always yields at least one record.
package normalize

import (
	"fmt"
	"strings"
)

// looseRecord is the loosely-typed key/value shape a structural parser emits.
// It never escapes this package; normalizeFields converts it to canonical
// keys and buildCase converts those into a typed TestCase.
type looseRecord map[string]any

// coerceString renders a loose value as a trimmed string. Nil and empty
// containers render as "".
func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case bool:
		return fmt.Sprintf("%t", s)
	case float64:
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	case int:
		return fmt.Sprintf("%d", s)
	case int64:
		return fmt.Sprintf("%d", s)
	case []any:
		parts := make([]string, 0, len(s))
		for _, item := range s {
			if str := coerceString(item); str != "" {
				parts = append(parts, str)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", s))
	}
}

// coerceStringSlice renders a loose value as a string list. Scalar strings
// split on commas so "smoke, auth" becomes two tags.
func coerceStringSlice(v any) []string {
	switch s := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str := coerceString(item); str != "" {
				out = append(out, str)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		if str := coerceString(v); str != "" {
			return []string{str}
		}
		return nil
	}
}

// dedupeStrings removes duplicates preserving first-seen order.
func dedupeStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
