// Package emit renders canonical test-case records into downstream wire and
// export formats. Format is a pure function over its inputs and never fails:
// unknown format names fall back to JSON, mirroring the parser side's
// never-error contract.
package emit

import (
	"strings"
	"time"

	"caseforge/internal/types"
)

// Options tunes emission. The zero value is the canonical default: bare
// structural output with no bookkeeping, which keeps canonical JSON a fixed
// point of the parse pipeline.
type Options struct {
	// IncludeMetadata wraps JSON/YAML output with generation bookkeeping
	// (record count, timestamp).
	IncludeMetadata bool
	// InlineStyles embeds a stylesheet in HTML output.
	InlineStyles bool
	// Now overrides the metadata timestamp; zero means time.Now. Exists so
	// emission stays reproducible under test.
	Now time.Time
}

// Supported format names (case-insensitive). Unrecognized names emit JSON.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatGherkin  = "gherkin"
	FormatXML      = "xml"
)

// Format renders the record sequence into the requested format.
func Format(records []types.TestCase, format string, opts Options) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatYAML, "yml":
		return formatYAML(records, opts)
	case FormatCSV:
		return formatCSV(records)
	case FormatMarkdown, "md":
		return formatMarkdown(records)
	case FormatHTML:
		return formatHTML(records, opts)
	case FormatGherkin, "feature":
		return formatGherkin(records)
	case FormatXML, "junit":
		return formatXML(records)
	default:
		return formatJSON(records, opts)
	}
}

func (o Options) timestamp() string {
	now := o.Now
	if now.IsZero() {
		now = time.Now()
	}
	return now.UTC().Format(time.RFC3339)
}

// metadataEnvelope is the IncludeMetadata wrapper for JSON and YAML.
type metadataEnvelope struct {
	Metadata  map[string]any   `json:"metadata" yaml:"metadata"`
	TestCases []types.TestCase `json:"test_cases" yaml:"test_cases"`
}

func envelope(records []types.TestCase, opts Options) metadataEnvelope {
	return metadataEnvelope{
		Metadata: map[string]any{
			"generated_at": opts.timestamp(),
			"count":        len(records),
			"generator":    "caseforge",
		},
		TestCases: records,
	}
}
