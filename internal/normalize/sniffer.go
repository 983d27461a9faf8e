package normalize

import (
	"regexp"
	"strings"
)

// Format hints recognized by Parse. Empty means auto-detect.
const (
	HintJSON     = "json"
	HintYAML     = "yaml"
	HintMarkdown = "markdown"
	HintText     = "text"
)

// structuralParser is one format-specific extraction strategy. ok=false
// signals "not this format", never "malformed input"; the pipeline advances
// to the next candidate.
type structuralParser struct {
	name  string
	parse func(raw string) ([]looseRecord, bool)
}

var allParsers = []structuralParser{
	{HintJSON, parseJSON},
	{HintYAML, parseYAML},
	{HintMarkdown, parseMarkdown},
	{HintText, parsePlainText},
}

var (
	fencedJSONRe = regexp.MustCompile("(?s)```(?:json|JSON)\\s*\\n(.*?)```")
	fencedAnyRe  = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\\n(.*?)```")
	yamlKeyRe    = regexp.MustCompile(`(?m)^[A-Za-z_][A-Za-z0-9_ -]*:\s`)
	mdHeadingRe  = regexp.MustCompile(`(?m)^#{1,3}\s+\S`)
)

// sniffOrder decides which structural parsers to try, in order. A caller
// hint moves that parser to the front; the remaining parsers stay as
// fall-through candidates so a wrong hint still converges.
func sniffOrder(raw, hint string) []structuralParser {
	var order []string
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case HintJSON:
		order = append(order, HintJSON)
	case HintYAML, "yml":
		order = append(order, HintYAML)
	case HintMarkdown, "md":
		order = append(order, HintMarkdown)
	case HintText, "plain", "plaintext":
		order = append(order, HintText)
	}

	order = append(order, detectFormat(raw))
	order = append(order, HintJSON, HintYAML, HintMarkdown, HintText)

	seen := make(map[string]bool, len(allParsers))
	parsers := make([]structuralParser, 0, len(allParsers))
	for _, name := range order {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		for _, p := range allParsers {
			if p.name == name {
				parsers = append(parsers, p)
			}
		}
	}
	return parsers
}

// detectFormat applies the ordered heuristics from the sniffer design:
// brace/bracket start or a fenced json block means JSON, a top-level "key:"
// line without a JSON start means YAML, heading markers mean Markdown,
// anything else is plain text.
func detectFormat(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return HintText
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return HintJSON
	}
	if fencedJSONRe.MatchString(trimmed) {
		return HintJSON
	}
	if yamlKeyRe.MatchString(trimmed) && !mdHeadingRe.MatchString(trimmed) {
		return HintYAML
	}
	if mdHeadingRe.MatchString(trimmed) {
		return HintMarkdown
	}
	return HintText
}
