package normalize

import (
	"regexp"
	"strings"
)

var (
	mdSectionRe   = regexp.MustCompile(`^##\s+(.+?)\s*$`)
	mdTopRe       = regexp.MustCompile(`^#\s+(.+?)\s*$`)
	mdBoldFieldRe = regexp.MustCompile(`^\*\*(.+?)\*\*\s*:?\s*(.*)$`)
	mdListItemRe  = regexp.MustCompile(`^\s*\d+[.)]\s+\S`)
	mdBulletRe    = regexp.MustCompile(`^\s*[-*]\s+(.+)$`)
)

// parseMarkdown splits the document on level-2 headings, one section per
// record. Within a section, **Field:** value lines become key/value pairs
// and numbered-list lines become steps. A section with no recognizable title
// is skipped. Documents with a single level-1 heading and no level-2
// sections are treated as one record.
func parseMarkdown(raw string) ([]looseRecord, bool) {
	lines := strings.Split(raw, "\n")

	sections := splitSections(lines, mdSectionRe)
	if len(sections) == 0 {
		sections = splitSections(lines, mdTopRe)
	}
	if len(sections) == 0 {
		return nil, false
	}

	records := make([]looseRecord, 0, len(sections))
	for _, sec := range sections {
		if rec, ok := parseMarkdownSection(sec); ok {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		return nil, false
	}
	return records, true
}

type mdSection struct {
	title string
	lines []string
}

func splitSections(lines []string, headingRe *regexp.Regexp) []mdSection {
	var sections []mdSection
	var current *mdSection
	for _, line := range lines {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				sections = append(sections, *current)
			}
			current = &mdSection{title: strings.TrimSpace(m[1])}
			continue
		}
		if current != nil {
			current.lines = append(current.lines, line)
		}
	}
	if current != nil {
		sections = append(sections, *current)
	}
	return sections
}

func parseMarkdownSection(sec mdSection) (looseRecord, bool) {
	if sec.title == "" {
		return nil, false
	}

	rec := looseRecord{"title": sec.title}
	var stepLines []string
	var prose []string
	inSteps := false

	for _, line := range sec.lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := mdBoldFieldRe.FindStringSubmatch(trimmed); m != nil {
			key := strings.TrimSuffix(strings.TrimSpace(m[1]), ":")
			value := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(m[2]), ":"))
			if normalizeKey(key) == fieldSteps {
				inSteps = true
				if value != "" {
					stepLines = append(stepLines, value)
				}
				continue
			}
			inSteps = false
			if value != "" {
				rec[key] = value
			}
			continue
		}

		if mdListItemRe.MatchString(trimmed) {
			stepLines = append(stepLines, trimmed)
			continue
		}
		if inSteps {
			if m := mdBulletRe.FindStringSubmatch(trimmed); m != nil {
				stepLines = append(stepLines, m[1])
				continue
			}
			stepLines = append(stepLines, trimmed)
			continue
		}

		prose = append(prose, trimmed)
	}

	if len(stepLines) > 0 {
		rec[fieldSteps] = strings.Join(stepLines, "\n")
	}
	if _, ok := rec["description"]; !ok && len(prose) > 0 {
		rec["description"] = strings.Join(prose, " ")
	}
	return rec, true
}
