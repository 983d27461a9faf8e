package normalize

import (
	"regexp"
	"strings"
)

var (
	textTitleRe = regexp.MustCompile(`(?i)^test\s*case\s*\d*\s*[:.-]\s*(.+)$`)
	textFieldRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 _-]{0,40}):\s*(.*)$`)
	textStepsRe = regexp.MustCompile(`(?i)^(?:test\s*)?steps?\s*:\s*$`)
)

// parsePlainText splits on blank-line-separated blocks. Within a block, a
// "Test Case N: <title>" line or the bare first line becomes the title,
// subsequent "Key: value" lines become fields, and a "Steps:" section
// followed by numbered lines becomes the steps block.
func parsePlainText(raw string) ([]looseRecord, bool) {
	var records []looseRecord
	for _, block := range splitBlocks(raw) {
		if rec, ok := parseTextBlock(block); ok {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		return nil, false
	}
	return records, true
}

func splitBlocks(raw string) [][]string {
	var blocks [][]string
	var current []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func parseTextBlock(lines []string) (looseRecord, bool) {
	if len(lines) == 0 {
		return nil, false
	}

	rec := looseRecord{}
	var stepLines []string
	var prose []string
	inSteps := false

	first := strings.TrimSpace(lines[0])
	if m := textTitleRe.FindStringSubmatch(first); m != nil {
		rec["title"] = strings.TrimSpace(m[1])
	} else if m := textFieldRe.FindStringSubmatch(first); m == nil {
		rec["title"] = first
	} else {
		// First line is already a Key: value field; reprocess it below.
		lines = append([]string{""}, lines...)
	}

	for _, line := range lines[1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if textStepsRe.MatchString(trimmed) {
			inSteps = true
			continue
		}
		if inSteps {
			stepLines = append(stepLines, trimmed)
			continue
		}
		if m := textFieldRe.FindStringSubmatch(trimmed); m != nil {
			key := strings.TrimSpace(m[1])
			value := strings.TrimSpace(m[2])
			if value != "" {
				rec[key] = value
			}
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

	// A block must carry something recognizable as a title, description,
	// or steps to become a record.
	nf := normalizeFields(rec)
	if nf[fieldTitle] == nil && nf[fieldDescription] == nil && nf[fieldSteps] == nil {
		return nil, false
	}
	return rec, true
}
