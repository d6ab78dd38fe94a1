package notice

import (
	"regexp"
	"strings"
)

// cleanField normalizes a field's raw cropped text and trims the
// spill-over it picks up from neighboring sections and the form footer.
func cleanField(kind AnchorKind, raw string) string {
	text := normalizeField(kind, raw)
	switch kind {
	case AnchorUsage:
		text = truncateAtLineLabel(text, remarksLineStartRE)
	case AnchorRemarks:
		text = truncateAtFooter(text)
		text = truncateAtLineLabel(text, lotLineStartRE)
	}
	return strings.TrimSpace(text)
}

// normalizeField strips continuation-page noise and leftover label
// remnants from a field's raw cropped text. Running headers are removed
// wherever they appear; a header occupying a line of its own also takes
// the page-number line that follows it. Blank lines are dropped, other
// lines are kept verbatim.
func normalizeField(kind AnchorKind, raw string) string {
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))
	dropPageNumber := false

	for _, line := range lines {
		if runningHeaderRE.MatchString(line) {
			line = runningHeaderRE.ReplaceAllString(line, "")
			if strings.TrimSpace(line) == "" {
				dropPageNumber = true
				continue
			}
		}
		if dropPageNumber {
			dropPageNumber = false
			if pageNumberLineRE.MatchString(line) {
				continue
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}

	kept = stripLabelRemnant(kind, kept)
	return strings.Join(kept, "\n")
}

// stripLabelRemnant removes the field's own label from the head of the
// line set: a first line holding only the label is dropped, a label with
// a trailing colon is cut from the first line. Body text that merely
// starts with the label glyphs is preserved.
func stripLabelRemnant(kind AnchorKind, lines []string) []string {
	if len(lines) == 0 {
		return lines
	}

	var lineOnly, colonPrefix *regexp.Regexp
	switch kind {
	case AnchorUsage:
		lineOnly, colonPrefix = usageLineOnlyRE, usageColonPrefixRE
	case AnchorRemarks:
		lineOnly, colonPrefix = remarksLineOnlyRE, remarksColonPrefixRE
	default:
		return lines
	}

	if lineOnly.MatchString(lines[0]) {
		return lines[1:]
	}
	lines[0] = colonPrefix.ReplaceAllString(lines[0], "")
	if strings.TrimSpace(lines[0]) == "" {
		return lines[1:]
	}
	return lines
}

// truncateAtLineLabel cuts the text at the first line matching the given
// label pattern. The very first line never triggers a cut.
func truncateAtLineLabel(text string, re *regexp.Regexp) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i == 0 {
			continue
		}
		if re.MatchString(line) {
			return strings.Join(lines[:i], "\n")
		}
	}
	return text
}

// truncateAtFooter cuts the text at the earliest occurrence of any form
// footer marker, discarding the marker and everything after it.
func truncateAtFooter(text string) string {
	cut := -1
	for _, re := range footerREs {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if cut == -1 || loc[0] < cut {
			cut = loc[0]
		}
	}
	if cut >= 0 {
		return text[:cut]
	}
	return text
}
