package chunker

import (
	"regexp"
	"strings"
)

// maxHeaderLen is the hard cap on section header line length. Longer lines
// are never classified as headers.
const maxHeaderLen = 80

// SectionRule pairs a header pattern with the category family it detects.
// Rules are evaluated in order; the first match wins, so the vocabulary can
// be extended by appending rows rather than touching the scanner.
type SectionRule struct {
	Pattern  *regexp.Regexp
	Category string
}

var sectionRules = []SectionRule{
	{regexp.MustCompile(`(?i)^\s*(master\s+)?(bathroom|bath|kitchen|bedroom|living\s+room|basement|attic|garage|laundry|deck|patio)\b`), "room"},
	{regexp.MustCompile(`(?i)^\s*(plumbing|electrical|hvac|roofing|flooring|painting|drywall|framing|insulation|demolition|carpentry)\b`), "trade"},
	{regexp.MustCompile(`(?i)^\s*(scope\s+of\s+work|materials|labor|exclusions|assumptions|allowances|payment\s+terms|totals?|summary|general\s+conditions|terms\s+and\s+conditions)\b`), "document"},
	{regexp.MustCompile(`^\s*\d+[\.\)]\s+\S`), "numbered"},
	{regexp.MustCompile(`^[A-Z][A-Z0-9 &/\-]{2,}$`), "allcaps"},
}

type section struct {
	label   string
	content string
}

// detectSections scans line-by-line for section starts. The accumulated
// prior section is closed whenever a new header is found. Text before the
// first header becomes an unlabeled leading section.
func detectSections(text string) []section {
	lines := strings.Split(text, "\n")

	var sections []section
	var current strings.Builder
	currentLabel := ""

	flush := func() {
		if strings.TrimSpace(current.String()) != "" {
			sections = append(sections, section{label: currentLabel, content: current.String()})
		}
		current.Reset()
	}

	for _, line := range lines {
		if label, ok := matchSectionStart(line); ok {
			flush()
			currentLabel = label
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	flush()

	return sections
}

func matchSectionStart(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) >= maxHeaderLen {
		return "", false
	}
	for _, rule := range sectionRules {
		if rule.Pattern.MatchString(trimmed) {
			return normalizeLabel(trimmed), true
		}
	}
	return "", false
}

// normalizeLabel strips trailing punctuation, digits, and whitespace from a
// header line and lowercases the remainder.
var trailingJunk = regexp.MustCompile(`[\s\d\.\:\;\-#\)]+$`)
var leadingNumbering = regexp.MustCompile(`^\s*\d+[\.\)]\s*`)

func normalizeLabel(header string) string {
	label := leadingNumbering.ReplaceAllString(header, "")
	label = trailingJunk.ReplaceAllString(label, "")
	return strings.ToLower(strings.TrimSpace(label))
}
