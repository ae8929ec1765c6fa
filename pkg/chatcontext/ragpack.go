package chatcontext

import "strings"

const (
	// excerptBudget is the character budget for retrieved document context.
	excerptBudget = 4000
	// excerptPrefix labels each retrieved chunk inside the prompt.
	excerptPrefix = "[Document excerpt]: "
	// minPartialExcerpt is the smallest remaining budget worth filling
	// with a truncated excerpt.
	minPartialExcerpt = 100
)

// PackExcerpts greedily packs retrieved chunk texts, in the order given,
// into a labeled context block within excerptBudget characters. When the
// next excerpt does not fit but more than minPartialExcerpt characters of
// budget remain, the excerpt is truncated with an ellipsis; otherwise
// packing stops. Returns "" when nothing fits.
func PackExcerpts(chunks []string) string {
	var parts []string
	used := 0

	for _, chunk := range chunks {
		text := strings.TrimSpace(chunk)
		if text == "" {
			continue
		}
		excerpt := excerptPrefix + text

		remaining := excerptBudget - used
		if len(excerpt) > remaining {
			if remaining > minPartialExcerpt {
				parts = append(parts, excerpt[:remaining]+"...")
			}
			break
		}

		parts = append(parts, excerpt)
		used += len(excerpt)
	}

	return strings.Join(parts, "\n\n")
}
