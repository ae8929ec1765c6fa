package chatcontext

import (
	"sort"
	"strings"
)

// maxTags caps how many project categories a conversation carries.
const maxTags = 5

// tagVocabulary maps each project category to the keywords that imply it.
// Categories are the only values ExtractTags may return.
var tagVocabulary = map[string][]string{
	"bathroom":   {"bathroom", "bath ", "shower", "vanity", "toilet", "tub"},
	"kitchen":    {"kitchen", "cabinet", "countertop", "backsplash", "appliance"},
	"bedroom":    {"bedroom", "master suite", "closet"},
	"basement":   {"basement", "cellar"},
	"attic":      {"attic", "loft"},
	"garage":     {"garage", "carport"},
	"flooring":   {"floor", "tile", "hardwood", "carpet", "laminate", "vinyl plank"},
	"roofing":    {"roof", "shingle", "gutter"},
	"plumbing":   {"plumbing", "pipe", "drain", "faucet", "water heater"},
	"electrical": {"electrical", "wiring", "outlet", "panel", "lighting"},
	"hvac":       {"hvac", "furnace", "air conditioning", "ductwork", "heat pump"},
	"painting":   {"paint", "primer", "drywall finish"},
	"deck":       {"deck", "patio", "porch", "pergola"},
	"addition":   {"addition", "extension", "bump out", "new construction"},
}

// ExtractTags scans the conversation text for vocabulary keywords and
// returns the matched categories, alphabetically ordered, capped at
// maxTags. Matching is case-insensitive with set semantics.
func ExtractTags(text string) []string {
	lowered := strings.ToLower(text)

	categories := make([]string, 0, len(tagVocabulary))
	for category := range tagVocabulary {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var tags []string
	for _, category := range categories {
		for _, keyword := range tagVocabulary[category] {
			if strings.Contains(lowered, keyword) {
				tags = append(tags, category)
				break
			}
		}
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}
