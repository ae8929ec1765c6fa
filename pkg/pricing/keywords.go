package pricing

import "strings"

// maxScopeKeywords caps how many terms a single query contributes.
const maxScopeKeywords = 10

// scopeVocabulary is the fixed set of renovation terms recognized in user
// queries, used for keyword matching against stored project scopes when
// semantic search comes up empty.
var scopeVocabulary = []string{
	// rooms
	"bathroom", "kitchen", "bedroom", "basement", "attic", "garage",
	"living room", "laundry", "closet",
	// work types
	"remodel", "renovation", "addition", "repair", "replacement",
	"installation", "demolition", "new construction",
	// trades
	"plumbing", "electrical", "hvac", "roofing", "flooring", "painting",
	"drywall", "framing", "insulation", "carpentry", "tile", "concrete",
	// fixtures
	"cabinet", "countertop", "vanity", "shower", "bathtub", "tub",
	"toilet", "sink", "faucet", "window", "door", "deck", "fence",
}

// ScopeKeywords returns the vocabulary terms present in the query, in
// vocabulary order, capped at maxScopeKeywords. A query sharing no terms
// with the vocabulary returns nil.
func ScopeKeywords(query string) []string {
	lowered := strings.ToLower(query)

	var keywords []string
	for _, term := range scopeVocabulary {
		if strings.Contains(lowered, term) {
			keywords = append(keywords, term)
			if len(keywords) == maxScopeKeywords {
				break
			}
		}
	}
	return keywords
}
