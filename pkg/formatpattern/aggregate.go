package formatpattern

import (
	"encoding/json"
	"sort"
)

const maxAggregatedHeaders = 15

// AggregatePatterns merges per-document patterns into one tenant-wide
// profile. Every merge rule is a pure function of the input multiset —
// frequency counts, weighted counts, means, and unions with total ordering
// on ties — so permuting the input never changes the result.
func AggregatePatterns(patterns []Pattern) *Aggregate {
	if len(patterns) == 0 {
		return nil
	}

	ordered := orderByConfidence(patterns)

	return &Aggregate{
		SectionHeaders: mergeHeaders(patterns),
		NumberingStyle: modeString(collectNumberingStyles(patterns), "decimal"),
		Terminology:    mergeTerminology(ordered),
		Structure:      richestStructure(patterns),
		PricingFormat:  firstNonEmpty(ordered, func(p Pattern) string { return p.PricingFormat }),
		Typography:     mergeTypography(patterns),
		Colors:         mergeColors(patterns),
		DocumentCount:  len(patterns),
	}
}

// orderByConfidence sorts confidence-descending with a content-based
// tie-break so "first non-null" picks are order-independent.
func orderByConfidence(patterns []Pattern) []Pattern {
	ordered := make([]Pattern, len(patterns))
	copy(ordered, patterns)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].ConfidenceScore != ordered[j].ConfidenceScore {
			return ordered[i].ConfidenceScore > ordered[j].ConfidenceScore
		}
		return serialize(ordered[i]) < serialize(ordered[j])
	})
	return ordered
}

func serialize(v interface{}) string {
	data, _ := json.Marshal(v)
	return string(data)
}

// mergeHeaders ranks headers by frequency across documents, name ascending
// on ties, capped at maxAggregatedHeaders.
func mergeHeaders(patterns []Pattern) []string {
	counts := make(map[string]int)
	for _, p := range patterns {
		for _, h := range p.SectionHeaders {
			counts[h]++
		}
	}

	headers := make([]string, 0, len(counts))
	for h := range counts {
		headers = append(headers, h)
	}
	sort.Slice(headers, func(i, j int) bool {
		if counts[headers[i]] != counts[headers[j]] {
			return counts[headers[i]] > counts[headers[j]]
		}
		return headers[i] < headers[j]
	})

	if len(headers) > maxAggregatedHeaders {
		headers = headers[:maxAggregatedHeaders]
	}
	return headers
}

func collectNumberingStyles(patterns []Pattern) []string {
	var styles []string
	for _, p := range patterns {
		if p.NumberingStyle != "" {
			styles = append(styles, p.NumberingStyle)
		}
	}
	return styles
}

// modeString picks the most frequent value, lexicographically smallest on
// ties, fallback when the input is empty.
func modeString(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}

	best := ""
	for v, c := range counts {
		if best == "" || c > counts[best] || (c == counts[best] && v < best) {
			best = v
		}
	}
	return best
}

func mergeTerminology(ordered []Pattern) Terminology {
	return Terminology{
		KeyTerms:         unionSorted(ordered, func(p Pattern) []string { return p.Terminology.KeyTerms }),
		PhrasingPatterns: unionSorted(ordered, func(p Pattern) []string { return p.Terminology.PhrasingPatterns }),
		PriceLanguage:    firstNonEmpty(ordered, func(p Pattern) string { return p.Terminology.PriceLanguage }),
	}
}

func unionSorted(patterns []Pattern, get func(Pattern) []string) []string {
	seen := make(map[string]struct{})
	for _, p := range patterns {
		for _, v := range get(p) {
			seen[v] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// richestStructure takes the single record with the largest serialized
// structure, lexicographically smallest serialization on ties.
func richestStructure(patterns []Pattern) Structure {
	best := Structure{}
	bestSer := serialize(best)
	for _, p := range patterns {
		ser := serialize(p.Structure)
		if len(ser) > len(bestSer) || (len(ser) == len(bestSer) && ser < bestSer) {
			best = p.Structure
			bestSer = ser
		}
	}
	return best
}

func firstNonEmpty(ordered []Pattern, get func(Pattern) string) string {
	for _, p := range ordered {
		if v := get(p); v != "" {
			return v
		}
	}
	return ""
}

// mergeTypography pools font observations with the primary font weighted 2x
// and heading/body 1x each; the pooled winner becomes the aggregate primary
// font. Heading and body fonts take the mode of their own role. Heading
// sizes are averaged per level.
func mergeTypography(patterns []Pattern) Typography {
	fontWeights := make(map[string]int)
	var headingFonts, bodyFonts []string
	sizeSums := make(map[string]float64)
	sizeCounts := make(map[string]int)
	usesBold, usesItalic := false, false

	for _, p := range patterns {
		t := p.Typography
		if t.PrimaryFont != "" {
			fontWeights[t.PrimaryFont] += 2
		}
		if t.HeadingFont != "" {
			fontWeights[t.HeadingFont]++
			headingFonts = append(headingFonts, t.HeadingFont)
		}
		if t.BodyFont != "" {
			fontWeights[t.BodyFont]++
			bodyFonts = append(bodyFonts, t.BodyFont)
		}
		for level, size := range t.HeadingSizes {
			sizeSums[level] += size
			sizeCounts[level]++
		}
		usesBold = usesBold || t.UsesBold
		usesItalic = usesItalic || t.UsesItalic
	}

	typo := Typography{
		PrimaryFont: maxWeight(fontWeights),
		HeadingFont: modeString(headingFonts, ""),
		BodyFont:    modeString(bodyFonts, ""),
		UsesBold:    usesBold,
		UsesItalic:  usesItalic,
	}

	if len(sizeSums) > 0 {
		typo.HeadingSizes = make(map[string]float64, len(sizeSums))
		for level, sum := range sizeSums {
			typo.HeadingSizes[level] = sum / float64(sizeCounts[level])
		}
	}

	return typo
}

// mergeColors pools palette entries with the primary text color weighted 2x;
// the top three pooled colors fill the aggregate palette slots in order.
func mergeColors(patterns []Pattern) Colors {
	weights := make(map[string]int)
	for _, p := range patterns {
		if p.Colors.PrimaryText != "" {
			weights[p.Colors.PrimaryText] += 2
		}
		if p.Colors.Heading != "" {
			weights[p.Colors.Heading]++
		}
		if p.Colors.Accent != "" {
			weights[p.Colors.Accent]++
		}
	}
	if len(weights) == 0 {
		return Colors{}
	}

	colors := make([]string, 0, len(weights))
	for c := range weights {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool {
		if weights[colors[i]] != weights[colors[j]] {
			return weights[colors[i]] > weights[colors[j]]
		}
		return colors[i] < colors[j]
	})

	var out Colors
	out.PrimaryText = colors[0]
	if len(colors) > 1 {
		out.Heading = colors[1]
	}
	if len(colors) > 2 {
		out.Accent = colors[2]
	}
	return out
}

// maxWeight returns the key with the highest weight, lexicographically
// smallest on ties, empty for an empty map.
func maxWeight(weights map[string]int) string {
	best := ""
	for k, w := range weights {
		if best == "" || w > weights[best] || (w == weights[best] && k < best) {
			best = k
		}
	}
	return best
}
