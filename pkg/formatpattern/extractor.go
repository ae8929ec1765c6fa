package formatpattern

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ai-estimator-be/pkg/extract"
	"ai-estimator-be/pkg/llm"
)

const (
	// minTextLength is the minimum document length worth analyzing.
	minTextLength = 100
	// maxPromptText bounds the text prefix sent to the model.
	maxPromptText = 8000
)

const extractionPrompt = `Analyze this contractor document and extract the formatting patterns used.

Document text:
%s

Extract and return a JSON object with these fields:
{
    "section_headers": ["list of section headers used, e.g., 'Scope of Work', 'Materials'"],
    "numbering_style": "decimal|bullet|roman|none",
    "terminology": {
        "key_terms": ["important industry terms used"],
        "phrasing_patterns": ["common sentence structures"],
        "price_language": "how costs are described"
    },
    "structure": {
        "sections_order": ["order of major sections"],
        "has_summary": true/false,
        "has_totals": true/false,
        "has_assumptions": true/false
    },
    "pricing_format": "description of how prices/costs are formatted",
    "boilerplate_text": "any standard clauses or repeated legal/disclaimer text",
    "confidence_score": 0.0-1.0
}

Return ONLY valid JSON, no markdown or explanation.`

// Extractor analyzes document text for formatting conventions via the LLM
// and enriches the result with typography observed during text extraction.
type Extractor struct {
	provider llm.LLMProvider
}

func NewExtractor(provider llm.LLMProvider) *Extractor {
	return &Extractor{provider: provider}
}

// Extract returns the document's format pattern, or nil when the document is
// too short or the model output is unusable. It never returns an error for
// content-level failures: skipped format learning must not fail an ingest.
func (e *Extractor) Extract(ctx context.Context, text string, tally *extract.Tally) (*Pattern, error) {
	if len(strings.TrimSpace(text)) < minTextLength {
		return nil, nil
	}
	if len(text) > maxPromptText {
		text = text[:maxPromptText]
	}

	response, err := e.provider.Generate(ctx,
		fmt.Sprintf(extractionPrompt, text),
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(2000),
	)
	if err != nil {
		return nil, err
	}

	var pattern Pattern
	if err := llm.DecodeJSONBlock(response, &pattern); err != nil {
		return nil, nil
	}

	pattern.Typography = deriveTypography(tally)
	pattern.Colors = deriveColors(tally)

	return &pattern, nil
}

// deriveTypography maps the extraction tally onto named typography roles:
// the most frequent font is the body font, the font with the largest average
// size is the heading font, and the most frequent font overall is primary.
func deriveTypography(tally *extract.Tally) Typography {
	if tally == nil || tally.RunCount == 0 {
		return Typography{}
	}

	fonts := tally.TopFonts(5)
	typo := Typography{
		UsesBold:   tally.BoldCount > 0,
		UsesItalic: tally.ItalicCount > 0,
	}
	if len(fonts) == 0 {
		return typo
	}

	typo.PrimaryFont = fonts[0]
	typo.BodyFont = fonts[0]

	heading := fonts[0]
	for _, f := range fonts {
		if tally.AvgFontSize(f) > tally.AvgFontSize(heading) {
			heading = f
		}
	}
	typo.HeadingFont = heading

	sizes := tally.TopSizes(5)
	if len(sizes) > 0 {
		// Larger point sizes map to higher heading levels
		sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))
		typo.HeadingSizes = make(map[string]float64, len(sizes))
		for i, size := range sizes {
			typo.HeadingSizes[fmt.Sprintf("h%d", i+1)] = size
		}
	}

	return typo
}

func deriveColors(tally *extract.Tally) Colors {
	if tally == nil {
		return Colors{}
	}
	palette := tally.Colors()

	var colors Colors
	if len(palette) > 0 {
		colors.PrimaryText = palette[0]
	}
	if len(palette) > 1 {
		colors.Heading = palette[1]
	}
	if len(palette) > 2 {
		colors.Accent = palette[2]
	}
	return colors
}
