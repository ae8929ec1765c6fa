package pricing

import (
	"context"
	"fmt"
	"strings"

	"ai-estimator-be/pkg/llm"
)

const (
	// minTextLength is the minimum document length worth mining for prices.
	minTextLength = 50
	// maxPromptText bounds the text prefix sent to the model.
	maxPromptText = 12000
)

const extractionPrompt = `Extract all pricing and cost information from this contractor document.

Document text:
%s

Extract and return a JSON object with these fields:
{
    "project_info": {
        "project_type": "e.g., bathroom remodel, kitchen renovation, deck construction",
        "project_name": "name or address if mentioned",
        "location": "city/region if mentioned",
        "date": "document date if found, as YYYY-MM-DD",
        "scope_notes": "brief description of project scope"
    },
    "line_items": [
        {
            "description": "what the item covers",
            "category": "labor|materials|equipment|permits|other",
            "quantity": 0.0,
            "unit": "e.g., sq ft, hours, each",
            "unit_cost": 0.0,
            "total_cost": 0.0,
            "notes": "any qualifiers"
        }
    ],
    "summary": {
        "subtotal": 0.0,
        "labor_total": 0.0,
        "materials_total": 0.0,
        "overhead": 0.0,
        "profit": 0.0,
        "tax": 0.0,
        "discount": 0.0,
        "grand_total": 0.0
    },
    "notes": "anything notable about how this document prices work",
    "confidence_score": 0.0-1.0
}

Omit any numeric field the document does not state. Do not invent numbers.
Return ONLY valid JSON, no markdown or explanation.`

// Extractor mines documents for structured pricing data via the LLM.
type Extractor struct {
	provider llm.LLMProvider
}

func NewExtractor(provider llm.LLMProvider) *Extractor {
	return &Extractor{provider: provider}
}

// Extract returns the document's pricing payload, or nil when the document
// is too short, the model output is unusable, or the result carries no
// pricing signal. Content-level failures never return an error: a document
// without prices is still a valid ingest.
func (e *Extractor) Extract(ctx context.Context, text string) (*Extraction, error) {
	if len(strings.TrimSpace(text)) < minTextLength {
		return nil, nil
	}
	if len(text) > maxPromptText {
		text = text[:maxPromptText]
	}

	response, err := e.provider.Generate(ctx,
		fmt.Sprintf(extractionPrompt, text),
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(4000),
	)
	if err != nil {
		return nil, err
	}

	var extraction Extraction
	if err := llm.DecodeJSONBlock(response, &extraction); err != nil {
		return nil, nil
	}
	if !extraction.Valid() {
		return nil, nil
	}

	return &extraction, nil
}
