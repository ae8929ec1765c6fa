package pricing

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-estimator-be/pkg/llm"
)

func f(v float64) *float64 { return &v }

type stubProvider struct {
	response string
	err      error
	prompts  []string
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubProvider) ChatStream(ctx context.Context, history []llm.Message, handler llm.StreamHandler, options ...llm.Option) error {
	if s.err != nil {
		return s.err
	}
	return handler(s.response)
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func TestExtractionValid(t *testing.T) {
	tests := []struct {
		name       string
		extraction *Extraction
		want       bool
	}{
		{"nil", nil, false},
		{"empty", &Extraction{}, false},
		{"line item only", &Extraction{LineItems: []LineItem{{Description: "demo"}}}, true},
		{"grand total only", &Extraction{Summary: Summary{GrandTotal: f(8400)}}, true},
		{"both", &Extraction{
			LineItems: []LineItem{{Description: "demo"}},
			Summary:   Summary{GrandTotal: f(8400)},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.extraction.Valid())
		})
	}
}

func TestExtractSkipsShortText(t *testing.T) {
	provider := &stubProvider{}
	e := NewExtractor(provider)

	result, err := e.Extract(context.Background(), "tiny scope")

	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Empty(t, provider.prompts)
}

func TestExtractDiscardsWithoutPricingSignal(t *testing.T) {
	provider := &stubProvider{response: `{"project_info": {"project_type": "bathroom remodel"}, "confidence_score": 0.4}`}
	e := NewExtractor(provider)

	result, err := e.Extract(context.Background(), strings.Repeat("scope description without numbers. ", 5))

	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestExtractParsesLineItems(t *testing.T) {
	provider := &stubProvider{response: `{
		"project_info": {"project_type": "bathroom remodel", "date": "2024-03-01"},
		"line_items": [
			{"description": "Demo existing bathroom", "category": "labor", "quantity": 16, "unit": "hours", "unit_cost": 85, "total_cost": 1360}
		],
		"summary": {"grand_total": 8400},
		"confidence_score": 0.9
	}`}
	e := NewExtractor(provider)

	result, err := e.Extract(context.Background(), strings.Repeat("Bathroom Remodel - Total: $8,400. ", 3))

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "bathroom remodel", result.ProjectInfo.ProjectType)
	require.Len(t, result.LineItems, 1)
	assert.Equal(t, 85.0, *result.LineItems[0].UnitCost)
	assert.Equal(t, 8400.0, *result.Summary.GrandTotal)
	assert.Equal(t, 0.9, result.ConfidenceScore)
}

func TestExtractTruncatesLongText(t *testing.T) {
	provider := &stubProvider{response: `{"summary": {"grand_total": 100}}`}
	e := NewExtractor(provider)

	_, err := e.Extract(context.Background(), strings.Repeat("x", maxPromptText+4000))

	require.NoError(t, err)
	require.Len(t, provider.prompts, 1)
	assert.Less(t, len(provider.prompts[0]), maxPromptText+len(extractionPrompt))
}

func TestScopeKeywords(t *testing.T) {
	keywords := ScopeKeywords("Full kitchen remodel with new cabinets and tile flooring")

	assert.Contains(t, keywords, "kitchen")
	assert.Contains(t, keywords, "remodel")
	assert.Contains(t, keywords, "cabinet")
	assert.Contains(t, keywords, "tile")
	assert.NotContains(t, keywords, "bathroom")
}

func TestScopeKeywordsNoOverlap(t *testing.T) {
	assert.Nil(t, ScopeKeywords("tell me a joke"))
}

func TestScopeKeywordsCapped(t *testing.T) {
	query := "bathroom kitchen bedroom basement attic garage remodel renovation " +
		"repair replacement plumbing electrical hvac roofing flooring painting"

	keywords := ScopeKeywords(query)

	assert.Len(t, keywords, maxScopeKeywords)
}

func TestComputeCategoryStatsEmpty(t *testing.T) {
	assert.Nil(t, ComputeCategoryStats("electrical", nil))
}

func TestComputeCategoryStats(t *testing.T) {
	extractions := []Extraction{
		{
			LineItems: []LineItem{
				{Description: "Rough-in wiring", Category: "electrical", UnitCost: f(80), TotalCost: f(2400)},
				{Description: "Recessed lighting", Category: "electrical/lighting", UnitCost: f(120), TotalCost: f(960)},
			},
		},
		{
			LineItems: []LineItem{
				{Description: "rough-in wiring", Category: "Electrical", UnitCost: f(100), TotalCost: f(3000)},
			},
		},
	}

	stats := ComputeCategoryStats("electrical", extractions)

	require.NotNil(t, stats)
	assert.Equal(t, "electrical", stats.Category)
	assert.Equal(t, 3, stats.SampleCount)
	assert.InDelta(t, 2120.0, stats.AvgTotal, 0.001)
	assert.Equal(t, 960.0, stats.MinTotal)
	assert.Equal(t, 3000.0, stats.MaxTotal)
	assert.InDelta(t, 100.0, stats.AvgUnitCost, 0.001)
	assert.Equal(t, []string{"rough-in wiring", "recessed lighting"}, stats.CommonItems)
}

func TestComputeCategoryStatsIgnoresOtherCategories(t *testing.T) {
	// A mixed-trade estimate: only the electrical row may shape the
	// electrical stats, and the document's grand total never leaks in.
	extractions := []Extraction{
		{
			LineItems: []LineItem{
				{Description: "Panel upgrade", Category: "electrical", UnitCost: f(100), TotalCost: f(1600)},
				{Description: "Repipe whole house", Category: "plumbing", UnitCost: f(900), TotalCost: f(9000)},
			},
			Summary: Summary{GrandTotal: f(50000)},
		},
	}

	stats := ComputeCategoryStats("electrical", extractions)

	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.SampleCount)
	assert.Equal(t, 100.0, stats.AvgUnitCost)
	assert.Equal(t, 1600.0, stats.AvgTotal)
	assert.Equal(t, 1600.0, stats.MinTotal)
	assert.Equal(t, 1600.0, stats.MaxTotal)
	assert.Equal(t, []string{"panel upgrade"}, stats.CommonItems)
	assert.NotContains(t, stats.CommonItems, "repipe whole house")
}

func TestComputeCategoryStatsNoMatches(t *testing.T) {
	extractions := []Extraction{
		{LineItems: []LineItem{{Description: "Repipe", Category: "plumbing", TotalCost: f(9000)}}},
	}

	stats := ComputeCategoryStats("electrical", extractions)

	require.NotNil(t, stats)
	assert.Equal(t, 0, stats.SampleCount)
	assert.Zero(t, stats.AvgTotal)
	assert.Empty(t, stats.CommonItems)
}

func TestComputeCategoryStatsCommonItemsCapped(t *testing.T) {
	var items []LineItem
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		items = append(items, LineItem{Description: name, Category: "misc"})
	}

	stats := ComputeCategoryStats("misc", []Extraction{{LineItems: items}})

	require.NotNil(t, stats)
	assert.Len(t, stats.CommonItems, maxCommonItems)
}
