package formatpattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatePatternsEmpty(t *testing.T) {
	assert.Nil(t, AggregatePatterns(nil))
	assert.Nil(t, AggregatePatterns([]Pattern{}))
}

func TestAggregatePatternsSingle(t *testing.T) {
	p := Pattern{
		SectionHeaders: []string{"Scope of Work", "Materials"},
		NumberingStyle: "bullet",
		Terminology: Terminology{
			KeyTerms:      []string{"allowance", "rough-in"},
			PriceLanguage: "lump sum per line",
		},
		Structure:       Structure{SectionsOrder: []string{"Scope of Work"}, HasTotals: true},
		PricingFormat:   "totals per section",
		ConfidenceScore: 0.9,
		Typography:      Typography{PrimaryFont: "Arial", UsesBold: true},
		Colors:          Colors{PrimaryText: "333333"},
	}

	agg := AggregatePatterns([]Pattern{p})

	require.NotNil(t, agg)
	assert.Equal(t, 1, agg.DocumentCount)
	assert.Equal(t, []string{"Materials", "Scope of Work"}, agg.SectionHeaders)
	assert.Equal(t, "bullet", agg.NumberingStyle)
	assert.Equal(t, []string{"allowance", "rough-in"}, agg.Terminology.KeyTerms)
	assert.Equal(t, "lump sum per line", agg.Terminology.PriceLanguage)
	assert.True(t, agg.Structure.HasTotals)
	assert.Equal(t, "totals per section", agg.PricingFormat)
	assert.Equal(t, "Arial", agg.Typography.PrimaryFont)
	assert.Equal(t, "333333", agg.Colors.PrimaryText)
}

func TestAggregatePatternsOrderIndependent(t *testing.T) {
	a := Pattern{
		SectionHeaders:  []string{"Scope of Work", "Exclusions"},
		NumberingStyle:  "decimal",
		PricingFormat:   "line item totals",
		ConfidenceScore: 0.8,
		Typography:      Typography{PrimaryFont: "Calibri", HeadingSizes: map[string]float64{"h1": 18}},
	}
	b := Pattern{
		SectionHeaders:  []string{"Scope of Work", "Materials"},
		NumberingStyle:  "bullet",
		ConfidenceScore: 0.6,
		Typography:      Typography{PrimaryFont: "Arial", HeadingSizes: map[string]float64{"h1": 22}},
	}
	c := Pattern{
		SectionHeaders:  []string{"Materials"},
		NumberingStyle:  "decimal",
		PricingFormat:   "lump sum",
		ConfidenceScore: 0.9,
		Colors:          Colors{PrimaryText: "000000"},
	}

	forward := AggregatePatterns([]Pattern{a, b, c})
	reversed := AggregatePatterns([]Pattern{c, b, a})
	shuffled := AggregatePatterns([]Pattern{b, c, a})

	assert.Equal(t, forward, reversed)
	assert.Equal(t, forward, shuffled)
}

func TestAggregateHeadersByFrequency(t *testing.T) {
	agg := AggregatePatterns([]Pattern{
		{SectionHeaders: []string{"Scope of Work", "Materials"}},
		{SectionHeaders: []string{"Scope of Work", "Exclusions"}},
		{SectionHeaders: []string{"Scope of Work", "Materials"}},
	})

	require.NotNil(t, agg)
	assert.Equal(t, []string{"Scope of Work", "Materials", "Exclusions"}, agg.SectionHeaders)
}

func TestAggregateHeadersCapped(t *testing.T) {
	var headers []string
	for r := 'a'; r < 'a'+20; r++ {
		headers = append(headers, string(r))
	}

	agg := AggregatePatterns([]Pattern{{SectionHeaders: headers}})

	require.NotNil(t, agg)
	assert.Len(t, agg.SectionHeaders, maxAggregatedHeaders)
}

func TestAggregateNumberingMode(t *testing.T) {
	agg := AggregatePatterns([]Pattern{
		{NumberingStyle: "bullet"},
		{NumberingStyle: "bullet"},
		{NumberingStyle: "roman"},
	})
	require.NotNil(t, agg)
	assert.Equal(t, "bullet", agg.NumberingStyle)

	// No style anywhere falls back to decimal.
	agg = AggregatePatterns([]Pattern{{}, {}})
	require.NotNil(t, agg)
	assert.Equal(t, "decimal", agg.NumberingStyle)
}

func TestAggregatePrimaryFontWeighted(t *testing.T) {
	// Arial appears only as a primary font (weight 2). Calibri appears as a
	// primary font (2) plus a heading font (1) and wins with weight 3.
	agg := AggregatePatterns([]Pattern{
		{Typography: Typography{PrimaryFont: "Arial"}},
		{Typography: Typography{PrimaryFont: "Calibri"}},
		{Typography: Typography{HeadingFont: "Calibri"}},
	})

	require.NotNil(t, agg)
	assert.Equal(t, "Calibri", agg.Typography.PrimaryFont)
	assert.Equal(t, "Calibri", agg.Typography.HeadingFont)
}

func TestAggregateHeadingSizesMean(t *testing.T) {
	agg := AggregatePatterns([]Pattern{
		{Typography: Typography{HeadingSizes: map[string]float64{"h1": 20, "h2": 14}}},
		{Typography: Typography{HeadingSizes: map[string]float64{"h1": 24}}},
	})

	require.NotNil(t, agg)
	assert.InDelta(t, 22.0, agg.Typography.HeadingSizes["h1"], 0.001)
	assert.InDelta(t, 14.0, agg.Typography.HeadingSizes["h2"], 0.001)
}

func TestAggregateColorsWeighted(t *testing.T) {
	agg := AggregatePatterns([]Pattern{
		{Colors: Colors{PrimaryText: "000000", Accent: "CC0000"}},
		{Colors: Colors{PrimaryText: "000000", Heading: "1F4E79"}},
		{Colors: Colors{PrimaryText: "1F4E79"}},
	})

	require.NotNil(t, agg)
	// 000000 weight 4, 1F4E79 weight 3, CC0000 weight 1.
	assert.Equal(t, "000000", agg.Colors.PrimaryText)
	assert.Equal(t, "1F4E79", agg.Colors.Heading)
	assert.Equal(t, "CC0000", agg.Colors.Accent)
}

func TestAggregatePricingFormatByConfidence(t *testing.T) {
	agg := AggregatePatterns([]Pattern{
		{PricingFormat: "", ConfidenceScore: 0.95},
		{PricingFormat: "lump sum", ConfidenceScore: 0.5},
		{PricingFormat: "itemized with totals", ConfidenceScore: 0.8},
	})

	require.NotNil(t, agg)
	assert.Equal(t, "itemized with totals", agg.PricingFormat)
}

func TestAggregateTerminologyUnion(t *testing.T) {
	agg := AggregatePatterns([]Pattern{
		{Terminology: Terminology{KeyTerms: []string{"rough-in", "allowance"}}},
		{Terminology: Terminology{KeyTerms: []string{"allowance", "punch list"}}},
	})

	require.NotNil(t, agg)
	assert.Equal(t, []string{"allowance", "punch list", "rough-in"}, agg.Terminology.KeyTerms)
}

func TestAggregateStructureRichest(t *testing.T) {
	rich := Structure{
		SectionsOrder:  []string{"Scope of Work", "Materials", "Totals"},
		HasSummary:     true,
		HasTotals:      true,
		HasAssumptions: true,
	}

	agg := AggregatePatterns([]Pattern{
		{Structure: Structure{HasTotals: true}},
		{Structure: rich},
		{},
	})

	require.NotNil(t, agg)
	assert.Equal(t, rich, agg.Structure)
}
