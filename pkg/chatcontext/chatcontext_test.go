package chatcontext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-estimator-be/pkg/formatpattern"
)

func f(v float64) *float64 { return &v }

func TestDetectPricingMode(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		current  PricingMode
		want     PricingMode
		detected bool
	}{
		{"criteria keyword", "let's use criteria pricing", ModePending, ModeCriteria, true},
		{"criteria numeral", "1", ModePending, ModeCriteria, true},
		{"criteria option", "I'll go with option 1", ModePending, ModeCriteria, true},
		{"historical keyword", "use historical please", ModePending, ModeHistorical, true},
		{"historical phrase", "base it on past projects", ModePending, ModeHistorical, true},
		{"historical numeral", " 2 ", ModePending, ModeHistorical, true},
		{"combined keyword", "combined", ModePending, ModeCombined, true},
		{"combined both", "use both approaches", ModePending, ModeCombined, true},
		{"combined numeral", "3", ModePending, ModeCombined, true},
		{"both named means combined", "use criteria and historical together", ModePending, ModeCombined, true},
		{"unmatched leaves mode", "what would a vanity cost?", ModeHistorical, ModeHistorical, false},
		{"ambiguous digits ignored", "the room is 12 by 14", ModePending, ModePending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, detected := DetectPricingMode(tt.message, tt.current)
			assert.Equal(t, tt.want, mode)
			assert.Equal(t, tt.detected, detected)
		})
	}
}

func TestExtractTags(t *testing.T) {
	tags := ExtractTags("We want to remodel the kitchen with new cabinets and redo the bathroom shower")

	assert.Contains(t, tags, "kitchen")
	assert.Contains(t, tags, "bathroom")
	assert.NotContains(t, tags, "roofing")
}

func TestExtractTagsCapped(t *testing.T) {
	text := "bathroom kitchen basement attic garage roof furnace paint deck addition"

	tags := ExtractTags(text)

	assert.Len(t, tags, maxTags)
	// Alphabetical category order means the first five matched categories win.
	assert.Equal(t, []string{"addition", "attic", "basement", "bathroom", "deck"}, tags)
}

func TestExtractTagsNoMatch(t *testing.T) {
	assert.Empty(t, ExtractTags("hello there, how are you today"))
}

func TestExtractTagsSetSemantics(t *testing.T) {
	tags := ExtractTags("kitchen kitchen kitchen cabinets countertop")

	assert.Equal(t, []string{"kitchen"}, tags)
}

func TestPackExcerptsEmpty(t *testing.T) {
	assert.Equal(t, "", PackExcerpts(nil))
	assert.Equal(t, "", PackExcerpts([]string{"", "   "}))
}

func TestPackExcerptsPrefixesAndJoins(t *testing.T) {
	packed := PackExcerpts([]string{"first chunk", "second chunk"})

	parts := strings.Split(packed, "\n\n")
	require.Len(t, parts, 2)
	assert.Equal(t, excerptPrefix+"first chunk", parts[0])
	assert.Equal(t, excerptPrefix+"second chunk", parts[1])
}

func TestPackExcerptsBudget(t *testing.T) {
	big := strings.Repeat("a", 1500)
	packed := PackExcerpts([]string{big, big, big, big})

	assert.LessOrEqual(t, len(packed), excerptBudget+len("\n\n\n\n")+3)
	assert.True(t, strings.HasSuffix(packed, "..."))
}

func TestPackExcerptsSkipsTinyRemainder(t *testing.T) {
	// First excerpt leaves under minPartialExcerpt characters of budget, so
	// the second is dropped instead of truncated.
	first := strings.Repeat("a", excerptBudget-len(excerptPrefix)-50)
	packed := PackExcerpts([]string{first, "this one should not appear because the leftover budget is too small to be useful"})

	assert.NotContains(t, packed, "should not appear")
	assert.False(t, strings.HasSuffix(packed, "..."))
}

func baseInput() Input {
	return Input{
		CompanyName:    "Acme Renovations",
		LaborRate:      f(95),
		OverheadMarkup: 0.15,
		ProfitMargin:   0.10,
		Region:         "Pacific Northwest",
		Mode:           ModeCombined,
	}
}

func TestBuildSystemPromptCore(t *testing.T) {
	in := baseInput()
	in.LaborItems = []LaborLine{
		{Name: "Tile setter", Rate: 85, Unit: "hour", Category: "Finishes"},
	}
	in.DocumentContext = "[Document excerpt]: tile runs $12/sq ft installed"

	prompt := BuildSystemPrompt(in)

	assert.Contains(t, prompt, "Acme Renovations")
	assert.Contains(t, prompt, "Base Labor Rate: $95/hour")
	assert.Contains(t, prompt, "Overhead Markup: 15%")
	assert.Contains(t, prompt, "Profit Margin: 10%")
	assert.Contains(t, prompt, "Region: Pacific Northwest")
	assert.Contains(t, prompt, "- Tile setter: $85/hour (Finishes)")
	assert.Contains(t, prompt, "tile runs $12/sq ft installed")
}

func TestBuildSystemPromptDefaults(t *testing.T) {
	prompt := BuildSystemPrompt(Input{Mode: ModeCombined})

	assert.Contains(t, prompt, "the contractor")
	assert.Contains(t, prompt, "Base Labor Rate: $N/A/hour")
	assert.Contains(t, prompt, "Region: Not specified")
	assert.Contains(t, prompt, "No labor items configured yet")
	assert.Contains(t, prompt, "No relevant documents found for this query.")
}

func TestBuildSystemPromptLaborOverflow(t *testing.T) {
	in := baseInput()
	for i := 0; i < 28; i++ {
		in.LaborItems = append(in.LaborItems, LaborLine{Name: "Item", Rate: 50, Unit: "hour"})
	}

	prompt := BuildSystemPrompt(in)

	assert.Contains(t, prompt, "... and 3 more items")
}

func TestBuildSystemPromptCriteriaOmitsHistorical(t *testing.T) {
	in := baseInput()
	in.Mode = ModeCriteria
	in.Historical = []HistoricalProject{{ProjectType: "bathroom remodel", GrandTotal: f(8400)}}

	prompt := BuildSystemPrompt(in)

	assert.NotContains(t, prompt, "Historical Pricing Reference")
}

func TestBuildSystemPromptHistoricalBlock(t *testing.T) {
	in := baseInput()
	in.Mode = ModeHistorical
	in.Historical = []HistoricalProject{
		{ProjectName: "Maple St bath", ProjectType: "bathroom remodel", Date: "2023-06-01", GrandTotal: f(8400), ItemCount: 12},
	}

	prompt := BuildSystemPrompt(in)

	assert.Contains(t, prompt, "Historical Pricing Reference")
	assert.Contains(t, prompt, "Maple St bath (bathroom remodel), dated 2023-06-01, total $8400.00, 12 line items")
	assert.Contains(t, prompt, "4% per year")
	assert.Contains(t, prompt, "0.8x")
	assert.Contains(t, prompt, "15-30%")
}

func TestBuildSystemPromptHistoricalFallback(t *testing.T) {
	in := baseInput()
	in.Mode = ModeHistorical

	prompt := BuildSystemPrompt(in)

	assert.Contains(t, prompt, "No comparable past projects were found")
}

func TestBuildSystemPromptPendingAsksForMode(t *testing.T) {
	in := baseInput()
	in.Mode = ModePending

	prompt := BuildSystemPrompt(in)

	assert.Contains(t, prompt, "How would you like this estimate priced?")
	assert.Contains(t, prompt, "Reply with 1, 2, or 3.")
}

func TestBuildSystemPromptFormatFallback(t *testing.T) {
	prompt := BuildSystemPrompt(baseInput())

	assert.Contains(t, prompt, "No company documents uploaded yet")
	assert.Contains(t, prompt, "What format would you like for this estimate?")
}

func TestBuildSystemPromptLearnedFormat(t *testing.T) {
	in := baseInput()
	in.FormatPatterns = &formatpattern.Aggregate{
		SectionHeaders: []string{"Scope of Work", "Materials", "Totals"},
		NumberingStyle: "decimal",
		PricingFormat:  "itemized with totals",
		Terminology:    formatpattern.Terminology{KeyTerms: []string{"allowance", "rough-in"}},
		DocumentCount:  7,
	}

	prompt := BuildSystemPrompt(in)

	assert.Contains(t, prompt, "## Company Document Format (learned from 7 documents)")
	assert.Contains(t, prompt, "- Use these sections: Scope of Work, Materials, Totals")
	assert.Contains(t, prompt, "- Numbering style: decimal")
	assert.Contains(t, prompt, "- Pricing format: itemized with totals")
	assert.Contains(t, prompt, "- Key terminology: allowance, rough-in")
	assert.Contains(t, prompt, "Replicate the style and format")
	assert.NotContains(t, prompt, "No company documents uploaded yet")
}

func TestBuildSystemPromptPriorConversations(t *testing.T) {
	in := baseInput()
	in.PriorConversations = []PriorConversation{
		{Title: "Hall bath refresh", Summary: "Vanity swap and new tile.", Tags: []string{"bathroom"}},
	}

	prompt := BuildSystemPrompt(in)

	assert.Contains(t, prompt, "## Related Past Conversations")
	assert.Contains(t, prompt, "- Hall bath refresh [bathroom]: Vanity swap and new tile.")
}

func TestBuildPriorConversationsBudget(t *testing.T) {
	long := strings.Repeat("history ", 100)
	prior := []PriorConversation{
		{Title: "One", Summary: long},
		{Title: "Two", Summary: long},
		{Title: "Three", Summary: long},
	}

	block := buildPriorConversations(prior)

	assert.LessOrEqual(t, len(block), priorConversationBudget)
}
