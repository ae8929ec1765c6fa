package chatcontext

import (
	"fmt"
	"strings"

	"ai-estimator-be/pkg/formatpattern"
)

const (
	// maxLaborItems caps how many labor items the prompt lists.
	maxLaborItems = 25
	// priorConversationBudget is the character budget for past-conversation
	// context.
	priorConversationBudget = 1500
)

const systemPromptTemplate = `You are REMODLY AI, an expert estimating assistant for %s.

Your role is to help create accurate estimates for remodeling and renovation projects.

## Organization Pricing Context
- Base Labor Rate: $%s/hour
- Overhead Markup: %.0f%%
- Profit Margin: %.0f%%
- Region: %s

## Available Labor Items
%s

## Relevant Document Context
%s

%s## Assumption Handling Rules
- NEVER invent project scope beyond what the user described
- When details are unknown, use neutral phrasing: "Install vanity (size/style per owner selection)"
- Ask clarifying questions for: dimensions, material grades, fixture counts, access conditions
- Keep assumptions minimal and conservative
- Do not include pricing unless you have specific rates from context

## Quality Guidelines
- Scope matches user intent exactly - no additions
- All unknown specifications phrased neutrally
- Pricing uses organization's actual rates from uploaded documents

## Interaction Guidelines
1. Ask clarifying questions about project scope, materials, and specifications before providing estimates
2. Use the organization's labor items and rates when calculating costs
3. Apply overhead and profit margins to arrive at final prices
4. Provide itemized breakdowns when giving estimates
5. Be conversational but professional
6. If you don't have enough information to estimate accurately, ask before guessing
7. Reference pricing from uploaded documents when relevant

Remember: You represent this contractor's business. Use their actual rates and pricing from the context provided.`

// LaborLine is one configured labor item presented in the prompt.
type LaborLine struct {
	Name     string
	Rate     float64
	Unit     string
	Category string
}

// HistoricalProject is one comparable past project surfaced as pricing
// reference data.
type HistoricalProject struct {
	ProjectType string
	ProjectName string
	Date        string
	GrandTotal  *float64
	ItemCount   int
	Similarity  float64
}

// PriorConversation is a past conversation summary offered as context.
type PriorConversation struct {
	Title   string
	Summary string
	Tags    []string
}

// Input carries everything the composer folds into one system prompt.
type Input struct {
	CompanyName    string
	LaborRate      *float64
	OverheadMarkup float64 // fraction, e.g. 0.15
	ProfitMargin   float64 // fraction
	Region         string

	LaborItems      []LaborLine
	DocumentContext string // pre-packed excerpt block, empty when none
	FormatPatterns  *formatpattern.Aggregate

	Mode       PricingMode
	Historical []HistoricalProject

	PriorConversations []PriorConversation
}

// BuildSystemPrompt assembles the full system prompt: organization pricing
// context, labor items, retrieved document excerpts, historical pricing
// reference (omitted in criteria mode), learned format conventions, prior
// conversation context, and a mode-selection ask while the mode is pending.
func BuildSystemPrompt(in Input) string {
	companyName := in.CompanyName
	if companyName == "" {
		companyName = "the contractor"
	}

	laborRate := "N/A"
	if in.LaborRate != nil {
		laborRate = fmt.Sprintf("%g", *in.LaborRate)
	}

	region := in.Region
	if region == "" {
		region = "Not specified"
	}

	docContext := in.DocumentContext
	if docContext == "" {
		docContext = "No relevant documents found for this query."
	}

	var middle strings.Builder
	if in.Mode != ModeCriteria {
		middle.WriteString(buildHistoricalBlock(in.Historical))
		middle.WriteString("\n\n")
	}
	middle.WriteString(buildFormatContext(in.FormatPatterns))
	middle.WriteString("\n\n")
	if prior := buildPriorConversations(in.PriorConversations); prior != "" {
		middle.WriteString(prior)
		middle.WriteString("\n\n")
	}
	if in.Mode == ModePending || in.Mode == "" {
		middle.WriteString(pendingModeBlock)
		middle.WriteString("\n\n")
	}

	return fmt.Sprintf(systemPromptTemplate,
		companyName,
		laborRate,
		in.OverheadMarkup*100,
		in.ProfitMargin*100,
		region,
		buildLaborItemsBlock(in.LaborItems),
		docContext,
		middle.String(),
	)
}

func buildLaborItemsBlock(items []LaborLine) string {
	if len(items) == 0 {
		return "No labor items configured yet. Ask the user about their rates."
	}

	var lines []string
	for i, item := range items {
		if i == maxLaborItems {
			break
		}
		category := item.Category
		if category == "" {
			category = "General"
		}
		lines = append(lines, fmt.Sprintf("- %s: $%g/%s (%s)", item.Name, item.Rate, item.Unit, category))
	}
	if len(items) > maxLaborItems {
		lines = append(lines, fmt.Sprintf("... and %d more items", len(items)-maxLaborItems))
	}
	return strings.Join(lines, "\n")
}

const pendingModeBlock = `## Pricing Method
No pricing method has been chosen for this estimate yet. Before calculating any costs, ASK the user:
"How would you like this estimate priced? Options:
1. Criteria pricing (your configured labor rate, overhead, and margin)
2. Historical pricing (based on your comparable past projects)
3. Combined (both, cross-checked)
Reply with 1, 2, or 3."

Do not produce priced line items until the user has chosen.`

const historicalAdjustmentRules = `When using these reference projects, apply the following adjustments in your reasoning (state them, do not hide them):
- Inflation: adjust totals upward by roughly 4% per year from the project date to today.
- Material grade: adjust ±15-30% when the user's material grade differs from the reference project.
- Scale: for significantly larger projects, apply roughly a 0.8x per-unit scaling factor.`

// buildHistoricalBlock renders comparable past projects as reference data
// with adjustment rules the model applies itself. Always emits a block so
// the model sees an explicit empty state rather than silence.
func buildHistoricalBlock(projects []HistoricalProject) string {
	if len(projects) == 0 {
		return `## Historical Pricing Reference
No comparable past projects were found for this scope. Base the estimate on the organization's configured rates above, and say so when presenting numbers.`
	}

	var b strings.Builder
	b.WriteString("## Historical Pricing Reference\n")
	b.WriteString("Comparable past projects from this organization's documents:\n")
	for _, p := range projects {
		name := p.ProjectName
		if name == "" {
			name = p.ProjectType
		}
		if name == "" {
			name = "Unnamed project"
		}
		b.WriteString(fmt.Sprintf("- %s", name))
		if p.ProjectType != "" && p.ProjectType != name {
			b.WriteString(fmt.Sprintf(" (%s)", p.ProjectType))
		}
		if p.Date != "" {
			b.WriteString(fmt.Sprintf(", dated %s", p.Date))
		}
		if p.GrandTotal != nil {
			b.WriteString(fmt.Sprintf(", total $%.2f", *p.GrandTotal))
		}
		if p.ItemCount > 0 {
			b.WriteString(fmt.Sprintf(", %d line items", p.ItemCount))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(historicalAdjustmentRules)
	return b.String()
}

// buildFormatContext renders learned formatting conventions, or an explicit
// ask-the-user block when the tenant has no analyzed documents yet.
func buildFormatContext(agg *formatpattern.Aggregate) string {
	if agg == nil {
		return `## Document Format
No company documents uploaded yet. Before providing an estimate, ASK the user:
"What format would you like for this estimate? Options:
1. Simple summary (line items + total)
2. Detailed breakdown (labor, materials, overhead separately)
3. Formal proposal (with scope description, terms, and signature line)
Or describe your preferred format."

Once they specify, use that format consistently for the conversation.`
	}

	parts := []string{
		fmt.Sprintf("## Company Document Format (learned from %d documents)", agg.DocumentCount),
	}
	if len(agg.SectionHeaders) > 0 {
		headers := agg.SectionHeaders
		if len(headers) > 10 {
			headers = headers[:10]
		}
		parts = append(parts, fmt.Sprintf("- Use these sections: %s", strings.Join(headers, ", ")))
	}
	numbering := agg.NumberingStyle
	if numbering == "" {
		numbering = "decimal"
	}
	parts = append(parts, fmt.Sprintf("- Numbering style: %s", numbering))
	if agg.PricingFormat != "" {
		parts = append(parts, fmt.Sprintf("- Pricing format: %s", agg.PricingFormat))
	}
	if len(agg.Terminology.KeyTerms) > 0 {
		terms := agg.Terminology.KeyTerms
		if len(terms) > 10 {
			terms = terms[:10]
		}
		parts = append(parts, fmt.Sprintf("- Key terminology: %s", strings.Join(terms, ", ")))
	}
	parts = append(parts, "\nReplicate the style and format of this company's existing documents.")

	return strings.Join(parts, "\n")
}

// buildPriorConversations packs past conversation summaries into at most
// priorConversationBudget characters. Returns "" when there is nothing to
// show.
func buildPriorConversations(prior []PriorConversation) string {
	if len(prior) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Related Past Conversations\n")
	for _, conv := range prior {
		line := fmt.Sprintf("- %s", conv.Title)
		if len(conv.Tags) > 0 {
			line += fmt.Sprintf(" [%s]", strings.Join(conv.Tags, ", "))
		}
		if conv.Summary != "" {
			line += ": " + conv.Summary
		}
		line += "\n"

		if b.Len()+len(line) > priorConversationBudget {
			remaining := priorConversationBudget - b.Len()
			if remaining > 20 {
				b.WriteString(line[:remaining-3] + "...")
			}
			break
		}
		b.WriteString(line)
	}
	return strings.TrimRight(b.String(), "\n")
}
