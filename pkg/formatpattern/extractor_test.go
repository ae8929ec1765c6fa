package formatpattern

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-estimator-be/pkg/extract"
	"ai-estimator-be/pkg/llm"
)

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

const sampleDocument = `Scope of Work
1. Demo existing bathroom down to studs.
2. Rough-in plumbing for new fixture locations.
Materials
Tile, backer board, vanity, and trim per owner selection.`

func TestExtractSkipsShortText(t *testing.T) {
	provider := &stubProvider{}
	e := NewExtractor(provider)

	pattern, err := e.Extract(context.Background(), "too short", nil)

	require.NoError(t, err)
	assert.Nil(t, pattern)
	assert.Empty(t, provider.prompts)
}

func TestExtractParsesFencedJSON(t *testing.T) {
	provider := &stubProvider{response: "```json\n" + `{
		"section_headers": ["Scope of Work", "Materials"],
		"numbering_style": "decimal",
		"pricing_format": "per line item",
		"confidence_score": 0.85
	}` + "\n```"}
	e := NewExtractor(provider)

	pattern, err := e.Extract(context.Background(), sampleDocument, nil)

	require.NoError(t, err)
	require.NotNil(t, pattern)
	assert.Equal(t, []string{"Scope of Work", "Materials"}, pattern.SectionHeaders)
	assert.Equal(t, "decimal", pattern.NumberingStyle)
	assert.Equal(t, 0.85, pattern.ConfidenceScore)
}

func TestExtractTruncatesLongText(t *testing.T) {
	provider := &stubProvider{response: `{"numbering_style": "none", "confidence_score": 0.2}`}
	e := NewExtractor(provider)

	long := strings.Repeat("x", maxPromptText+5000)
	_, err := e.Extract(context.Background(), long, nil)

	require.NoError(t, err)
	require.Len(t, provider.prompts, 1)
	assert.Less(t, len(provider.prompts[0]), maxPromptText+len(extractionPrompt))
}

func TestExtractUnusableResponse(t *testing.T) {
	provider := &stubProvider{response: "I could not find any formatting."}
	e := NewExtractor(provider)

	pattern, err := e.Extract(context.Background(), sampleDocument, nil)

	require.NoError(t, err)
	assert.Nil(t, pattern)
}

func TestExtractProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("upstream unavailable")}
	e := NewExtractor(provider)

	_, err := e.Extract(context.Background(), sampleDocument, nil)

	assert.Error(t, err)
}

func TestExtractDerivesTypographyFromTally(t *testing.T) {
	tally := extract.NewTally()
	for i := 0; i < 10; i++ {
		tally.Add("Calibri", 11, false, false, "333333")
	}
	tally.Add("Arial", 22, true, false, "1F4E79")
	tally.Add("Arial", 16, true, false, "1F4E79")

	provider := &stubProvider{response: `{"numbering_style": "decimal", "confidence_score": 0.7}`}
	e := NewExtractor(provider)

	pattern, err := e.Extract(context.Background(), sampleDocument, tally)

	require.NoError(t, err)
	require.NotNil(t, pattern)
	assert.Equal(t, "Calibri", pattern.Typography.PrimaryFont)
	assert.Equal(t, "Calibri", pattern.Typography.BodyFont)
	assert.Equal(t, "Arial", pattern.Typography.HeadingFont)
	assert.True(t, pattern.Typography.UsesBold)
	assert.False(t, pattern.Typography.UsesItalic)
	assert.Equal(t, "333333", pattern.Colors.PrimaryText)
	assert.Equal(t, "1F4E79", pattern.Colors.Heading)
}

func TestExtractHeadingSizesDescend(t *testing.T) {
	tally := extract.NewTally()
	tally.Add("Calibri", 11, false, false, "")
	tally.Add("Calibri", 11, false, false, "")
	tally.Add("Calibri", 18, true, false, "")
	tally.Add("Calibri", 24, true, false, "")

	provider := &stubProvider{response: `{"confidence_score": 0.5}`}
	e := NewExtractor(provider)

	pattern, err := e.Extract(context.Background(), sampleDocument, tally)

	require.NoError(t, err)
	require.NotNil(t, pattern)
	sizes := pattern.Typography.HeadingSizes
	require.NotEmpty(t, sizes)
	assert.Equal(t, 24.0, sizes["h1"])
	assert.Equal(t, 18.0, sizes["h2"])
	assert.Equal(t, 11.0, sizes["h3"])
}
