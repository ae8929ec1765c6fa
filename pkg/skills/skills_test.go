package skills

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-estimator-be/pkg/llm"
)

type stubProvider struct {
	response string
	system   string
	input    string
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, nil
}

func (s *stubProvider) ChatStream(ctx context.Context, history []llm.Message, handler llm.StreamHandler, options ...llm.Option) error {
	return handler(s.response)
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	opts := &llm.Options{}
	for _, o := range options {
		o(opts)
	}
	s.system = opts.System
	s.input = prompt
	return s.response, nil
}

func TestRegistryGet(t *testing.T) {
	provider := &stubProvider{}
	registry := NewRegistry(NewSpanishJobOrder(provider), NewMaterialsTakeoff(provider))

	skill, err := registry.Get("spanish_job_order")
	require.NoError(t, err)
	assert.Equal(t, "spanish_job_order", skill.Name())

	_, err = registry.Get("does_not_exist")
	assert.Error(t, err)
}

func TestRegistryListSorted(t *testing.T) {
	provider := &stubProvider{}
	registry := NewRegistry(NewSpanishJobOrder(provider), NewMaterialsTakeoff(provider))

	infos := registry.List()

	require.Len(t, infos, 2)
	assert.Equal(t, "materials_takeoff", infos[0].Name)
	assert.Equal(t, "spanish_job_order", infos[1].Name)
	assert.NotEmpty(t, infos[0].Description)
}

func TestSpanishJobOrderUsesOwnPrompt(t *testing.T) {
	provider := &stubProvider{response: "ORDEN DE TRABAJO"}
	skill := NewSpanishJobOrder(provider)

	out, err := skill.Execute(context.Background(), "Replace bathroom vanity", nil)

	require.NoError(t, err)
	assert.Equal(t, "ORDEN DE TRABAJO", out)
	assert.Contains(t, provider.system, "orden de trabajo")
	assert.Equal(t, "Replace bathroom vanity", provider.input)
}

func TestMaterialsTakeoffAppendsContext(t *testing.T) {
	provider := &stubProvider{response: "takeoff"}
	skill := NewMaterialsTakeoff(provider)

	_, err := skill.Execute(context.Background(), "Frame a 12x14 deck", map[string]string{
		"region":  "Pacific Northwest",
		"company": "Acme Renovations",
	})

	require.NoError(t, err)
	assert.Contains(t, provider.system, "materials takeoffs")
	assert.Contains(t, provider.system, "## Context")
	assert.Contains(t, provider.system, "- company: Acme Renovations")
	assert.Contains(t, provider.system, "- region: Pacific Northwest")
	// Context keys emit in sorted order.
	assert.Less(t,
		strings.Index(provider.system, "- company:"),
		strings.Index(provider.system, "- region:"),
	)
}
