package skills

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ai-estimator-be/pkg/llm"
)

// Skill is one focused AI capability with its own system prompt.
type Skill interface {
	Name() string
	Description() string
	Execute(ctx context.Context, input string, extra map[string]string) (string, error)
}

// Info is skill metadata returned to API clients.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// base carries the shared LLM call path for concrete skills.
type base struct {
	provider llm.LLMProvider
}

// run calls the model with the skill's system prompt, appending caller
// context as a bulleted block. Context keys are emitted in sorted order.
func (b *base) run(ctx context.Context, systemPrompt, input string, extra map[string]string, temperature float64, maxTokens int) (string, error) {
	if len(extra) > 0 {
		keys := make([]string, 0, len(extra))
		for k := range extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var sb strings.Builder
		sb.WriteString(systemPrompt)
		sb.WriteString("\n\n## Context\n")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", k, extra[k]))
		}
		systemPrompt = sb.String()
	}

	return b.provider.Generate(ctx, input,
		llm.WithSystem(systemPrompt),
		llm.WithTemperature(temperature),
		llm.WithMaxTokens(maxTokens),
	)
}
