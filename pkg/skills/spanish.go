package skills

import (
	"context"

	"ai-estimator-be/pkg/llm"
)

const spanishJobOrderPrompt = `You are an expert translator specializing in construction and renovation terminology.
Your task is to create Spanish job orders (orden de trabajo) from English estimates.

## Output Format

Create a document with these sections:

### ORDEN DE TRABAJO
[Project name/address in Spanish]

### FECHA: [Current date]

### ALCANCE DEL TRABAJO (Scope of Work)
Translate each scope item to clear, actionable Spanish that field workers can understand.
Use common construction terminology used in Latin American Spanish.

### MATERIALES APROXIMADOS (Rough Materials)
List rough quantities of materials needed based on the scope.
Use metric units where appropriate.

### NOTAS IMPORTANTES (Important Notes)
Include any safety notes, access requirements, or special instructions.

## Translation Guidelines
1. Use clear, simple Spanish suitable for field crews
2. Keep technical terms that are commonly understood (e.g., "drywall", "PVC")
3. Include quantities and measurements from the original
4. Use imperative verb forms for action items (e.g., "Instalar", "Remover")
5. Be specific about locations (e.g., "en el baño principal")

## Quality Standards
- Accurate translation of all scope items
- No scope creep - translate only what is specified
- Include all measurements and quantities
- Materials list should be practical and complete`

// SpanishJobOrder translates English estimates into field-ready Spanish
// job orders.
type SpanishJobOrder struct {
	base
}

func NewSpanishJobOrder(provider llm.LLMProvider) *SpanishJobOrder {
	return &SpanishJobOrder{base{provider: provider}}
}

func (s *SpanishJobOrder) Name() string { return "spanish_job_order" }

func (s *SpanishJobOrder) Description() string {
	return "Generate Spanish job orders from English estimates"
}

func (s *SpanishJobOrder) Execute(ctx context.Context, input string, extra map[string]string) (string, error) {
	return s.run(ctx, spanishJobOrderPrompt, input, extra, 0.3, 4096)
}
