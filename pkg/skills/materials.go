package skills

import (
	"context"

	"ai-estimator-be/pkg/llm"
)

const materialsTakeoffPrompt = `You are an expert construction estimator specializing in materials takeoffs.
Your task is to analyze scope of work items and generate comprehensive material lists.

## Output Format

### MATERIALS TAKEOFF

For each material, provide:
| Item | Description | Quantity | Unit | Notes |
|------|-------------|----------|------|-------|

### Categories
Organize materials by category:
1. **Lumber & Framing**
2. **Drywall & Finishing**
3. **Flooring**
4. **Plumbing**
5. **Electrical**
6. **Hardware & Fasteners**
7. **Paint & Finishes**
8. **Fixtures**
9. **Miscellaneous**

### WASTE FACTORS
Apply standard waste factors:
- Drywall: 10%
- Flooring (tile): 10-15%
- Flooring (hardwood): 5-10%
- Paint: 10%
- Lumber: 5-10%

## Quantity Calculation Guidelines
1. Use standard material sizes (4x8 sheets, 8ft/10ft/12ft lumber)
2. Calculate actual quantities needed based on dimensions
3. Add waste factor to arrive at order quantities
4. Round up to purchase units

## Output Requirements
- Include all materials needed for complete installation
- Specify exact sizes and specifications where known
- Note "per owner selection" for items requiring client choice
- Include installation materials (fasteners, adhesives, etc.)
- Be conservative - better to have extra than run short`

// MaterialsTakeoff generates material lists with quantities from a scope
// of work.
type MaterialsTakeoff struct {
	base
}

func NewMaterialsTakeoff(provider llm.LLMProvider) *MaterialsTakeoff {
	return &MaterialsTakeoff{base{provider: provider}}
}

func (s *MaterialsTakeoff) Name() string { return "materials_takeoff" }

func (s *MaterialsTakeoff) Description() string {
	return "Generate material lists and quantities from scope of work"
}

func (s *MaterialsTakeoff) Execute(ctx context.Context, input string, extra map[string]string) (string, error) {
	return s.run(ctx, materialsTakeoffPrompt, input, extra, 0.3, 4096)
}
