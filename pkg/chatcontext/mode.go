package chatcontext

import "strings"

// PricingMode is the methodology a conversation uses to derive estimates.
type PricingMode string

const (
	ModePending    PricingMode = "pending"
	ModeCriteria   PricingMode = "criteria"
	ModeHistorical PricingMode = "historical"
	ModeCombined   PricingMode = "combined"
)

// DetectPricingMode scans a free-text reply for a pricing mode choice.
// Returns the detected mode and true, or the current mode and false when
// the reply is ambiguous or names no mode. Mentioning both criteria and
// historical selects combined.
func DetectPricingMode(message string, current PricingMode) (PricingMode, bool) {
	lowered := strings.ToLower(message)
	trimmed := strings.TrimSpace(lowered)

	if strings.Contains(lowered, "combined") || strings.Contains(lowered, "both") ||
		strings.Contains(lowered, "option 3") || trimmed == "3" {
		return ModeCombined, true
	}

	criteria := strings.Contains(lowered, "criteria") ||
		strings.Contains(lowered, "option 1") || trimmed == "1"
	historical := strings.Contains(lowered, "historical") ||
		strings.Contains(lowered, "past project") ||
		strings.Contains(lowered, "option 2") || trimmed == "2"

	switch {
	case criteria && historical:
		return ModeCombined, true
	case criteria:
		return ModeCriteria, true
	case historical:
		return ModeHistorical, true
	}
	return current, false
}
