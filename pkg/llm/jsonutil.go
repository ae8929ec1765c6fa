package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeJSONBlock parses JSON out of a model response. Models frequently wrap
// output in a markdown code fence despite being told not to, so the decode
// order is: bare parse, ```json fence, generic ``` fence.
func DecodeJSONBlock(response string, v interface{}) error {
	trimmed := strings.TrimSpace(response)
	if err := json.Unmarshal([]byte(trimmed), v); err == nil {
		return nil
	}

	if idx := strings.Index(response, "```json"); idx >= 0 {
		start := idx + len("```json")
		if end := strings.Index(response[start:], "```"); end > 0 {
			block := strings.TrimSpace(response[start : start+end])
			if err := json.Unmarshal([]byte(block), v); err == nil {
				return nil
			}
		}
	}

	if idx := strings.Index(response, "```"); idx >= 0 {
		start := idx + 3
		// Skip language identifier if present
		if nl := strings.Index(response[start:], "\n"); nl >= 0 {
			start += nl + 1
		}
		if end := strings.Index(response[start:], "```"); end > 0 {
			block := strings.TrimSpace(response[start : start+end])
			if err := json.Unmarshal([]byte(block), v); err == nil {
				return nil
			}
		}
	}

	return fmt.Errorf("no valid JSON found in response")
}
