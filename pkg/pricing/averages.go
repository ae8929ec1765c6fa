package pricing

import (
	"sort"
	"strings"
)

// maxCommonItems caps how many recurring line item names a stats block lists.
const maxCommonItems = 5

// CategoryStats summarizes historical pricing for one line item category
// across a tenant's extractions.
type CategoryStats struct {
	Category    string   `json:"category"`
	SampleCount int      `json:"sample_count"`
	AvgTotal    float64  `json:"avg_total"`
	MinTotal    float64  `json:"min_total"`
	MaxTotal    float64  `json:"max_total"`
	AvgUnitCost float64  `json:"avg_unit_cost"`
	CommonItems []string `json:"common_items,omitempty"`
}

// ComputeCategoryStats aggregates the line items matching the given
// category: totals from their total_cost, unit costs from their unit_cost,
// and the most frequently recurring item names. Items of other categories
// never contribute. Returns nil when the input is empty; extractions with
// no matching items yield a zero-sample stats block.
func ComputeCategoryStats(category string, extractions []Extraction) *CategoryStats {
	if len(extractions) == 0 {
		return nil
	}

	stats := &CategoryStats{
		Category: category,
	}

	var totalSum float64
	totalCount := 0
	var unitSum float64
	unitCount := 0
	itemCounts := make(map[string]int)

	for _, ex := range extractions {
		for _, item := range ex.LineItems {
			if !categoryMatches(item.Category, category) {
				continue
			}
			stats.SampleCount++

			if item.TotalCost != nil {
				total := *item.TotalCost
				totalSum += total
				if totalCount == 0 || total < stats.MinTotal {
					stats.MinTotal = total
				}
				if totalCount == 0 || total > stats.MaxTotal {
					stats.MaxTotal = total
				}
				totalCount++
			}
			if item.UnitCost != nil {
				unitSum += *item.UnitCost
				unitCount++
			}
			name := strings.ToLower(strings.TrimSpace(item.Description))
			if name != "" {
				itemCounts[name]++
			}
		}
	}

	if totalCount > 0 {
		stats.AvgTotal = totalSum / float64(totalCount)
	}
	if unitCount > 0 {
		stats.AvgUnitCost = unitSum / float64(unitCount)
	}
	stats.CommonItems = topItems(itemCounts, maxCommonItems)

	return stats
}

// categoryMatches compares case-insensitively and tolerates compound labels
// like "electrical/lighting" against a query of "electrical".
func categoryMatches(itemCategory, query string) bool {
	itemCategory = strings.ToLower(strings.TrimSpace(itemCategory))
	query = strings.ToLower(strings.TrimSpace(query))
	if itemCategory == "" || query == "" {
		return false
	}
	return strings.Contains(itemCategory, query)
}

// topItems ranks item names by occurrence count, name ascending on ties.
func topItems(counts map[string]int, limit int) []string {
	if len(counts) == 0 {
		return nil
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > limit {
		names = names[:limit]
	}
	return names
}
