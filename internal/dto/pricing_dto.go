package dto

import (
	"github.com/google/uuid"
)

type SimilarProjectsRequest struct {
	OrganizationId uuid.UUID
	Query          string `json:"query" validate:"required"`
	Limit          int    `json:"limit" validate:"omitempty,gte=1,lte=20"`
}

type SimilarProjectItem struct {
	DocumentId  uuid.UUID `json:"document_id"`
	ProjectType string    `json:"project_type,omitempty"`
	ProjectName string    `json:"project_name,omitempty"`
	ProjectDate string    `json:"project_date,omitempty"`
	TotalAmount *float64  `json:"total_amount,omitempty"`
	ItemCount   int       `json:"item_count"`
	Similarity  float64   `json:"similarity"`
	MatchedBy   string    `json:"matched_by"`
}

type SimilarProjectsResponse struct {
	Projects []SimilarProjectItem `json:"projects"`
}

type CategoryAveragesRequest struct {
	OrganizationId uuid.UUID
	Category       string `query:"category"     validate:"required"`
	ProjectType    string `query:"project_type"`
}

type CategoryAveragesResponse struct {
	Category    string   `json:"category"`
	SampleCount int      `json:"sample_count"`
	AvgTotal    float64  `json:"avg_total"`
	MinTotal    float64  `json:"min_total"`
	MaxTotal    float64  `json:"max_total"`
	AvgUnitCost float64  `json:"avg_unit_cost"`
	CommonItems []string `json:"common_items,omitempty"`
}
