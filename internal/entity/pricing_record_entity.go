package entity

import (
	"time"

	"github.com/google/uuid"

	"ai-estimator-be/pkg/pricing"
)

// PricingRecord stores one document's extracted pricing payload, with a few
// fields denormalized out of the extraction for querying.
type PricingRecord struct {
	Id              uuid.UUID
	DocumentId      uuid.UUID
	OrganizationId  uuid.UUID
	ProjectType     string
	ProjectName     string
	ProjectDate     string
	TotalAmount     *float64
	Extraction      pricing.Extraction
	ConfidenceScore float64
	CreatedAt       time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}
