package entity

import (
	"time"

	"github.com/google/uuid"

	"ai-estimator-be/pkg/formatpattern"
)

// FormatPatternRecord stores one document's extracted formatting profile.
type FormatPatternRecord struct {
	Id              uuid.UUID
	DocumentId      uuid.UUID
	OrganizationId  uuid.UUID
	Pattern         formatpattern.Pattern
	ConfidenceScore float64
	CreatedAt       time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}
