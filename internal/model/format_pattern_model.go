package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FormatPatternRecord struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	OrganizationId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Pattern         datatypes.JSON `gorm:"type:jsonb;not null"`
	ConfidenceScore float64        `gorm:"type:numeric(4,3);default:0"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (FormatPatternRecord) TableName() string {
	return "format_patterns"
}
