package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PricingRecord struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	OrganizationId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProjectType     string         `gorm:"type:varchar(255);index"`
	ProjectName     string         `gorm:"type:varchar(512)"`
	ProjectDate     string         `gorm:"type:varchar(32)"`
	TotalAmount     *float64       `gorm:"type:numeric(14,2)"`
	Extraction      datatypes.JSON `gorm:"type:jsonb;not null"`
	ConfidenceScore float64        `gorm:"type:numeric(4,3);default:0"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (PricingRecord) TableName() string {
	return "pricing_records"
}
