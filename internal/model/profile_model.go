package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyProfile struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CompanyName    string    `gorm:"type:varchar(255)"`
	Phone          string    `gorm:"type:varchar(64)"`
	Email          string    `gorm:"type:varchar(255)"`
	Address        string    `gorm:"type:text"`
	Website        string    `gorm:"type:varchar(255)"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (CompanyProfile) TableName() string {
	return "company_profiles"
}

type PricingProfile struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	LaborRatePerHour *float64  `gorm:"type:numeric(10,2)"`
	OverheadMarkup   float64   `gorm:"type:numeric(6,4);default:0"`
	ProfitMargin     float64   `gorm:"type:numeric(6,4);default:0"`
	Region           string    `gorm:"type:varchar(128)"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (PricingProfile) TableName() string {
	return "pricing_profiles"
}

type LaborItem struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name           string         `gorm:"type:varchar(255);not null"`
	Rate           float64        `gorm:"type:numeric(10,2);not null"`
	Unit           string         `gorm:"type:varchar(32);not null;default:hour"`
	Category       string         `gorm:"type:varchar(128)"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (LaborItem) TableName() string {
	return "labor_items"
}
