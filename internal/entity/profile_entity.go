package entity

import (
	"time"

	"github.com/google/uuid"
)

// CompanyProfile is the tenant's public identity used in prompts and
// generated documents.
type CompanyProfile struct {
	Id             uuid.UUID
	OrganizationId uuid.UUID
	CompanyName    string
	Phone          string
	Email          string
	Address        string
	Website        string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// PricingProfile holds the tenant's configured pricing criteria. Markup and
// margin are fractions (0.15 = 15%).
type PricingProfile struct {
	Id               uuid.UUID
	OrganizationId   uuid.UUID
	LaborRatePerHour *float64
	OverheadMarkup   float64
	ProfitMargin     float64
	Region           string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

type LaborItem struct {
	Id             uuid.UUID
	OrganizationId uuid.UUID
	Name           string
	Rate           float64
	Unit           string
	Category       string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
