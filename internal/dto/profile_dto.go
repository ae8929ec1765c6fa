package dto

import (
	"github.com/google/uuid"
)

type UpsertCompanyProfileRequest struct {
	OrganizationId uuid.UUID
	CompanyName    string `json:"company_name" validate:"required,max=255"`
	Phone          string `json:"phone" validate:"max=32"`
	Email          string `json:"email" validate:"omitempty,email"`
	Address        string `json:"address" validate:"max=512"`
	Website        string `json:"website" validate:"max=255"`
}

type CompanyProfileResponse struct {
	Id          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Website     string    `json:"website,omitempty"`
}

type UpsertPricingProfileRequest struct {
	OrganizationId   uuid.UUID
	LaborRatePerHour *float64 `json:"labor_rate_per_hour" validate:"omitempty,gte=0"`
	OverheadMarkup   float64  `json:"overhead_markup" validate:"gte=0,lte=1"`
	ProfitMargin     float64  `json:"profit_margin" validate:"gte=0,lte=1"`
	Region           string   `json:"region" validate:"max=128"`
}

type PricingProfileResponse struct {
	Id               uuid.UUID `json:"id"`
	LaborRatePerHour *float64  `json:"labor_rate_per_hour"`
	OverheadMarkup   float64   `json:"overhead_markup"`
	ProfitMargin     float64   `json:"profit_margin"`
	Region           string    `json:"region,omitempty"`
}

type CreateLaborItemRequest struct {
	OrganizationId uuid.UUID
	Name           string  `json:"name" validate:"required,max=255"`
	Rate           float64 `json:"rate" validate:"gte=0"`
	Unit           string  `json:"unit" validate:"required,max=32"`
	Category       string  `json:"category" validate:"max=64"`
}

type UpdateLaborItemRequest struct {
	Id             uuid.UUID
	OrganizationId uuid.UUID
	Name           string  `json:"name" validate:"required,max=255"`
	Rate           float64 `json:"rate" validate:"gte=0"`
	Unit           string  `json:"unit" validate:"required,max=32"`
	Category       string  `json:"category" validate:"max=64"`
}

type LaborItemResponse struct {
	Id       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Rate     float64   `json:"rate"`
	Unit     string    `json:"unit"`
	Category string    `json:"category"`
}
