package mapper

import (
	"time"

	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/model"

	"gorm.io/gorm"
)

type CompanyProfileMapper struct{}

func NewCompanyProfileMapper() *CompanyProfileMapper {
	return &CompanyProfileMapper{}
}

func (m *CompanyProfileMapper) ToEntity(p *model.CompanyProfile) *entity.CompanyProfile {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.CompanyProfile{
		Id:             p.Id,
		OrganizationId: p.OrganizationId,
		CompanyName:    p.CompanyName,
		Phone:          p.Phone,
		Email:          p.Email,
		Address:        p.Address,
		Website:        p.Website,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *CompanyProfileMapper) ToModel(p *entity.CompanyProfile) *model.CompanyProfile {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.CompanyProfile{
		Id:             p.Id,
		OrganizationId: p.OrganizationId,
		CompanyName:    p.CompanyName,
		Phone:          p.Phone,
		Email:          p.Email,
		Address:        p.Address,
		Website:        p.Website,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

type PricingProfileMapper struct{}

func NewPricingProfileMapper() *PricingProfileMapper {
	return &PricingProfileMapper{}
}

func (m *PricingProfileMapper) ToEntity(p *model.PricingProfile) *entity.PricingProfile {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.PricingProfile{
		Id:               p.Id,
		OrganizationId:   p.OrganizationId,
		LaborRatePerHour: p.LaborRatePerHour,
		OverheadMarkup:   p.OverheadMarkup,
		ProfitMargin:     p.ProfitMargin,
		Region:           p.Region,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *PricingProfileMapper) ToModel(p *entity.PricingProfile) *model.PricingProfile {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.PricingProfile{
		Id:               p.Id,
		OrganizationId:   p.OrganizationId,
		LaborRatePerHour: p.LaborRatePerHour,
		OverheadMarkup:   p.OverheadMarkup,
		ProfitMargin:     p.ProfitMargin,
		Region:           p.Region,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

type LaborItemMapper struct{}

func NewLaborItemMapper() *LaborItemMapper {
	return &LaborItemMapper{}
}

func (m *LaborItemMapper) ToEntity(l *model.LaborItem) *entity.LaborItem {
	if l == nil {
		return nil
	}

	var deletedAt *time.Time
	if l.DeletedAt.Valid {
		t := l.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !l.UpdatedAt.IsZero() {
		t := l.UpdatedAt
		updatedAt = &t
	}

	return &entity.LaborItem{
		Id:             l.Id,
		OrganizationId: l.OrganizationId,
		Name:           l.Name,
		Rate:           l.Rate,
		Unit:           l.Unit,
		Category:       l.Category,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      l.DeletedAt.Valid,
	}
}

func (m *LaborItemMapper) ToModel(l *entity.LaborItem) *model.LaborItem {
	if l == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if l.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *l.DeletedAt, Valid: true}
	} else if l.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if l.UpdatedAt != nil {
		updatedAt = *l.UpdatedAt
	}

	return &model.LaborItem{
		Id:             l.Id,
		OrganizationId: l.OrganizationId,
		Name:           l.Name,
		Rate:           l.Rate,
		Unit:           l.Unit,
		Category:       l.Category,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *LaborItemMapper) ToEntities(items []*model.LaborItem) []*entity.LaborItem {
	entities := make([]*entity.LaborItem, len(items))
	for i, l := range items {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
