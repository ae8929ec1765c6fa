package mapper

import (
	"encoding/json"
	"time"

	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/model"
	"ai-estimator-be/pkg/pricing"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PricingRecordMapper struct{}

func NewPricingRecordMapper() *PricingRecordMapper {
	return &PricingRecordMapper{}
}

func (m *PricingRecordMapper) ToEntity(r *model.PricingRecord) *entity.PricingRecord {
	if r == nil {
		return nil
	}

	var deletedAt *time.Time
	if r.DeletedAt.Valid {
		t := r.DeletedAt.Time
		deletedAt = &t
	}

	var extraction pricing.Extraction
	if len(r.Extraction) > 0 {
		_ = json.Unmarshal(r.Extraction, &extraction)
	}

	return &entity.PricingRecord{
		Id:              r.Id,
		DocumentId:      r.DocumentId,
		OrganizationId:  r.OrganizationId,
		ProjectType:     r.ProjectType,
		ProjectName:     r.ProjectName,
		ProjectDate:     r.ProjectDate,
		TotalAmount:     r.TotalAmount,
		Extraction:      extraction,
		ConfidenceScore: r.ConfidenceScore,
		CreatedAt:       r.CreatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       r.DeletedAt.Valid,
	}
}

func (m *PricingRecordMapper) ToModel(r *entity.PricingRecord) *model.PricingRecord {
	if r == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if r.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *r.DeletedAt, Valid: true}
	} else if r.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var extraction datatypes.JSON
	if raw, err := json.Marshal(r.Extraction); err == nil {
		extraction = raw
	}

	return &model.PricingRecord{
		Id:              r.Id,
		DocumentId:      r.DocumentId,
		OrganizationId:  r.OrganizationId,
		ProjectType:     r.ProjectType,
		ProjectName:     r.ProjectName,
		ProjectDate:     r.ProjectDate,
		TotalAmount:     r.TotalAmount,
		Extraction:      extraction,
		ConfidenceScore: r.ConfidenceScore,
		CreatedAt:       r.CreatedAt,
		DeletedAt:       deletedAt,
	}
}

func (m *PricingRecordMapper) ToEntities(records []*model.PricingRecord) []*entity.PricingRecord {
	entities := make([]*entity.PricingRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
