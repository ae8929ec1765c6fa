package mapper

import (
	"encoding/json"
	"time"

	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/model"
	"ai-estimator-be/pkg/formatpattern"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FormatPatternMapper struct{}

func NewFormatPatternMapper() *FormatPatternMapper {
	return &FormatPatternMapper{}
}

func (m *FormatPatternMapper) ToEntity(r *model.FormatPatternRecord) *entity.FormatPatternRecord {
	if r == nil {
		return nil
	}

	var deletedAt *time.Time
	if r.DeletedAt.Valid {
		t := r.DeletedAt.Time
		deletedAt = &t
	}

	var pattern formatpattern.Pattern
	if len(r.Pattern) > 0 {
		_ = json.Unmarshal(r.Pattern, &pattern)
	}

	return &entity.FormatPatternRecord{
		Id:              r.Id,
		DocumentId:      r.DocumentId,
		OrganizationId:  r.OrganizationId,
		Pattern:         pattern,
		ConfidenceScore: r.ConfidenceScore,
		CreatedAt:       r.CreatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       r.DeletedAt.Valid,
	}
}

func (m *FormatPatternMapper) ToModel(r *entity.FormatPatternRecord) *model.FormatPatternRecord {
	if r == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if r.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *r.DeletedAt, Valid: true}
	} else if r.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var pattern datatypes.JSON
	if raw, err := json.Marshal(r.Pattern); err == nil {
		pattern = raw
	}

	return &model.FormatPatternRecord{
		Id:              r.Id,
		DocumentId:      r.DocumentId,
		OrganizationId:  r.OrganizationId,
		Pattern:         pattern,
		ConfidenceScore: r.ConfidenceScore,
		CreatedAt:       r.CreatedAt,
		DeletedAt:       deletedAt,
	}
}

func (m *FormatPatternMapper) ToEntities(records []*model.FormatPatternRecord) []*entity.FormatPatternRecord {
	entities := make([]*entity.FormatPatternRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
