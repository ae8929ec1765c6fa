package implementation

import (
	"context"

	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/mapper"
	"ai-estimator-be/internal/model"
	"ai-estimator-be/internal/repository/contract"
	"ai-estimator-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FormatPatternRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FormatPatternMapper
}

func NewFormatPatternRepository(db *gorm.DB) contract.FormatPatternRepository {
	return &FormatPatternRepositoryImpl{
		db:     db,
		mapper: mapper.NewFormatPatternMapper(),
	}
}

func (r *FormatPatternRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FormatPatternRepositoryImpl) Create(ctx context.Context, record *entity.FormatPatternRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *FormatPatternRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("document_id = ?", documentId).
		Delete(&model.FormatPatternRecord{}).Error
}

func (r *FormatPatternRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FormatPatternRecord, error) {
	var models []*model.FormatPatternRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FormatPatternRepositoryImpl) FindByOrganizationId(ctx context.Context, orgId uuid.UUID) ([]*entity.FormatPatternRecord, error) {
	var models []*model.FormatPatternRecord
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgId).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
