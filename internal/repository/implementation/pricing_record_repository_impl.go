package implementation

import (
	"context"
	"errors"
	"strings"

	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/mapper"
	"ai-estimator-be/internal/model"
	"ai-estimator-be/internal/repository/contract"
	"ai-estimator-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PricingRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PricingRecordMapper
}

func NewPricingRecordRepository(db *gorm.DB) contract.PricingRecordRepository {
	return &PricingRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewPricingRecordMapper(),
	}
}

func (r *PricingRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PricingRecordRepositoryImpl) Create(ctx context.Context, record *entity.PricingRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *PricingRecordRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("document_id = ?", documentId).
		Delete(&model.PricingRecord{}).Error
}

func (r *PricingRecordRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PricingRecord, error) {
	var m model.PricingRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PricingRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PricingRecord, error) {
	var models []*model.PricingRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PricingRecordRepositoryImpl) FindByDocumentIds(ctx context.Context, orgId uuid.UUID, documentIds []uuid.UUID) ([]*entity.PricingRecord, error) {
	if len(documentIds) == 0 {
		return nil, nil
	}
	var models []*model.PricingRecord
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgId).
		Where("document_id IN ?", documentIds).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PricingRecordRepositoryImpl) FindByKeywords(ctx context.Context, orgId uuid.UUID, keywords []string, limit int) ([]*entity.PricingRecord, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	// Each keyword contributes one point when it appears anywhere in the
	// record; rows are ranked by that overlap score, zero-overlap rows
	// are dropped.
	terms := make([]string, 0, len(keywords))
	args := make([]interface{}, 0, len(keywords)*3)
	for _, kw := range keywords {
		pattern := "%" + kw + "%"
		terms = append(terms, "(CASE WHEN project_type ILIKE ? OR project_name ILIKE ? OR extraction::text ILIKE ? THEN 1 ELSE 0 END)")
		args = append(args, pattern, pattern, pattern)
	}
	score := "(" + strings.Join(terms, " + ") + ")"

	var models []*model.PricingRecord
	err := r.db.WithContext(ctx).
		Select("*, "+score+" AS match_score", args...).
		Where("organization_id = ?", orgId).
		Where(score+" > 0", args...).
		Order("match_score DESC, project_date DESC NULLS LAST").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
