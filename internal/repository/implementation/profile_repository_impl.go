package implementation

import (
	"context"
	"errors"

	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/mapper"
	"ai-estimator-be/internal/model"
	"ai-estimator-be/internal/repository/contract"
	"ai-estimator-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompanyProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CompanyProfileMapper
}

func NewCompanyProfileRepository(db *gorm.DB) contract.CompanyProfileRepository {
	return &CompanyProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewCompanyProfileMapper(),
	}
}

func (r *CompanyProfileRepositoryImpl) Upsert(ctx context.Context, profile *entity.CompanyProfile) error {
	m := r.mapper.ToModel(profile)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "organization_id"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(m)
	return nil
}

func (r *CompanyProfileRepositoryImpl) FindByOrganizationId(ctx context.Context, orgId uuid.UUID) (*entity.CompanyProfile, error) {
	var m model.CompanyProfile
	err := r.db.WithContext(ctx).Where("organization_id = ?", orgId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

type PricingProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PricingProfileMapper
}

func NewPricingProfileRepository(db *gorm.DB) contract.PricingProfileRepository {
	return &PricingProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewPricingProfileMapper(),
	}
}

func (r *PricingProfileRepositoryImpl) Upsert(ctx context.Context, profile *entity.PricingProfile) error {
	m := r.mapper.ToModel(profile)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "organization_id"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(m)
	return nil
}

func (r *PricingProfileRepositoryImpl) FindByOrganizationId(ctx context.Context, orgId uuid.UUID) (*entity.PricingProfile, error) {
	var m model.PricingProfile
	err := r.db.WithContext(ctx).Where("organization_id = ?", orgId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

type LaborItemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LaborItemMapper
}

func NewLaborItemRepository(db *gorm.DB) contract.LaborItemRepository {
	return &LaborItemRepositoryImpl{
		db:     db,
		mapper: mapper.NewLaborItemMapper(),
	}
}

func (r *LaborItemRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LaborItemRepositoryImpl) Create(ctx context.Context, item *entity.LaborItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *LaborItemRepositoryImpl) Update(ctx context.Context, item *entity.LaborItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *LaborItemRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.LaborItem{}, id).Error
}

func (r *LaborItemRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LaborItem, error) {
	var m model.LaborItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LaborItemRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LaborItem, error) {
	var models []*model.LaborItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LaborItemRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.LaborItem{}).Count(&count).Error
	return count, err
}
