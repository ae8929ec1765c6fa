package contract

import (
	"context"

	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CompanyProfileRepository interface {
	Upsert(ctx context.Context, profile *entity.CompanyProfile) error
	FindByOrganizationId(ctx context.Context, orgId uuid.UUID) (*entity.CompanyProfile, error)
}

type PricingProfileRepository interface {
	Upsert(ctx context.Context, profile *entity.PricingProfile) error
	FindByOrganizationId(ctx context.Context, orgId uuid.UUID) (*entity.PricingProfile, error)
}

type LaborItemRepository interface {
	Create(ctx context.Context, item *entity.LaborItem) error
	Update(ctx context.Context, item *entity.LaborItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LaborItem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LaborItem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
