package contract

import (
	"context"

	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/repository/specification"

	"github.com/google/uuid"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	Update(ctx context.Context, org *entity.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Organization, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Organization, error)
}

type OrganizationMemberRepository interface {
	Create(ctx context.Context, member *entity.OrganizationMember) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OrganizationMember, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OrganizationMember, error)
	// FindMembership is the hot path for access checks.
	FindMembership(ctx context.Context, orgId, userId uuid.UUID) (*entity.OrganizationMember, error)
}
