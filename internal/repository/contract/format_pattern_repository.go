package contract

import (
	"context"

	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FormatPatternRepository interface {
	Create(ctx context.Context, record *entity.FormatPatternRecord) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FormatPatternRecord, error)
	FindByOrganizationId(ctx context.Context, orgId uuid.UUID) ([]*entity.FormatPatternRecord, error)
}
