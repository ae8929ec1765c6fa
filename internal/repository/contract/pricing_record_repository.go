package contract

import (
	"context"

	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PricingRecordRepository interface {
	Create(ctx context.Context, record *entity.PricingRecord) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PricingRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PricingRecord, error)
	// FindByDocumentIds fetches pricing rows for a set of documents in one
	// query, for ranking by chunk similarity afterwards.
	FindByDocumentIds(ctx context.Context, orgId uuid.UUID, documentIds []uuid.UUID) ([]*entity.PricingRecord, error)
	// FindByKeywords matches project type/name/scope text against domain
	// keywords, the fallback when semantic retrieval finds nothing.
	FindByKeywords(ctx context.Context, orgId uuid.UUID, keywords []string, limit int) ([]*entity.PricingRecord, error)
}
