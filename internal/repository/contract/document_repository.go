package contract

import (
	"context"

	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	Update(ctx context.Context, doc *entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// UpdateStatus writes only the status columns so the pipeline never
	// clobbers concurrent metadata edits.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, details map[string]interface{}) error
}
