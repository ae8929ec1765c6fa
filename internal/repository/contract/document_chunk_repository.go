package contract

import (
	"context"

	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredChunk wraps a DocumentChunk with its cosine similarity to the query.
type ScoredChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore runs a cosine similarity search scoped to one
	// organization, returning chunks at or above the threshold. A non-empty
	// section restricts the search to chunks carrying that section label.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, orgId uuid.UUID, threshold float64, section string) ([]*ScoredChunk, error)
}
