package contract

import (
	"context"

	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, conv *entity.Conversation) error
	Update(ctx context.Context, conv *entity.Conversation) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// Touch bumps updated_at without rewriting the row.
	Touch(ctx context.Context, id uuid.UUID) error
	// SearchRelevant ranks a tenant's conversations against a free-text
	// query by full-text relevance over title, summary, and tags,
	// excluding one conversation (the current one).
	SearchRelevant(ctx context.Context, orgId uuid.UUID, query string, excludeId uuid.UUID, limit int) ([]*entity.Conversation, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *entity.Message) error
	DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// FindRecent returns the newest messages for a conversation in
	// chronological order.
	FindRecent(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.Message, error)
}
