package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateConversationRequest struct {
	OrganizationId uuid.UUID
	Title          string `json:"title" validate:"max=255"`
}

type CreateConversationResponse struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type ConversationListItem struct {
	Id           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	MessageCount int       `json:"message_count"`
	IsSaved      bool      `json:"is_saved"`
	PricingMode  string    `json:"pricing_mode"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ListConversationsResponse struct {
	Conversations []ConversationListItem `json:"conversations"`
	Total         int64                  `json:"total"`
}

type MessageItem struct {
	Id        uuid.UUID              `json:"id"`
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type ShowConversationResponse struct {
	Id             uuid.UUID              `json:"id"`
	Title          string                 `json:"title"`
	Summary        string                 `json:"summary,omitempty"`
	Tags           []string               `json:"tags,omitempty"`
	PricingMode    string                 `json:"pricing_mode"`
	IsSaved        bool                   `json:"is_saved"`
	MessageCount   int                    `json:"message_count"`
	Messages       []MessageItem          `json:"messages"`
	ProjectContext map[string]interface{} `json:"project_context,omitempty"`
}

type SendMessageRequest struct {
	OrganizationId uuid.UUID
	ConversationId uuid.UUID
	Content        string `json:"content" validate:"required"`
}

type SaveConversationRequest struct {
	OrganizationId uuid.UUID
	ConversationId uuid.UUID
	Title          *string `json:"title" validate:"omitempty,max=255"`
}

type SaveConversationResponse struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// StreamFrame is one SSE payload in the chat response stream.
type StreamFrame struct {
	Type           string `json:"type"`
	ConversationId string `json:"conversation_id,omitempty"`
	Content        string `json:"content,omitempty"`
	Message        string `json:"message,omitempty"`
}
