package dto

import "github.com/google/uuid"

// ProcessDocumentMessage is the payload published when an upload needs the
// full extraction pipeline run against it.
type ProcessDocumentMessage struct {
	DocumentId     uuid.UUID `json:"document_id"`
	OrganizationId uuid.UUID `json:"organization_id"`
}

// EnrichConversationMessage asks the background worker to refresh a
// conversation's summary, tags, and project context.
type EnrichConversationMessage struct {
	ConversationId uuid.UUID `json:"conversation_id"`
	OrganizationId uuid.UUID `json:"organization_id"`
}
