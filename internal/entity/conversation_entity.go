package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProjectContext is the structured understanding of what a conversation is
// estimating. Every field is optional until enrichment fills it in.
type ProjectContext struct {
	ProjectType string   `json:"project_type,omitempty"`
	Rooms       []string `json:"rooms,omitempty"`
	Materials   []string `json:"materials,omitempty"`
	Dimensions  string   `json:"dimensions,omitempty"`
	Budget      string   `json:"budget,omitempty"`
	Timeline    string   `json:"timeline,omitempty"`
}

type Conversation struct {
	Id                 uuid.UUID
	OrganizationId     uuid.UUID
	UserId             uuid.UUID
	Title              string
	Summary            string
	Tags               []string
	MessageCount       int
	ProjectContext     *ProjectContext
	IsSaved            bool
	PricingMode        string
	PricingAssumptions map[string]interface{}
	CreatedAt          time.Time
	UpdatedAt          *time.Time
	DeletedAt          *time.Time
	IsDeleted          bool
}

type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           string
	Content        string
	Metadata       map[string]interface{}
	CreatedAt      time.Time
}
