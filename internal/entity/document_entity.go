package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id             uuid.UUID
	OrganizationId uuid.UUID
	UploadedBy     uuid.UUID
	Name           string
	DocType        string
	MimeType       string
	StoragePath    string
	SizeBytes      int64
	Status         string
	// StatusDetails carries stage-level diagnostics: which pipeline stages
	// ran, chunk counts, or the failure reason for the error state.
	StatusDetails map[string]interface{}
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}

type DocumentChunk struct {
	Id             uuid.UUID
	DocumentId     uuid.UUID
	OrganizationId uuid.UUID
	ChunkIndex     int
	Content        string
	Section        string
	EmbeddingValue []float32
	CreatedAt      time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
