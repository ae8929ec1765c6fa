package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadDocumentRequest struct {
	OrganizationId uuid.UUID
	FileName       string `validate:"required,max=255"`
	MimeType       string `validate:"required"`
	DocumentType   string `validate:"required,oneof=contract estimate addendum proposal invoice quote other"`
	Content        []byte `validate:"required"`
}

type UploadDocumentResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type RegisterDocumentRequest struct {
	OrganizationId uuid.UUID
	FileName       string `json:"file_name"     validate:"required,max=255"`
	MimeType       string `json:"mime_type"     validate:"required"`
	DocumentType   string `json:"document_type" validate:"required,oneof=contract estimate addendum proposal invoice quote other"`
}

type RegisterDocumentResponse struct {
	Id          uuid.UUID `json:"id"`
	UploadURL   string    `json:"upload_url"`
	StoragePath string    `json:"storage_path"`
	Status      string    `json:"status"`
}

type ShowDocumentResponse struct {
	Id            uuid.UUID              `json:"id"`
	FileName      string                 `json:"file_name"`
	MimeType      string                 `json:"mime_type"`
	DocumentType  string                 `json:"document_type"`
	Status        string                 `json:"status"`
	StatusDetails map[string]interface{} `json:"status_details,omitempty"`
	ChunkCount    int64                  `json:"chunk_count"`
	DownloadURL   string                 `json:"download_url,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     *time.Time             `json:"updated_at"`
}

type ListDocumentsRequest struct {
	OrganizationId uuid.UUID
	DocumentType   string `query:"document_type"`
	Status         string `query:"status"`
	Limit          int    `query:"limit"`
	Offset         int    `query:"offset"`
}

type DocumentListItem struct {
	Id           uuid.UUID `json:"id"`
	FileName     string    `json:"file_name"`
	DocumentType string    `json:"document_type"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListDocumentsResponse struct {
	Documents []DocumentListItem `json:"documents"`
	Total     int64              `json:"total"`
}

type DocumentStatusResponse struct {
	Id            uuid.UUID              `json:"id"`
	Status        string                 `json:"status"`
	StatusDetails map[string]interface{} `json:"status_details,omitempty"`
}
