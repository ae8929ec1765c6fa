package entity

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	Id        uuid.UUID
	Name      string
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

type OrganizationMember struct {
	Id             uuid.UUID
	OrganizationId uuid.UUID
	UserId         uuid.UUID
	Role           string
	CreatedAt      time.Time
}
