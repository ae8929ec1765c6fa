package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CreateOrganizationResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowOrganizationResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type OrganizationMemberResponse struct {
	Id     uuid.UUID `json:"id"`
	UserId uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

type AddMemberRequest struct {
	OrganizationId uuid.UUID
	UserId         uuid.UUID `json:"user_id" validate:"required"`
	Role           string    `json:"role" validate:"required,oneof=owner admin member"`
}

type AddMemberResponse struct {
	Id uuid.UUID `json:"id"`
}

type AuthOrganizationItem struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

type AuthContextResponse struct {
	UserId        uuid.UUID              `json:"user_id"`
	Organizations []AuthOrganizationItem `json:"organizations"`
}
