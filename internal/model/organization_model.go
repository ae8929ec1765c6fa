package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Organization struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"type:varchar(255);not null"`
	CreatedBy uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Organization) TableName() string {
	return "organizations"
}

type OrganizationMember struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationId uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_org_member"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_org_member"`
	Role           string    `gorm:"type:varchar(32);not null;default:member"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (OrganizationMember) TableName() string {
	return "organization_members"
}
