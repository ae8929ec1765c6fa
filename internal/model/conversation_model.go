package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Conversation struct {
	Id                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId             uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title              string         `gorm:"type:varchar(255);not null;default:'New Estimate'"`
	Summary            string         `gorm:"type:text"`
	Tags               datatypes.JSON `gorm:"type:jsonb"`
	MessageCount       int            `gorm:"default:0"`
	ProjectContext     datatypes.JSON `gorm:"type:jsonb"`
	IsSaved            bool           `gorm:"default:false;index"`
	PricingMode        string         `gorm:"type:varchar(32);not null;default:pending"`
	PricingAssumptions datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime;index"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (Conversation) TableName() string {
	return "chat_conversations"
}

type Message struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Role           string         `gorm:"type:varchar(16);not null"`
	Content        string         `gorm:"type:text;not null"`
	Metadata       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "chat_messages"
}
