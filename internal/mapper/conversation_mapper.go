package mapper

import (
	"encoding/json"
	"time"

	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	var tags []string
	if len(c.Tags) > 0 {
		_ = json.Unmarshal(c.Tags, &tags)
	}

	var projectContext *entity.ProjectContext
	if len(c.ProjectContext) > 0 {
		projectContext = &entity.ProjectContext{}
		if err := json.Unmarshal(c.ProjectContext, projectContext); err != nil {
			projectContext = nil
		}
	}

	var assumptions map[string]interface{}
	if len(c.PricingAssumptions) > 0 {
		_ = json.Unmarshal(c.PricingAssumptions, &assumptions)
	}

	return &entity.Conversation{
		Id:                 c.Id,
		OrganizationId:     c.OrganizationId,
		UserId:             c.UserId,
		Title:              c.Title,
		Summary:            c.Summary,
		Tags:               tags,
		MessageCount:       c.MessageCount,
		ProjectContext:     projectContext,
		IsSaved:            c.IsSaved,
		PricingMode:        c.PricingMode,
		PricingAssumptions: assumptions,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          updatedAt,
		DeletedAt:          deletedAt,
		IsDeleted:          c.DeletedAt.Valid,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	var tags datatypes.JSON
	if c.Tags != nil {
		if raw, err := json.Marshal(c.Tags); err == nil {
			tags = raw
		}
	}

	var projectContext datatypes.JSON
	if c.ProjectContext != nil {
		if raw, err := json.Marshal(c.ProjectContext); err == nil {
			projectContext = raw
		}
	}

	var assumptions datatypes.JSON
	if c.PricingAssumptions != nil {
		if raw, err := json.Marshal(c.PricingAssumptions); err == nil {
			assumptions = raw
		}
	}

	return &model.Conversation{
		Id:                 c.Id,
		OrganizationId:     c.OrganizationId,
		UserId:             c.UserId,
		Title:              c.Title,
		Summary:            c.Summary,
		Tags:               tags,
		MessageCount:       c.MessageCount,
		ProjectContext:     projectContext,
		IsSaved:            c.IsSaved,
		PricingMode:        c.PricingMode,
		PricingAssumptions: assumptions,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          updatedAt,
		DeletedAt:          deletedAt,
	}
}

func (m *ConversationMapper) ToEntities(convs []*model.Conversation) []*entity.Conversation {
	entities := make([]*entity.Conversation, len(convs))
	for i, c := range convs {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(msg.Metadata) > 0 {
		_ = json.Unmarshal(msg.Metadata, &metadata)
	}

	return &entity.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		Metadata:       metadata,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	var metadata datatypes.JSON
	if msg.Metadata != nil {
		if raw, err := json.Marshal(msg.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		Metadata:       metadata,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *MessageMapper) ToEntities(msgs []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}
