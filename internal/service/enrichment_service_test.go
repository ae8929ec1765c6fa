package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-estimator-be/internal/constant"
	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnrichmentFixture(uow *fakeUow, provider *stubLLM) *enrichmentService {
	svc := NewEnrichmentService(
		nil,
		constant.EnrichConversationTopic,
		&fakeUowFactory{uow: uow},
		provider,
		noopLogger{},
	)
	return svc.(*enrichmentService)
}

func enrichMessageFor(conv *entity.Conversation) *message.Message {
	payload, _ := json.Marshal(dto.EnrichConversationMessage{
		ConversationId: conv.Id,
		OrganizationId: conv.OrganizationId,
	})
	return message.NewMessage(watermill.NewUUID(), payload)
}

func TestEnrichmentTagsWholeExchange(t *testing.T) {
	uow := newFakeUow()
	conv := &entity.Conversation{
		Id:             uuid.New(),
		OrganizationId: uuid.New(),
		MessageCount:   4,
		CreatedAt:      time.Now(),
	}
	uow.convs.conv = conv
	// The assistant names trades the user never typed; they still become
	// tags because the whole exchange is scanned.
	uow.messages.created = []*entity.Message{
		{ConversationId: conv.Id, Role: constant.MessageRoleUser, Content: "What would redoing the guest bathroom cost?"},
		{ConversationId: conv.Id, Role: constant.MessageRoleAssistant, Content: "Budget for new tile flooring and rough-in plumbing."},
		{ConversationId: conv.Id, Role: constant.MessageRoleUser, Content: "Sounds reasonable."},
	}
	provider := &stubLLM{response: "Guest bathroom refit estimate discussion."}
	svc := newEnrichmentFixture(uow, provider)

	msg := enrichMessageFor(conv)
	svc.processMessage(context.Background(), msg)

	requireAcked(t, msg)
	require.Len(t, uow.convs.updated, 1)
	enriched := uow.convs.updated[0]
	assert.Equal(t, "Guest bathroom refit estimate discussion.", enriched.Summary)
	assert.Contains(t, enriched.Tags, "bathroom")
	assert.Contains(t, enriched.Tags, "flooring")
	assert.Contains(t, enriched.Tags, "plumbing")
}

func TestEnrichmentSkipsShortConversations(t *testing.T) {
	uow := newFakeUow()
	conv := &entity.Conversation{Id: uuid.New(), OrganizationId: uuid.New(), CreatedAt: time.Now()}
	uow.convs.conv = conv
	uow.messages.created = []*entity.Message{
		{ConversationId: conv.Id, Role: constant.MessageRoleUser, Content: "Hello"},
	}
	provider := &stubLLM{response: "irrelevant"}
	svc := newEnrichmentFixture(uow, provider)

	msg := enrichMessageFor(conv)
	svc.processMessage(context.Background(), msg)

	requireAcked(t, msg)
	assert.Empty(t, uow.convs.updated)
	assert.Empty(t, provider.prompts)
}
