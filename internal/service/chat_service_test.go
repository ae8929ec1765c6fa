package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-estimator-be/internal/constant"
	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/repository/memory"
	"ai-estimator-be/pkg/chatcontext"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture(uow *fakeUow, provider *stubLLM, embedder *stubEmbedder) IChatService {
	return NewChatService(
		&fakeUowFactory{uow: uow},
		&stubOrgService{},
		&stubPublisher{},
		embedder,
		provider,
		memory.NewFormatAggregateCache(),
		"test-model",
		noopLogger{},
	)
}

func seedConversation(uow *fakeUow) *entity.Conversation {
	conv := &entity.Conversation{
		Id:             uuid.New(),
		OrganizationId: uuid.New(),
		UserId:         uuid.New(),
		Title:          constant.DefaultConversationTitle,
		PricingMode:    string(chatcontext.ModeCombined),
		CreatedAt:      time.Now(),
	}
	uow.convs.conv = conv
	return conv
}

func TestStreamMessagePersistsAccumulatedReply(t *testing.T) {
	uow := newFakeUow()
	conv := seedConversation(uow)
	provider := &stubLLM{chunks: []string{"Expect around ", "$12,000 for the refit."}}
	svc := newChatFixture(uow, provider, &stubEmbedder{})

	var received string
	err := svc.StreamMessage(context.Background(), conv.UserId, &dto.SendMessageRequest{
		OrganizationId: conv.OrganizationId,
		ConversationId: conv.Id,
		Content:        "What would a hall bathroom refit cost?",
	}, func(chunk string) error {
		received += chunk
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "Expect around $12,000 for the refit.", received)

	require.Len(t, uow.messages.created, 2)
	assert.Equal(t, constant.MessageRoleUser, uow.messages.created[0].Role)
	assert.Equal(t, constant.MessageRoleAssistant, uow.messages.created[1].Role)
	assert.Equal(t, "Expect around $12,000 for the refit.", uow.messages.created[1].Content)

	require.Len(t, uow.convs.updated, 1)
	assert.Equal(t, 2, uow.convs.updated[0].MessageCount)
}

func TestStreamMessageDiscardsReplyOnBrokenStream(t *testing.T) {
	uow := newFakeUow()
	conv := seedConversation(uow)
	provider := &stubLLM{
		chunks:    []string{"Expect around "},
		streamErr: errors.New("connection reset"),
	}
	svc := newChatFixture(uow, provider, &stubEmbedder{})

	err := svc.StreamMessage(context.Background(), conv.UserId, &dto.SendMessageRequest{
		OrganizationId: conv.OrganizationId,
		ConversationId: conv.Id,
		Content:        "What would a hall bathroom refit cost?",
	}, func(chunk string) error { return nil })

	require.Error(t, err)

	// Only the user message made it to storage, the partial reply did not.
	require.Len(t, uow.messages.created, 1)
	assert.Equal(t, constant.MessageRoleUser, uow.messages.created[0].Role)
	assert.Empty(t, uow.convs.updated)
}

func TestStreamMessageSurvivesRetrievalFailures(t *testing.T) {
	uow := newFakeUow()
	conv := seedConversation(uow)
	uow.chunks.searchErr = errors.New("index offline")
	uow.convs.searchErr = errors.New("fts offline")
	provider := &stubLLM{chunks: []string{"Expect around $12,000."}}
	svc := newChatFixture(uow, provider, &stubEmbedder{err: errors.New("embed quota exhausted")})

	var received string
	err := svc.StreamMessage(context.Background(), conv.UserId, &dto.SendMessageRequest{
		OrganizationId: conv.OrganizationId,
		ConversationId: conv.Id,
		Content:        "What would a hall bathroom refit cost?",
	}, func(chunk string) error {
		received += chunk
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "Expect around $12,000.", received)
	require.Len(t, uow.messages.created, 2)
	assert.Equal(t, constant.MessageRoleAssistant, uow.messages.created[1].Role)
}

func TestStreamMessageSwitchesPricingMode(t *testing.T) {
	uow := newFakeUow()
	conv := seedConversation(uow)
	conv.PricingMode = string(chatcontext.ModePending)
	provider := &stubLLM{chunks: []string{"Criteria pricing it is."}}
	svc := newChatFixture(uow, provider, &stubEmbedder{})

	err := svc.StreamMessage(context.Background(), conv.UserId, &dto.SendMessageRequest{
		OrganizationId: conv.OrganizationId,
		ConversationId: conv.Id,
		Content:        "let's use criteria pricing",
	}, func(chunk string) error { return nil })

	require.NoError(t, err)
	require.Len(t, uow.convs.updated, 1)
	assert.Equal(t, string(chatcontext.ModeCriteria), uow.convs.updated[0].PricingMode)
}
