package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-estimator-be/internal/constant"
	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/pkg/logger"
	"ai-estimator-be/internal/repository/specification"
	"ai-estimator-be/internal/repository/unitofwork"
	"ai-estimator-be/pkg/chatcontext"
	"ai-estimator-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const summaryPromptTemplate = `Summarize this renovation estimate conversation in 2-3 sentences. Focus on what is being estimated, the scope, and any decisions made. Reply with the summary only.

%s`

const projectContextPrompt = `Extract structured project details from this renovation estimate conversation. Respond with JSON only:
{
  "project_type": "e.g. bathroom remodel",
  "rooms": ["rooms involved"],
  "materials": ["materials mentioned"],
  "dimensions": "any dimensions stated",
  "budget": "any budget mentioned",
  "timeline": "any timeline mentioned"
}
Omit fields the conversation does not state.

%s`

type IEnrichmentService interface {
	Consume(ctx context.Context) error
}

// enrichmentService refreshes conversation metadata in the background:
// summary, scope tags, and the structured project context.
type enrichmentService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewEnrichmentService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IEnrichmentService {
	return &enrichmentService{
		pubSub:      pubSub,
		topicName:   topicName,
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		logger:      log,
	}
}

func (s *enrichmentService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *enrichmentService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.EnrichConversationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("Enrichment", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	conv, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: payload.ConversationId})
	if err != nil {
		msg.Nack()
		return
	}
	if conv == nil {
		msg.Ack()
		return
	}

	messages, err := uow.MessageRepository().FindRecent(ctx, conv.Id, constant.ChatHistoryLimit)
	if err != nil {
		msg.Nack()
		return
	}
	if len(messages) < constant.EnrichmentMessageThreshold {
		msg.Ack()
		return
	}

	transcript := buildTranscript(messages)

	summary, err := s.llmProvider.Generate(ctx,
		fmt.Sprintf(summaryPromptTemplate, transcript),
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(200),
	)
	if err != nil {
		s.logger.Error("Enrichment", "Summary generation failed", map[string]interface{}{"conversation_id": conv.Id, "error": err.Error()})
		msg.Nack()
		return
	}
	conv.Summary = strings.TrimSpace(summary)

	// Tags scan the whole exchange, assistant replies often name trades
	// the user only implied.
	conv.Tags = chatcontext.ExtractTags(messageText(messages))

	if pc := s.extractProjectContext(ctx, transcript); pc != nil {
		conv.ProjectContext = pc
	}

	now := time.Now()
	conv.UpdatedAt = &now
	if err := uow.ConversationRepository().Update(ctx, conv); err != nil {
		msg.Nack()
		return
	}

	s.logger.Info("Enrichment", "Conversation enriched", map[string]interface{}{"conversation_id": conv.Id, "tags": len(conv.Tags)})
	msg.Ack()
}

// extractProjectContext is best-effort, an unparseable model response leaves
// the existing context untouched.
func (s *enrichmentService) extractProjectContext(ctx context.Context, transcript string) *entity.ProjectContext {
	raw, err := s.llmProvider.Generate(ctx,
		fmt.Sprintf(projectContextPrompt, transcript),
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(500),
	)
	if err != nil {
		return nil
	}

	var pc entity.ProjectContext
	if err := llm.DecodeJSONBlock(raw, &pc); err != nil {
		return nil
	}
	return &pc
}

func buildTranscript(messages []*entity.Message) string {
	var sb strings.Builder
	for _, m := range messages {
		sb.WriteString(m.Role)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

func messageText(messages []*entity.Message) string {
	var sb strings.Builder
	for _, m := range messages {
		sb.WriteString(m.Content)
		sb.WriteString(" ")
	}
	return sb.String()
}
