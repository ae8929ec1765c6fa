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
	"ai-estimator-be/internal/pkg/serverutils"
	"ai-estimator-be/internal/repository/memory"
	"ai-estimator-be/internal/repository/specification"
	"ai-estimator-be/internal/repository/unitofwork"
	"ai-estimator-be/pkg/chatcontext"
	"ai-estimator-be/pkg/embedding"
	"ai-estimator-be/pkg/formatpattern"
	"ai-estimator-be/pkg/llm"

	"github.com/google/uuid"
)

const (
	chatChunkLimit      = 5
	chatChunkThreshold  = 0.3
	historicalLimit     = 5
	priorConversations  = 3
	searchResultLimit   = 20
	titleMaxLength      = 50
	titlePromptTemplate = "Generate a short title (3-5 words) summarizing this renovation estimate conversation. Reply with the title only, no quotes.\n\nFirst message: %s"
)

type IChatService interface {
	CreateConversation(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error)
	ListConversations(ctx context.Context, userId uuid.UUID, orgId uuid.UUID, search string) (*dto.ListConversationsResponse, error)
	ShowConversation(ctx context.Context, userId uuid.UUID, orgId, convId uuid.UUID) (*dto.ShowConversationResponse, error)
	DeleteConversation(ctx context.Context, userId uuid.UUID, orgId, convId uuid.UUID) error
	SaveConversation(ctx context.Context, userId uuid.UUID, req *dto.SaveConversationRequest) (*dto.SaveConversationResponse, error)
	// StreamMessage runs the full retrieval-augmented chat turn and forwards
	// assistant output chunks to onChunk as they arrive.
	StreamMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest, onChunk llm.StreamHandler) error
}

type chatService struct {
	uowFactory          unitofwork.RepositoryFactory
	organizationService IOrganizationService
	publisherService    IPublisherService
	embeddingProvider   embedding.EmbeddingProvider
	llmProvider         llm.LLMProvider
	formatCache         *memory.FormatAggregateCache
	chatModel           string
	logger              logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	organizationService IOrganizationService,
	publisherService IPublisherService,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	formatCache *memory.FormatAggregateCache,
	chatModel string,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:          uowFactory,
		organizationService: organizationService,
		publisherService:    publisherService,
		embeddingProvider:   embeddingProvider,
		llmProvider:         llmProvider,
		formatCache:         formatCache,
		chatModel:           chatModel,
		logger:              log,
	}
}

func (s *chatService) CreateConversation(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, req.OrganizationId, userId); err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = constant.DefaultConversationTitle
	}

	conv := entity.Conversation{
		Id:             uuid.New(),
		OrganizationId: req.OrganizationId,
		UserId:         userId,
		Title:          title,
		PricingMode:    string(chatcontext.ModePending),
		CreatedAt:      time.Now(),
	}

	if err := uow.ConversationRepository().Create(ctx, &conv); err != nil {
		return nil, err
	}

	return &dto.CreateConversationResponse{
		Id:    conv.Id,
		Title: conv.Title,
	}, nil
}

func (s *chatService) ListConversations(ctx context.Context, userId uuid.UUID, orgId uuid.UUID, search string) (*dto.ListConversationsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, orgId, userId); err != nil {
		return nil, err
	}

	var convs []*entity.Conversation
	var total int64
	var err error

	if search != "" {
		// Full-text ranked search over title/summary/tags, then narrowed to
		// the requesting user's conversations.
		ranked, err := uow.ConversationRepository().SearchRelevant(ctx, orgId, search, uuid.Nil, searchResultLimit)
		if err != nil {
			return nil, err
		}
		for _, conv := range ranked {
			if conv.UserId == userId {
				convs = append(convs, conv)
			}
		}
		total = int64(len(convs))
	} else {
		specs := []specification.Specification{
			specification.ByOrganizationID{OrganizationID: orgId},
			specification.ByUserID{UserID: userId},
		}

		total, err = uow.ConversationRepository().Count(ctx, specs...)
		if err != nil {
			return nil, err
		}

		convs, err = uow.ConversationRepository().FindAll(ctx,
			append(specs, specification.OrderBy{Field: "updated_at", Desc: true})...,
		)
		if err != nil {
			return nil, err
		}
	}

	items := make([]dto.ConversationListItem, 0, len(convs))
	for _, conv := range convs {
		updatedAt := conv.CreatedAt
		if conv.UpdatedAt != nil {
			updatedAt = *conv.UpdatedAt
		}
		items = append(items, dto.ConversationListItem{
			Id:           conv.Id,
			Title:        conv.Title,
			Summary:      conv.Summary,
			Tags:         conv.Tags,
			MessageCount: conv.MessageCount,
			IsSaved:      conv.IsSaved,
			PricingMode:  conv.PricingMode,
			UpdatedAt:    updatedAt,
		})
	}

	return &dto.ListConversationsResponse{
		Conversations: items,
		Total:         total,
	}, nil
}

func (s *chatService) ShowConversation(ctx context.Context, userId uuid.UUID, orgId, convId uuid.UUID) (*dto.ShowConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, orgId, userId); err != nil {
		return nil, err
	}

	conv, err := s.findConversation(ctx, uow, orgId, convId)
	if err != nil {
		return nil, err
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: convId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MessageItem, 0, len(messages))
	for _, m := range messages {
		items = append(items, dto.MessageItem{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			Metadata:  m.Metadata,
			CreatedAt: m.CreatedAt,
		})
	}

	res := &dto.ShowConversationResponse{
		Id:           conv.Id,
		Title:        conv.Title,
		Summary:      conv.Summary,
		Tags:         conv.Tags,
		PricingMode:  conv.PricingMode,
		IsSaved:      conv.IsSaved,
		MessageCount: conv.MessageCount,
		Messages:     items,
	}
	if conv.ProjectContext != nil {
		raw, err := json.Marshal(conv.ProjectContext)
		if err == nil {
			var pc map[string]interface{}
			if json.Unmarshal(raw, &pc) == nil {
				res.ProjectContext = pc
			}
		}
	}
	return res, nil
}

func (s *chatService) DeleteConversation(ctx context.Context, userId uuid.UUID, orgId, convId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, orgId, userId); err != nil {
		return err
	}

	if _, err := s.findConversation(ctx, uow, orgId, convId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ConversationRepository().Delete(ctx, convId); err != nil {
		return err
	}
	if err := uow.MessageRepository().DeleteByConversationId(ctx, convId); err != nil {
		return err
	}

	return uow.Commit()
}

// SaveConversation marks the conversation kept. An explicit title renames
// it; otherwise a title is generated when the default one is still in
// place.
func (s *chatService) SaveConversation(ctx context.Context, userId uuid.UUID, req *dto.SaveConversationRequest) (*dto.SaveConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, req.OrganizationId, userId); err != nil {
		return nil, err
	}

	conv, err := s.findConversation(ctx, uow, req.OrganizationId, req.ConversationId)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		conv.Title = strings.TrimSpace(*req.Title)
	} else if conv.Title == constant.DefaultConversationTitle {
		if title := s.generateTitle(ctx, uow, conv.Id); title != "" {
			conv.Title = title
		}
	}

	now := time.Now()
	conv.IsSaved = true
	conv.UpdatedAt = &now

	if err := uow.ConversationRepository().Update(ctx, conv); err != nil {
		return nil, err
	}

	return &dto.SaveConversationResponse{
		Id:    conv.Id,
		Title: conv.Title,
	}, nil
}

func (s *chatService) generateTitle(ctx context.Context, uow unitofwork.UnitOfWork, convId uuid.UUID) string {
	messages, err := uow.MessageRepository().FindRecent(ctx, convId, 1)
	if err != nil || len(messages) == 0 {
		return ""
	}

	title, err := s.llmProvider.Generate(ctx,
		fmt.Sprintf(titlePromptTemplate, messages[0].Content),
		llm.WithTemperature(0.5),
		llm.WithMaxTokens(20),
	)
	if err != nil {
		s.logger.Warn("Chat", "Title generation failed", map[string]interface{}{"conversation_id": convId, "error": err.Error()})
		return ""
	}

	title = strings.TrimSpace(strings.Trim(strings.TrimSpace(title), `"'`))
	if len(title) > titleMaxLength {
		title = title[:titleMaxLength]
	}
	return title
}

func (s *chatService) StreamMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest, onChunk llm.StreamHandler) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, req.OrganizationId, userId); err != nil {
		return err
	}

	conv, err := s.findConversation(ctx, uow, req.OrganizationId, req.ConversationId)
	if err != nil {
		return err
	}

	// A mode request in the user message switches the conversation's
	// pricing mode before the prompt is assembled.
	if mode, changed := chatcontext.DetectPricingMode(req.Content, chatcontext.PricingMode(conv.PricingMode)); changed {
		conv.PricingMode = string(mode)
	}

	userMsg := entity.Message{
		Id:             uuid.New(),
		ConversationId: conv.Id,
		Role:           constant.MessageRoleUser,
		Content:        req.Content,
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &userMsg); err != nil {
		return err
	}

	systemPrompt, err := s.composeSystemPrompt(ctx, uow, conv, req.Content)
	if err != nil {
		return err
	}

	history, err := s.buildHistory(ctx, uow, conv.Id)
	if err != nil {
		return err
	}

	var reply strings.Builder
	err = s.llmProvider.ChatStream(ctx, history, func(chunk string) error {
		reply.WriteString(chunk)
		return onChunk(chunk)
	}, llm.WithSystem(systemPrompt), llm.WithModel(s.chatModel))
	if err != nil {
		return err
	}

	assistantMsg := entity.Message{
		Id:             uuid.New(),
		ConversationId: conv.Id,
		Role:           constant.MessageRoleAssistant,
		Content:        reply.String(),
		Metadata:       map[string]interface{}{"model": s.chatModel},
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &assistantMsg); err != nil {
		return err
	}

	now := time.Now()
	conv.MessageCount += 2
	conv.UpdatedAt = &now
	if err := uow.ConversationRepository().Update(ctx, conv); err != nil {
		return err
	}

	if conv.MessageCount >= constant.EnrichmentMessageThreshold {
		s.publishEnrichment(ctx, conv)
	}

	return nil
}

// composeSystemPrompt gathers every context source for the turn: tenant
// profiles and labor rates, retrieved document excerpts, historical pricing
// references, the learned format profile, and related prior conversations.
func (s *chatService) composeSystemPrompt(ctx context.Context, uow unitofwork.UnitOfWork, conv *entity.Conversation, query string) (string, error) {
	in := chatcontext.Input{
		Mode: chatcontext.PricingMode(conv.PricingMode),
	}

	company, err := uow.CompanyProfileRepository().FindByOrganizationId(ctx, conv.OrganizationId)
	if err != nil {
		return "", err
	}
	if company != nil {
		in.CompanyName = company.CompanyName
	}

	pricingProfile, err := uow.PricingProfileRepository().FindByOrganizationId(ctx, conv.OrganizationId)
	if err != nil {
		return "", err
	}
	if pricingProfile != nil {
		in.LaborRate = pricingProfile.LaborRatePerHour
		in.OverheadMarkup = pricingProfile.OverheadMarkup
		in.ProfitMargin = pricingProfile.ProfitMargin
		in.Region = pricingProfile.Region
	}

	laborItems, err := uow.LaborItemRepository().FindAll(ctx,
		specification.ByOrganizationID{OrganizationID: conv.OrganizationId},
		specification.OrderBy{Field: "category"},
	)
	if err != nil {
		return "", err
	}
	for _, item := range laborItems {
		in.LaborItems = append(in.LaborItems, chatcontext.LaborLine{
			Name:     item.Name,
			Rate:     item.Rate,
			Unit:     item.Unit,
			Category: item.Category,
		})
	}

	// Retrieval sources degrade individually: a failed embedding, chunk
	// search, or conversation search drops its block from the prompt
	// instead of failing the turn.
	var vector []float32
	embeddingRes, err := s.embeddingProvider.Generate(ctx, query)
	if err != nil {
		s.logger.Warn("Chat", "Query embedding failed, skipping retrieval", map[string]interface{}{"conversation_id": conv.Id, "error": err.Error()})
	} else {
		vector = embeddingRes.Values
	}

	if vector != nil {
		excerpts, err := s.retrieveExcerpts(ctx, uow, conv.OrganizationId, query, vector)
		if err != nil {
			s.logger.Warn("Chat", "Document retrieval failed", map[string]interface{}{"conversation_id": conv.Id, "error": err.Error()})
		} else {
			in.DocumentContext = chatcontext.PackExcerpts(excerpts)
		}

		// Historical references are skipped entirely in criteria mode,
		// the composer would drop the block anyway.
		if in.Mode != chatcontext.ModeCriteria {
			historical, err := s.retrieveHistorical(ctx, uow, conv.OrganizationId, vector)
			if err != nil {
				s.logger.Warn("Chat", "Historical retrieval failed", map[string]interface{}{"conversation_id": conv.Id, "error": err.Error()})
			} else {
				in.Historical = historical
			}
		}
	}

	in.FormatPatterns = s.formatAggregate(ctx, uow, conv.OrganizationId)

	prior, err := s.retrievePrior(ctx, uow, conv, query)
	if err != nil {
		s.logger.Warn("Chat", "Prior conversation search failed", map[string]interface{}{"conversation_id": conv.Id, "error": err.Error()})
	} else {
		in.PriorConversations = prior
	}

	return chatcontext.BuildSystemPrompt(in), nil
}

// retrieveExcerpts searches chunks filtered to the section implied by the
// query, then falls back to an unfiltered search when the filter returns
// nothing.
func (s *chatService) retrieveExcerpts(ctx context.Context, uow unitofwork.UnitOfWork, orgId uuid.UUID, query string, vector []float32) ([]string, error) {
	section := ""
	if tags := chatcontext.ExtractTags(query); len(tags) > 0 {
		section = tags[0]
	}

	scored, err := uow.DocumentChunkRepository().SearchSimilarWithScore(ctx, vector, chatChunkLimit, orgId, chatChunkThreshold, section)
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 && section != "" {
		scored, err = uow.DocumentChunkRepository().SearchSimilarWithScore(ctx, vector, chatChunkLimit, orgId, chatChunkThreshold, "")
		if err != nil {
			return nil, err
		}
	}

	excerpts := make([]string, 0, len(scored))
	for _, sc := range scored {
		excerpts = append(excerpts, sc.Chunk.Content)
	}
	return excerpts, nil
}

func (s *chatService) retrieveHistorical(ctx context.Context, uow unitofwork.UnitOfWork, orgId uuid.UUID, vector []float32) ([]chatcontext.HistoricalProject, error) {
	scored, err := uow.DocumentChunkRepository().SearchSimilarWithScore(ctx, vector, similarChunkLimit, orgId, similarChunkThreshold, "")
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return nil, nil
	}

	docScores := make(map[uuid.UUID]float64)
	docIds := make([]uuid.UUID, 0)
	for _, sc := range scored {
		if best, ok := docScores[sc.Chunk.DocumentId]; !ok || sc.Similarity > best {
			if !ok {
				docIds = append(docIds, sc.Chunk.DocumentId)
			}
			docScores[sc.Chunk.DocumentId] = sc.Similarity
		}
	}

	records, err := uow.PricingRecordRepository().FindByDocumentIds(ctx, orgId, docIds)
	if err != nil {
		return nil, err
	}

	projects := make([]chatcontext.HistoricalProject, 0, len(records))
	for _, rec := range records {
		projects = append(projects, chatcontext.HistoricalProject{
			ProjectType: rec.ProjectType,
			ProjectName: rec.ProjectName,
			Date:        rec.ProjectDate,
			GrandTotal:  rec.TotalAmount,
			ItemCount:   len(rec.Extraction.LineItems),
			Similarity:  docScores[rec.DocumentId],
		})
	}
	if len(projects) > historicalLimit {
		projects = projects[:historicalLimit]
	}
	return projects, nil
}

func (s *chatService) formatAggregate(ctx context.Context, uow unitofwork.UnitOfWork, orgId uuid.UUID) *formatpattern.Aggregate {
	if agg, ok := s.formatCache.Get(orgId); ok {
		return agg
	}

	records, err := uow.FormatPatternRepository().FindByOrganizationId(ctx, orgId)
	if err != nil {
		s.logger.Warn("Chat", "Format pattern load failed", map[string]interface{}{"organization_id": orgId, "error": err.Error()})
		return nil
	}

	patterns := make([]formatpattern.Pattern, 0, len(records))
	for _, rec := range records {
		patterns = append(patterns, rec.Pattern)
	}

	agg := formatpattern.AggregatePatterns(patterns)
	if agg != nil {
		s.formatCache.Save(orgId, agg)
	}
	return agg
}

func (s *chatService) retrievePrior(ctx context.Context, uow unitofwork.UnitOfWork, conv *entity.Conversation, query string) ([]chatcontext.PriorConversation, error) {
	related, err := uow.ConversationRepository().SearchRelevant(ctx, conv.OrganizationId, query, conv.Id, priorConversations)
	if err != nil {
		return nil, err
	}

	prior := make([]chatcontext.PriorConversation, 0, len(related))
	for _, rel := range related {
		prior = append(prior, chatcontext.PriorConversation{
			Title:   rel.Title,
			Summary: rel.Summary,
			Tags:    rel.Tags,
		})
	}
	return prior, nil
}

func (s *chatService) buildHistory(ctx context.Context, uow unitofwork.UnitOfWork, convId uuid.UUID) ([]llm.Message, error) {
	messages, err := uow.MessageRepository().FindRecent(ctx, convId, constant.ChatHistoryLimit)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		history = append(history, llm.Message{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return history, nil
}

func (s *chatService) publishEnrichment(ctx context.Context, conv *entity.Conversation) {
	payload := dto.EnrichConversationMessage{
		ConversationId: conv.Id,
		OrganizationId: conv.OrganizationId,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payloadJson); err != nil {
		s.logger.Warn("Chat", "Enrichment publish failed", map[string]interface{}{"conversation_id": conv.Id, "error": err.Error()})
	}
}

func (s *chatService) findConversation(ctx context.Context, uow unitofwork.UnitOfWork, orgId, convId uuid.UUID) (*entity.Conversation, error) {
	conv, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: convId},
		specification.ByOrganizationID{OrganizationID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, serverutils.ErrNotFound
	}
	return conv, nil
}
