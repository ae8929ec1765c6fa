package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-estimator-be/internal/constant"
	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/pkg/logger"
	"ai-estimator-be/internal/repository/memory"
	"ai-estimator-be/internal/repository/specification"
	"ai-estimator-be/internal/repository/unitofwork"
	"ai-estimator-be/pkg/chunker"
	"ai-estimator-be/pkg/embedding"
	"ai-estimator-be/pkg/events"
	"ai-estimator-be/pkg/extract"
	"ai-estimator-be/pkg/formatpattern"
	pktNats "ai-estimator-be/pkg/nats"
	"ai-estimator-be/pkg/pricing"
	"ai-estimator-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IProcessorService interface {
	Consume(ctx context.Context) error
}

// processorService runs the document ingest pipeline: download, text and
// typography extraction, chunking and embedding, then the format and pricing
// mining stages.
type processorService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	objectStore       storage.ObjectStore
	embeddingProvider embedding.EmbeddingProvider
	formatExtractor   *formatpattern.Extractor
	pricingExtractor  *pricing.Extractor
	formatCache       *memory.FormatAggregateCache
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewProcessorService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	objectStore storage.ObjectStore,
	embeddingProvider embedding.EmbeddingProvider,
	formatExtractor *formatpattern.Extractor,
	pricingExtractor *pricing.Extractor,
	formatCache *memory.FormatAggregateCache,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IProcessorService {
	return &processorService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		objectStore:       objectStore,
		embeddingProvider: embeddingProvider,
		formatExtractor:   formatExtractor,
		pricingExtractor:  pricingExtractor,
		formatCache:       formatCache,
		eventPublisher:    eventPublisher,
		logger:            log,
	}
}

func (s *processorService) Consume(ctx context.Context) error {
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

func (s *processorService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ProcessDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("Processor", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed payloads never become valid, drop them
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		s.logger.Error("Processor", "Failed to load document", map[string]interface{}{"document_id": payload.DocumentId, "error": err.Error()})
		msg.Nack()
		return
	}
	if doc == nil {
		s.logger.Warn("Processor", "Document deleted before processing", map[string]interface{}{"document_id": payload.DocumentId})
		msg.Ack()
		return
	}

	if err := s.setStatus(ctx, uow, doc, constant.DocumentStatusProcessing, nil); err != nil {
		msg.Nack()
		return
	}

	data, err := s.objectStore.Download(ctx, doc.StoragePath)
	if err != nil {
		// A missing or unreadable object will not appear on redelivery,
		// so the document lands in a terminal error state instead.
		s.logger.Error("Processor", "Download failed", map[string]interface{}{"document_id": doc.Id, "error": err.Error()})
		s.failDocument(ctx, uow, doc, "download failed: "+err.Error())
		msg.Ack()
		return
	}

	text, tally := extract.Extract(data, doc.MimeType)
	if text == "" {
		// Unreadable content is not a pipeline failure. The document is
		// kept as processed metadata without derived artifacts.
		_ = s.setStatus(ctx, uow, doc, constant.DocumentStatusProcessed, map[string]interface{}{
			"text_length": 0,
			"note":        "no extractable text",
		})
		msg.Ack()
		return
	}

	chunks := chunker.Split(text)
	s.logger.Info("Processor", "Document split", map[string]interface{}{"document_id": doc.Id, "chunks": len(chunks)})

	newChunks := make([]*entity.DocumentChunk, 0, len(chunks))
	for i, chunk := range chunks {
		res, err := s.embeddingProvider.Generate(ctx, chunk.Text)
		if err != nil {
			s.logger.Error("Processor", "Embedding failed", map[string]interface{}{"document_id": doc.Id, "chunk": i, "error": err.Error()})
			msg.Nack()
			return
		}
		newChunks = append(newChunks, &entity.DocumentChunk{
			Id:             uuid.New(),
			DocumentId:     doc.Id,
			OrganizationId: doc.OrganizationId,
			ChunkIndex:     i,
			Content:        chunk.Text,
			Section:        chunk.Section,
			EmbeddingValue: res.Values,
			CreatedAt:      time.Now(),
		})
	}

	// Both mining stages call the model, so they run before the write
	// transaction opens.
	pattern, err := s.extractFormat(ctx, doc, text, tally)
	if err != nil {
		msg.Nack()
		return
	}
	extraction, err := s.extractPricing(ctx, doc, text)
	if err != nil {
		msg.Nack()
		return
	}

	if err := uow.Begin(ctx); err != nil {
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		msg.Nack()
		return
	}
	if err := uow.DocumentChunkRepository().CreateBulk(ctx, newChunks); err != nil {
		msg.Nack()
		return
	}
	if err := s.persistFormat(ctx, uow, doc, pattern); err != nil {
		msg.Nack()
		return
	}
	if err := s.persistPricing(ctx, uow, doc, extraction); err != nil {
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		msg.Nack()
		return
	}

	details := map[string]interface{}{
		"text_length":       len(text),
		"chunks":            len(newChunks),
		"format_extracted":  pattern != nil,
		"pricing_extracted": extraction != nil,
	}

	s.formatCache.Invalidate(doc.OrganizationId)

	if err := s.setStatus(ctx, uow, doc, constant.DocumentStatusProcessed, details); err != nil {
		msg.Nack()
		return
	}

	s.logger.Info("Processor", "Document processed", map[string]interface{}{"document_id": doc.Id, "chunks": len(newChunks)})
	msg.Ack()
}

// extractFormat mines formatting conventions from types that represent the
// tenant's outgoing paperwork. A failed LLM call is retriable; an unusable
// response just skips the stage.
func (s *processorService) extractFormat(ctx context.Context, doc *entity.Document, text string, tally *extract.Tally) (*formatpattern.Pattern, error) {
	if !constant.IsFormatExtractable(doc.DocType) {
		return nil, nil
	}

	pattern, err := s.formatExtractor.Extract(ctx, text, tally)
	if err != nil {
		s.logger.Error("Processor", "Format extraction failed", map[string]interface{}{"document_id": doc.Id, "error": err.Error()})
		return nil, err
	}
	return pattern, nil
}

func (s *processorService) extractPricing(ctx context.Context, doc *entity.Document, text string) (*pricing.Extraction, error) {
	if !constant.IsPricingExtractable(doc.DocType) {
		return nil, nil
	}

	extraction, err := s.pricingExtractor.Extract(ctx, text)
	if err != nil {
		s.logger.Error("Processor", "Pricing extraction failed", map[string]interface{}{"document_id": doc.Id, "error": err.Error()})
		return nil, err
	}
	return extraction, nil
}

func (s *processorService) persistFormat(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document, pattern *formatpattern.Pattern) error {
	if pattern == nil {
		return nil
	}
	if err := uow.FormatPatternRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		return err
	}
	record := entity.FormatPatternRecord{
		Id:              uuid.New(),
		DocumentId:      doc.Id,
		OrganizationId:  doc.OrganizationId,
		Pattern:         *pattern,
		ConfidenceScore: pattern.ConfidenceScore,
		CreatedAt:       time.Now(),
	}
	return uow.FormatPatternRepository().Create(ctx, &record)
}

func (s *processorService) persistPricing(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document, extraction *pricing.Extraction) error {
	if extraction == nil {
		return nil
	}
	if err := uow.PricingRecordRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		return err
	}
	record := entity.PricingRecord{
		Id:              uuid.New(),
		DocumentId:      doc.Id,
		OrganizationId:  doc.OrganizationId,
		ProjectType:     extraction.ProjectInfo.ProjectType,
		ProjectName:     extraction.ProjectInfo.ProjectName,
		ProjectDate:     extraction.ProjectInfo.Date,
		TotalAmount:     extraction.Summary.GrandTotal,
		Extraction:      *extraction,
		ConfidenceScore: extraction.ConfidenceScore,
		CreatedAt:       time.Now(),
	}
	return uow.PricingRecordRepository().Create(ctx, &record)
}

func (s *processorService) failDocument(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document, reason string) {
	_ = s.setStatus(ctx, uow, doc, constant.DocumentStatusError, map[string]interface{}{"reason": reason})
}

func (s *processorService) setStatus(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document, status string, details map[string]interface{}) error {
	if err := uow.DocumentRepository().UpdateStatus(ctx, doc.Id, status, details); err != nil {
		s.logger.Error("Processor", "Status update failed", map[string]interface{}{"document_id": doc.Id, "status": status, "error": err.Error()})
		return err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: constant.EventDocumentStatusChanged,
			Data: map[string]interface{}{
				"document_id":     doc.Id,
				"organization_id": doc.OrganizationId,
				"status":          status,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("Processor", "Status event publish failed", map[string]interface{}{"document_id": doc.Id, "error": err.Error()})
		}
	}
	return nil
}
