package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-estimator-be/internal/constant"
	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/pkg/serverutils"
	"ai-estimator-be/internal/repository/memory"
	"ai-estimator-be/internal/repository/specification"
	"ai-estimator-be/internal/repository/unitofwork"
	"ai-estimator-be/pkg/storage"

	"github.com/google/uuid"
)

const signedURLTTL = 15 * time.Minute

type IDocumentService interface {
	// RegisterUpload reserves a pending document and mints a signed URL the
	// client uploads the blob to directly; ConfirmUpload then starts
	// processing. Upload is the one-shot variant for small files routed
	// through the API.
	RegisterUpload(ctx context.Context, userId uuid.UUID, req *dto.RegisterDocumentRequest) (*dto.RegisterDocumentResponse, error)
	ConfirmUpload(ctx context.Context, userId uuid.UUID, orgId, docId uuid.UUID) (*dto.DocumentStatusResponse, error)
	Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error)
	Show(ctx context.Context, userId uuid.UUID, orgId, docId uuid.UUID) (*dto.ShowDocumentResponse, error)
	List(ctx context.Context, userId uuid.UUID, req *dto.ListDocumentsRequest) (*dto.ListDocumentsResponse, error)
	Status(ctx context.Context, userId uuid.UUID, orgId, docId uuid.UUID) (*dto.DocumentStatusResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, orgId, docId uuid.UUID) error
	Reprocess(ctx context.Context, userId uuid.UUID, orgId, docId uuid.UUID) (*dto.DocumentStatusResponse, error)
}

type documentService struct {
	uowFactory          unitofwork.RepositoryFactory
	organizationService IOrganizationService
	publisherService    IPublisherService
	objectStore         storage.ObjectStore
	formatCache         *memory.FormatAggregateCache
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	organizationService IOrganizationService,
	publisherService IPublisherService,
	objectStore storage.ObjectStore,
	formatCache *memory.FormatAggregateCache,
) IDocumentService {
	return &documentService{
		uowFactory:          uowFactory,
		organizationService: organizationService,
		publisherService:    publisherService,
		objectStore:         objectStore,
		formatCache:         formatCache,
	}
}

func (s *documentService) RegisterUpload(ctx context.Context, userId uuid.UUID, req *dto.RegisterDocumentRequest) (*dto.RegisterDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, req.OrganizationId, userId); err != nil {
		return nil, err
	}

	if _, ok := constant.AllowedMimeTypes[req.MimeType]; !ok {
		return nil, serverutils.ErrUnsupportedMedia
	}

	doc := entity.Document{
		Id:             uuid.New(),
		OrganizationId: req.OrganizationId,
		UploadedBy:     userId,
		Name:           req.FileName,
		DocType:        req.DocumentType,
		MimeType:       req.MimeType,
		Status:         constant.DocumentStatusPending,
		CreatedAt:      time.Now(),
	}
	doc.StoragePath = fmt.Sprintf("%s/%s/%s", req.OrganizationId, doc.Id, req.FileName)

	uploadURL, err := s.objectStore.SignedUploadURL(ctx, doc.StoragePath)
	if err != nil {
		return nil, err
	}

	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	return &dto.RegisterDocumentResponse{
		Id:          doc.Id,
		UploadURL:   uploadURL,
		StoragePath: doc.StoragePath,
		Status:      doc.Status,
	}, nil
}

func (s *documentService) ConfirmUpload(ctx context.Context, userId uuid.UUID, orgId, docId uuid.UUID) (*dto.DocumentStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, orgId, userId); err != nil {
		return nil, err
	}

	doc, err := s.findDocument(ctx, uow, orgId, docId)
	if err != nil {
		return nil, err
	}

	if err := s.publishProcess(ctx, doc.Id, doc.OrganizationId); err != nil {
		return nil, err
	}

	return &dto.DocumentStatusResponse{
		Id:     doc.Id,
		Status: doc.Status,
	}, nil
}

func (s *documentService) Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, req.OrganizationId, userId); err != nil {
		return nil, err
	}

	if _, ok := constant.AllowedMimeTypes[req.MimeType]; !ok {
		return nil, serverutils.ErrUnsupportedMedia
	}

	doc := entity.Document{
		Id:             uuid.New(),
		OrganizationId: req.OrganizationId,
		UploadedBy:     userId,
		Name:           req.FileName,
		DocType:        req.DocumentType,
		MimeType:       req.MimeType,
		SizeBytes:      int64(len(req.Content)),
		Status:         constant.DocumentStatusPending,
		CreatedAt:      time.Now(),
	}
	doc.StoragePath = fmt.Sprintf("%s/%s/%s", req.OrganizationId, doc.Id, req.FileName)

	if err := s.objectStore.Upload(ctx, doc.StoragePath, req.Content, req.MimeType); err != nil {
		return nil, err
	}

	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	if err := s.publishProcess(ctx, doc.Id, doc.OrganizationId); err != nil {
		return nil, err
	}

	return &dto.UploadDocumentResponse{
		Id:     doc.Id,
		Status: doc.Status,
	}, nil
}

func (s *documentService) Show(ctx context.Context, userId uuid.UUID, orgId, docId uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, orgId, userId); err != nil {
		return nil, err
	}

	doc, err := s.findDocument(ctx, uow, orgId, docId)
	if err != nil {
		return nil, err
	}

	chunkCount, err := uow.DocumentChunkRepository().Count(ctx,
		specification.ByDocumentID{DocumentID: docId},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ShowDocumentResponse{
		Id:            doc.Id,
		FileName:      doc.Name,
		MimeType:      doc.MimeType,
		DocumentType:  doc.DocType,
		Status:        doc.Status,
		StatusDetails: doc.StatusDetails,
		ChunkCount:    chunkCount,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}

	// A broken signed URL should not take down the detail view.
	if url, err := s.objectStore.SignedURL(ctx, doc.StoragePath, signedURLTTL); err == nil {
		res.DownloadURL = url
	}

	return res, nil
}

func (s *documentService) List(ctx context.Context, userId uuid.UUID, req *dto.ListDocumentsRequest) (*dto.ListDocumentsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, req.OrganizationId, userId); err != nil {
		return nil, err
	}

	specs := []specification.Specification{
		specification.ByOrganizationID{OrganizationID: req.OrganizationId},
	}
	if req.DocumentType != "" {
		specs = append(specs, specification.ByDocumentType{DocumentType: req.DocumentType})
	}
	if req.Status != "" {
		specs = append(specs, specification.ByStatus{Status: req.Status})
	}

	total, err := uow.DocumentRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)

	docs, err := uow.DocumentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DocumentListItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, dto.DocumentListItem{
			Id:           doc.Id,
			FileName:     doc.Name,
			DocumentType: doc.DocType,
			Status:       doc.Status,
			CreatedAt:    doc.CreatedAt,
		})
	}

	return &dto.ListDocumentsResponse{
		Documents: items,
		Total:     total,
	}, nil
}

func (s *documentService) Status(ctx context.Context, userId uuid.UUID, orgId, docId uuid.UUID) (*dto.DocumentStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, orgId, userId); err != nil {
		return nil, err
	}

	doc, err := s.findDocument(ctx, uow, orgId, docId)
	if err != nil {
		return nil, err
	}

	return &dto.DocumentStatusResponse{
		Id:            doc.Id,
		Status:        doc.Status,
		StatusDetails: doc.StatusDetails,
	}, nil
}

func (s *documentService) Delete(ctx context.Context, userId uuid.UUID, orgId, docId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, orgId, userId); err != nil {
		return err
	}

	doc, err := s.findDocument(ctx, uow, orgId, docId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Delete(ctx, docId); err != nil {
		return err
	}
	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, docId); err != nil {
		return err
	}
	if err := uow.FormatPatternRepository().DeleteByDocumentId(ctx, docId); err != nil {
		return err
	}
	if err := uow.PricingRecordRepository().DeleteByDocumentId(ctx, docId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	// Blob and cache cleanup are best-effort after the commit.
	_ = s.objectStore.Delete(ctx, doc.StoragePath)
	s.formatCache.Invalidate(orgId)

	return nil
}

func (s *documentService) Reprocess(ctx context.Context, userId uuid.UUID, orgId, docId uuid.UUID) (*dto.DocumentStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, orgId, userId); err != nil {
		return nil, err
	}

	doc, err := s.findDocument(ctx, uow, orgId, docId)
	if err != nil {
		return nil, err
	}

	if err := uow.DocumentRepository().UpdateStatus(ctx, docId, constant.DocumentStatusPending, nil); err != nil {
		return nil, err
	}

	if err := s.publishProcess(ctx, doc.Id, doc.OrganizationId); err != nil {
		return nil, err
	}

	return &dto.DocumentStatusResponse{
		Id:     doc.Id,
		Status: constant.DocumentStatusPending,
	}, nil
}

func (s *documentService) findDocument(ctx context.Context, uow unitofwork.UnitOfWork, orgId, docId uuid.UUID) (*entity.Document, error) {
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: docId},
		specification.ByOrganizationID{OrganizationID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, serverutils.ErrNotFound
	}
	return doc, nil
}

func (s *documentService) publishProcess(ctx context.Context, docId, orgId uuid.UUID) error {
	payload := dto.ProcessDocumentMessage{
		DocumentId:     docId,
		OrganizationId: orgId,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payloadJson)
}
