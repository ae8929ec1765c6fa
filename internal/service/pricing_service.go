package service

import (
	"context"
	"sort"

	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/pkg/logger"
	"ai-estimator-be/internal/pkg/serverutils"
	"ai-estimator-be/internal/repository/specification"
	"ai-estimator-be/internal/repository/unitofwork"
	"ai-estimator-be/pkg/embedding"
	"ai-estimator-be/pkg/pricing"

	"github.com/google/uuid"
)

const (
	similarChunkLimit     = 10
	similarChunkThreshold = 0.3
	defaultSimilarLimit   = 5
)

type IPricingService interface {
	FindSimilarProjects(ctx context.Context, userId uuid.UUID, req *dto.SimilarProjectsRequest) (*dto.SimilarProjectsResponse, error)
	CategoryAverages(ctx context.Context, userId uuid.UUID, req *dto.CategoryAveragesRequest) (*dto.CategoryAveragesResponse, error)
}

type pricingService struct {
	uowFactory          unitofwork.RepositoryFactory
	organizationService IOrganizationService
	embeddingProvider   embedding.EmbeddingProvider
	logger              logger.ILogger
}

func NewPricingService(
	uowFactory unitofwork.RepositoryFactory,
	organizationService IOrganizationService,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IPricingService {
	return &pricingService{
		uowFactory:          uowFactory,
		organizationService: organizationService,
		embeddingProvider:   embeddingProvider,
		logger:              log,
	}
}

// FindSimilarProjects retrieves past priced projects resembling the query.
// Semantic retrieval over document chunks is tried first; when it finds no
// priced documents, scope keywords from the query drive a direct match
// against the pricing records. Retrieval failures on either path degrade
// to the next one, the caller always gets a list.
func (s *pricingService) FindSimilarProjects(ctx context.Context, userId uuid.UUID, req *dto.SimilarProjectsRequest) (*dto.SimilarProjectsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, req.OrganizationId, userId); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	items, err := s.findSemantic(ctx, uow, req.OrganizationId, req.Query, limit)
	if err != nil {
		s.logger.Warn("Pricing", "Semantic retrieval failed, trying keywords", map[string]interface{}{"organization_id": req.OrganizationId, "error": err.Error()})
		items = nil
	}

	if len(items) == 0 {
		items, err = s.findByKeywords(ctx, uow, req.OrganizationId, req.Query, limit)
		if err != nil {
			s.logger.Warn("Pricing", "Keyword retrieval failed", map[string]interface{}{"organization_id": req.OrganizationId, "error": err.Error()})
			items = nil
		}
	}

	if items == nil {
		items = []dto.SimilarProjectItem{}
	}
	return &dto.SimilarProjectsResponse{Projects: items}, nil
}

func (s *pricingService) findSemantic(ctx context.Context, uow unitofwork.UnitOfWork, orgId uuid.UUID, query string, limit int) ([]dto.SimilarProjectItem, error) {
	embeddingRes, err := s.embeddingProvider.Generate(ctx, query)
	if err != nil {
		return nil, err
	}

	scored, err := uow.DocumentChunkRepository().SearchSimilarWithScore(
		ctx, embeddingRes.Values, similarChunkLimit, orgId, similarChunkThreshold, "",
	)
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return nil, nil
	}

	// A document's score is the best of its chunk scores.
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

	items := make([]dto.SimilarProjectItem, 0, len(records))
	for _, rec := range records {
		items = append(items, similarItem(rec, docScores[rec.DocumentId], "semantic"))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Similarity > items[j].Similarity
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *pricingService) findByKeywords(ctx context.Context, uow unitofwork.UnitOfWork, orgId uuid.UUID, query string, limit int) ([]dto.SimilarProjectItem, error) {
	keywords := pricing.ScopeKeywords(query)
	if len(keywords) == 0 {
		return nil, nil
	}

	records, err := uow.PricingRecordRepository().FindByKeywords(ctx, orgId, keywords, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SimilarProjectItem, 0, len(records))
	for _, rec := range records {
		items = append(items, similarItem(rec, 0, "keyword"))
	}
	return items, nil
}

func (s *pricingService) CategoryAverages(ctx context.Context, userId uuid.UUID, req *dto.CategoryAveragesRequest) (*dto.CategoryAveragesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, req.OrganizationId, userId); err != nil {
		return nil, err
	}

	specs := []specification.Specification{
		specification.ByOrganizationID{OrganizationID: req.OrganizationId},
	}
	if req.ProjectType != "" {
		specs = append(specs, specification.Filter("project_type", req.ProjectType))
	}

	records, err := uow.PricingRecordRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	extractions := make([]pricing.Extraction, 0, len(records))
	for _, rec := range records {
		extractions = append(extractions, rec.Extraction)
	}

	stats := pricing.ComputeCategoryStats(req.Category, extractions)
	if stats == nil {
		return nil, serverutils.ErrNotFound
	}

	return &dto.CategoryAveragesResponse{
		Category:    stats.Category,
		SampleCount: stats.SampleCount,
		AvgTotal:    stats.AvgTotal,
		MinTotal:    stats.MinTotal,
		MaxTotal:    stats.MaxTotal,
		AvgUnitCost: stats.AvgUnitCost,
		CommonItems: stats.CommonItems,
	}, nil
}

func similarItem(rec *entity.PricingRecord, similarity float64, matchedBy string) dto.SimilarProjectItem {
	return dto.SimilarProjectItem{
		DocumentId:  rec.DocumentId,
		ProjectType: rec.ProjectType,
		ProjectName: rec.ProjectName,
		ProjectDate: rec.ProjectDate,
		TotalAmount: rec.TotalAmount,
		ItemCount:   len(rec.Extraction.LineItems),
		Similarity:  similarity,
		MatchedBy:   matchedBy,
	}
}
