package service

import (
	"context"
	"errors"
	"testing"

	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/pkg/serverutils"
	"ai-estimator-be/internal/repository/contract"
	"ai-estimator-be/pkg/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func newPricingFixture(uow *fakeUow, embedder *stubEmbedder) IPricingService {
	return NewPricingService(&fakeUowFactory{uow: uow}, &stubOrgService{}, embedder, noopLogger{})
}

func pricedRecord(docId uuid.UUID, projectType string) *entity.PricingRecord {
	return &entity.PricingRecord{
		Id:          uuid.New(),
		DocumentId:  docId,
		ProjectType: projectType,
		TotalAmount: ptr(12000),
	}
}

func TestFindSimilarProjectsSemanticPath(t *testing.T) {
	uow := newFakeUow()
	docA, docB := uuid.New(), uuid.New()
	uow.chunks.scored = []*contract.ScoredChunk{
		{Chunk: &entity.DocumentChunk{DocumentId: docA}, Similarity: 0.6},
		{Chunk: &entity.DocumentChunk{DocumentId: docB}, Similarity: 0.9},
		{Chunk: &entity.DocumentChunk{DocumentId: docA}, Similarity: 0.8},
	}
	uow.pricing.records = []*entity.PricingRecord{
		pricedRecord(docA, "bathroom remodel"),
		pricedRecord(docB, "kitchen remodel"),
	}
	svc := newPricingFixture(uow, &stubEmbedder{})

	res, err := svc.FindSimilarProjects(context.Background(), uuid.New(), &dto.SimilarProjectsRequest{
		OrganizationId: uuid.New(),
		Query:          "gut and refit the guest bathroom",
	})

	require.NoError(t, err)
	require.Len(t, res.Projects, 2)
	// Ranked by the best chunk score per document.
	assert.Equal(t, docB, res.Projects[0].DocumentId)
	assert.Equal(t, 0.9, res.Projects[0].Similarity)
	assert.Equal(t, docA, res.Projects[1].DocumentId)
	assert.Equal(t, 0.8, res.Projects[1].Similarity)
	assert.Equal(t, "semantic", res.Projects[0].MatchedBy)
	// Semantic hits mean the keyword fallback never ran.
	assert.Empty(t, uow.pricing.keywordCalls)
}

func TestFindSimilarProjectsKeywordFallbackOnEmpty(t *testing.T) {
	uow := newFakeUow()
	uow.pricing.keywordHits = []*entity.PricingRecord{pricedRecord(uuid.New(), "bathroom remodel")}
	svc := newPricingFixture(uow, &stubEmbedder{})

	res, err := svc.FindSimilarProjects(context.Background(), uuid.New(), &dto.SimilarProjectsRequest{
		OrganizationId: uuid.New(),
		Query:          "bathroom remodel with new tile",
	})

	require.NoError(t, err)
	require.Len(t, res.Projects, 1)
	assert.Equal(t, "keyword", res.Projects[0].MatchedBy)
	require.Len(t, uow.pricing.keywordCalls, 1)
	assert.Equal(t, pricing.ScopeKeywords("bathroom remodel with new tile"), uow.pricing.keywordCalls[0])
}

func TestFindSimilarProjectsKeywordFallbackOnSemanticFailure(t *testing.T) {
	uow := newFakeUow()
	uow.chunks.searchErr = errors.New("index offline")
	uow.pricing.keywordHits = []*entity.PricingRecord{pricedRecord(uuid.New(), "kitchen remodel")}
	svc := newPricingFixture(uow, &stubEmbedder{})

	res, err := svc.FindSimilarProjects(context.Background(), uuid.New(), &dto.SimilarProjectsRequest{
		OrganizationId: uuid.New(),
		Query:          "kitchen remodel",
	})

	require.NoError(t, err)
	require.Len(t, res.Projects, 1)
	assert.Equal(t, "keyword", res.Projects[0].MatchedBy)
}

func TestFindSimilarProjectsEmbeddingFailureDegrades(t *testing.T) {
	uow := newFakeUow()
	uow.pricing.keywordHits = []*entity.PricingRecord{pricedRecord(uuid.New(), "kitchen remodel")}
	svc := newPricingFixture(uow, &stubEmbedder{err: errors.New("embed quota exhausted")})

	res, err := svc.FindSimilarProjects(context.Background(), uuid.New(), &dto.SimilarProjectsRequest{
		OrganizationId: uuid.New(),
		Query:          "kitchen remodel",
	})

	require.NoError(t, err)
	require.Len(t, res.Projects, 1)
	assert.Equal(t, "keyword", res.Projects[0].MatchedBy)
}

func TestFindSimilarProjectsBothPathsEmpty(t *testing.T) {
	uow := newFakeUow()
	svc := newPricingFixture(uow, &stubEmbedder{err: errors.New("embed quota exhausted")})

	res, err := svc.FindSimilarProjects(context.Background(), uuid.New(), &dto.SimilarProjectsRequest{
		OrganizationId: uuid.New(),
		Query:          "tell me a joke",
	})

	require.NoError(t, err)
	assert.Empty(t, res.Projects)
}

func TestCategoryAveragesFiltersByCategory(t *testing.T) {
	uow := newFakeUow()
	uow.pricing.records = []*entity.PricingRecord{
		{
			Id:         uuid.New(),
			DocumentId: uuid.New(),
			Extraction: pricing.Extraction{
				LineItems: []pricing.LineItem{
					{Description: "Panel upgrade", Category: "electrical", UnitCost: ptr(100), TotalCost: ptr(1600)},
					{Description: "Repipe whole house", Category: "plumbing", UnitCost: ptr(900), TotalCost: ptr(9000)},
				},
				Summary: pricing.Summary{GrandTotal: ptr(50000)},
			},
		},
	}
	svc := newPricingFixture(uow, &stubEmbedder{})

	res, err := svc.CategoryAverages(context.Background(), uuid.New(), &dto.CategoryAveragesRequest{
		OrganizationId: uuid.New(),
		Category:       "electrical",
	})

	require.NoError(t, err)
	assert.Equal(t, "electrical", res.Category)
	assert.Equal(t, 1, res.SampleCount)
	assert.Equal(t, 100.0, res.AvgUnitCost)
	assert.Equal(t, 1600.0, res.AvgTotal)
	assert.Equal(t, []string{"panel upgrade"}, res.CommonItems)
}

func TestCategoryAveragesNoRecords(t *testing.T) {
	uow := newFakeUow()
	svc := newPricingFixture(uow, &stubEmbedder{})

	_, err := svc.CategoryAverages(context.Background(), uuid.New(), &dto.CategoryAveragesRequest{
		OrganizationId: uuid.New(),
		Category:       "electrical",
	})

	assert.ErrorIs(t, err, serverutils.ErrNotFound)
}
