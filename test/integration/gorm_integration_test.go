package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"ai-estimator-be/internal/constant"
	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/repository/unitofwork"
	"ai-estimator-be/pkg/database"
	"ai-estimator-be/pkg/pricing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.OrganizationRepository())
	assert.NotNil(t, uow.DocumentChunkRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Document Repository", func(t *testing.T) {
		count, err := uow.DocumentRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Document count: %d", count)
	})

	t.Run("Check Pricing Record Repository", func(t *testing.T) {
		records, err := uow.PricingRecordRepository().FindAll(context.Background())
		assert.NoError(t, err)
		t.Logf("Pricing record count: %d", len(records))
	})

	t.Run("Check Transactional Organization Bootstrap", func(t *testing.T) {
		ctx := context.Background()
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		orgId := uuid.New()
		userId := uuid.New()
		org := &entity.Organization{
			Id:        orgId,
			Name:      "Integration Test Org " + uuid.New().String(),
			CreatedBy: userId,
		}

		err = uow.OrganizationRepository().Create(ctx, org)
		assert.NoError(t, err)

		member := &entity.OrganizationMember{
			Id:             uuid.New(),
			OrganizationId: orgId,
			UserId:         userId,
			Role:           constant.MemberRoleOwner,
		}

		err = uow.OrganizationMemberRepository().Create(ctx, member)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created Organization with owner membership in Transaction")
	})

	t.Run("Keyword Search Ranks By Overlap", func(t *testing.T) {
		ctx := context.Background()
		orgId := uuid.New()

		seed := func(name string, extraction pricing.Extraction) uuid.UUID {
			docId := uuid.New()
			err := uow.PricingRecordRepository().Create(ctx, &entity.PricingRecord{
				Id:             uuid.New(),
				DocumentId:     docId,
				OrganizationId: orgId,
				ProjectType:    extraction.ProjectInfo.ProjectType,
				ProjectName:    name,
				Extraction:     extraction,
			})
			assert.NoError(t, err)
			return docId
		}

		// One keyword in common vs. two.
		single := seed("Hallway repaint", pricing.Extraction{
			ProjectInfo: pricing.ProjectInfo{ProjectType: "painting", ScopeNotes: "bathroom touch-up"},
		})
		double := seed("Guest bath refit", pricing.Extraction{
			ProjectInfo: pricing.ProjectInfo{ProjectType: "bathroom remodel", ScopeNotes: "full bathroom remodel"},
		})
		defer uow.PricingRecordRepository().DeleteByDocumentId(ctx, single)
		defer uow.PricingRecordRepository().DeleteByDocumentId(ctx, double)

		records, err := uow.PricingRecordRepository().FindByKeywords(ctx, orgId, []string{"bathroom", "remodel"}, 5)
		assert.NoError(t, err)
		if assert.Len(t, records, 2) {
			assert.Equal(t, double, records[0].DocumentId)
			assert.Equal(t, single, records[1].DocumentId)
		}

		// No overlap at all means no results.
		records, err = uow.PricingRecordRepository().FindByKeywords(ctx, orgId, []string{"roofing"}, 5)
		assert.NoError(t, err)
		assert.Empty(t, records)
	})
}
