package unitofwork

import (
	"context"

	"ai-estimator-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	OrganizationRepository() contract.OrganizationRepository
	OrganizationMemberRepository() contract.OrganizationMemberRepository
	CompanyProfileRepository() contract.CompanyProfileRepository
	PricingProfileRepository() contract.PricingProfileRepository
	LaborItemRepository() contract.LaborItemRepository

	DocumentRepository() contract.DocumentRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	FormatPatternRepository() contract.FormatPatternRepository
	PricingRecordRepository() contract.PricingRecordRepository

	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
}
