package unitofwork

import (
	"context"
	"fmt"

	"ai-estimator-be/internal/repository/contract"
	"ai-estimator-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) OrganizationRepository() contract.OrganizationRepository {
	return implementation.NewOrganizationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) OrganizationMemberRepository() contract.OrganizationMemberRepository {
	return implementation.NewOrganizationMemberRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CompanyProfileRepository() contract.CompanyProfileRepository {
	return implementation.NewCompanyProfileRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PricingProfileRepository() contract.PricingProfileRepository {
	return implementation.NewPricingProfileRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LaborItemRepository() contract.LaborItemRepository {
	return implementation.NewLaborItemRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DocumentRepository() contract.DocumentRepository {
	return implementation.NewDocumentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DocumentChunkRepository() contract.DocumentChunkRepository {
	return implementation.NewDocumentChunkRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FormatPatternRepository() contract.FormatPatternRepository {
	return implementation.NewFormatPatternRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PricingRecordRepository() contract.PricingRecordRepository {
	return implementation.NewPricingRecordRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ConversationRepository() contract.ConversationRepository {
	return implementation.NewConversationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MessageRepository() contract.MessageRepository {
	return implementation.NewMessageRepository(u.getDB())
}
