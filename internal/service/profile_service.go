package service

import (
	"context"
	"time"

	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/pkg/serverutils"
	"ai-estimator-be/internal/repository/specification"
	"ai-estimator-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IProfileService interface {
	UpsertCompanyProfile(ctx context.Context, userId uuid.UUID, req *dto.UpsertCompanyProfileRequest) (*dto.CompanyProfileResponse, error)
	ShowCompanyProfile(ctx context.Context, userId uuid.UUID, orgId uuid.UUID) (*dto.CompanyProfileResponse, error)
	UpsertPricingProfile(ctx context.Context, userId uuid.UUID, req *dto.UpsertPricingProfileRequest) (*dto.PricingProfileResponse, error)
	ShowPricingProfile(ctx context.Context, userId uuid.UUID, orgId uuid.UUID) (*dto.PricingProfileResponse, error)
	CreateLaborItem(ctx context.Context, userId uuid.UUID, req *dto.CreateLaborItemRequest) (*dto.LaborItemResponse, error)
	UpdateLaborItem(ctx context.Context, userId uuid.UUID, req *dto.UpdateLaborItemRequest) (*dto.LaborItemResponse, error)
	DeleteLaborItem(ctx context.Context, userId uuid.UUID, orgId, itemId uuid.UUID) error
	ListLaborItems(ctx context.Context, userId uuid.UUID, orgId uuid.UUID) ([]*dto.LaborItemResponse, error)
}

type profileService struct {
	uowFactory          unitofwork.RepositoryFactory
	organizationService IOrganizationService
}

func NewProfileService(
	uowFactory unitofwork.RepositoryFactory,
	organizationService IOrganizationService,
) IProfileService {
	return &profileService{
		uowFactory:          uowFactory,
		organizationService: organizationService,
	}
}

func (s *profileService) UpsertCompanyProfile(ctx context.Context, userId uuid.UUID, req *dto.UpsertCompanyProfileRequest) (*dto.CompanyProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, req.OrganizationId, userId); err != nil {
		return nil, err
	}

	profile := entity.CompanyProfile{
		Id:             uuid.New(),
		OrganizationId: req.OrganizationId,
		CompanyName:    req.CompanyName,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		Website:        req.Website,
		CreatedAt:      time.Now(),
	}

	if err := uow.CompanyProfileRepository().Upsert(ctx, &profile); err != nil {
		return nil, err
	}

	return companyProfileResponse(&profile), nil
}

func (s *profileService) ShowCompanyProfile(ctx context.Context, userId uuid.UUID, orgId uuid.UUID) (*dto.CompanyProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, orgId, userId); err != nil {
		return nil, err
	}

	profile, err := uow.CompanyProfileRepository().FindByOrganizationId(ctx, orgId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, serverutils.ErrNotFound
	}

	return companyProfileResponse(profile), nil
}

func (s *profileService) UpsertPricingProfile(ctx context.Context, userId uuid.UUID, req *dto.UpsertPricingProfileRequest) (*dto.PricingProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, req.OrganizationId, userId); err != nil {
		return nil, err
	}

	profile := entity.PricingProfile{
		Id:               uuid.New(),
		OrganizationId:   req.OrganizationId,
		LaborRatePerHour: req.LaborRatePerHour,
		OverheadMarkup:   req.OverheadMarkup,
		ProfitMargin:     req.ProfitMargin,
		Region:           req.Region,
		CreatedAt:        time.Now(),
	}

	if err := uow.PricingProfileRepository().Upsert(ctx, &profile); err != nil {
		return nil, err
	}

	return pricingProfileResponse(&profile), nil
}

func (s *profileService) ShowPricingProfile(ctx context.Context, userId uuid.UUID, orgId uuid.UUID) (*dto.PricingProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, orgId, userId); err != nil {
		return nil, err
	}

	profile, err := uow.PricingProfileRepository().FindByOrganizationId(ctx, orgId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, serverutils.ErrNotFound
	}

	return pricingProfileResponse(profile), nil
}

func (s *profileService) CreateLaborItem(ctx context.Context, userId uuid.UUID, req *dto.CreateLaborItemRequest) (*dto.LaborItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, req.OrganizationId, userId); err != nil {
		return nil, err
	}

	item := entity.LaborItem{
		Id:             uuid.New(),
		OrganizationId: req.OrganizationId,
		Name:           req.Name,
		Rate:           req.Rate,
		Unit:           req.Unit,
		Category:       req.Category,
		CreatedAt:      time.Now(),
	}

	if err := uow.LaborItemRepository().Create(ctx, &item); err != nil {
		return nil, err
	}

	return laborItemResponse(&item), nil
}

func (s *profileService) UpdateLaborItem(ctx context.Context, userId uuid.UUID, req *dto.UpdateLaborItemRequest) (*dto.LaborItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, req.OrganizationId, userId); err != nil {
		return nil, err
	}

	item, err := uow.LaborItemRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.ByOrganizationID{OrganizationID: req.OrganizationId},
	)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, serverutils.ErrNotFound
	}

	now := time.Now()
	item.Name = req.Name
	item.Rate = req.Rate
	item.Unit = req.Unit
	item.Category = req.Category
	item.UpdatedAt = &now

	if err := uow.LaborItemRepository().Update(ctx, item); err != nil {
		return nil, err
	}

	return laborItemResponse(item), nil
}

func (s *profileService) DeleteLaborItem(ctx context.Context, userId uuid.UUID, orgId, itemId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, orgId, userId); err != nil {
		return err
	}

	item, err := uow.LaborItemRepository().FindOne(ctx,
		specification.ByID{ID: itemId},
		specification.ByOrganizationID{OrganizationID: orgId},
	)
	if err != nil {
		return err
	}
	if item == nil {
		return serverutils.ErrNotFound
	}

	return uow.LaborItemRepository().Delete(ctx, itemId)
}

func (s *profileService) ListLaborItems(ctx context.Context, userId uuid.UUID, orgId uuid.UUID) ([]*dto.LaborItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, orgId, userId); err != nil {
		return nil, err
	}

	items, err := uow.LaborItemRepository().FindAll(ctx,
		specification.ByOrganizationID{OrganizationID: orgId},
		specification.OrderBy{Field: "category"},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.LaborItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, laborItemResponse(item))
	}
	return response, nil
}

func companyProfileResponse(p *entity.CompanyProfile) *dto.CompanyProfileResponse {
	return &dto.CompanyProfileResponse{
		Id:          p.Id,
		CompanyName: p.CompanyName,
		Phone:       p.Phone,
		Email:       p.Email,
		Address:     p.Address,
		Website:     p.Website,
	}
}

func pricingProfileResponse(p *entity.PricingProfile) *dto.PricingProfileResponse {
	return &dto.PricingProfileResponse{
		Id:               p.Id,
		LaborRatePerHour: p.LaborRatePerHour,
		OverheadMarkup:   p.OverheadMarkup,
		ProfitMargin:     p.ProfitMargin,
		Region:           p.Region,
	}
}

func laborItemResponse(i *entity.LaborItem) *dto.LaborItemResponse {
	return &dto.LaborItemResponse{
		Id:       i.Id,
		Name:     i.Name,
		Rate:     i.Rate,
		Unit:     i.Unit,
		Category: i.Category,
	}
}
