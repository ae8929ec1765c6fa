package service

import (
	"context"
	"time"

	"ai-estimator-be/internal/constant"
	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/pkg/serverutils"
	"ai-estimator-be/internal/repository/specification"
	"ai-estimator-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IOrganizationService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateOrganizationRequest) (*dto.CreateOrganizationResponse, error)
	Show(ctx context.Context, userId uuid.UUID, orgId uuid.UUID) (*dto.ShowOrganizationResponse, error)
	ListMembers(ctx context.Context, userId uuid.UUID, orgId uuid.UUID) ([]*dto.OrganizationMemberResponse, error)
	AddMember(ctx context.Context, userId uuid.UUID, req *dto.AddMemberRequest) (*dto.AddMemberResponse, error)
	// ResolveContext lists the verified user's tenants. A valid token with
	// no memberships is forbidden, not unauthorized.
	ResolveContext(ctx context.Context, userId uuid.UUID) (*dto.AuthContextResponse, error)
	// RequireMembership returns serverutils.ErrForbidden when the user does
	// not belong to the organization. Every tenant-scoped service call goes
	// through this check.
	RequireMembership(ctx context.Context, uow unitofwork.UnitOfWork, orgId, userId uuid.UUID) (*entity.OrganizationMember, error)
}

type organizationService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewOrganizationService(uowFactory unitofwork.RepositoryFactory) IOrganizationService {
	return &organizationService{
		uowFactory: uowFactory,
	}
}

func (s *organizationService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateOrganizationRequest) (*dto.CreateOrganizationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	org := entity.Organization{
		Id:        uuid.New(),
		Name:      req.Name,
		CreatedBy: userId,
		CreatedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.OrganizationRepository().Create(ctx, &org); err != nil {
		return nil, err
	}

	// Creator becomes the owner in the same transaction.
	member := entity.OrganizationMember{
		Id:             uuid.New(),
		OrganizationId: org.Id,
		UserId:         userId,
		Role:           constant.MemberRoleOwner,
		CreatedAt:      time.Now(),
	}
	if err := uow.OrganizationMemberRepository().Create(ctx, &member); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CreateOrganizationResponse{
		Id: org.Id,
	}, nil
}

func (s *organizationService) Show(ctx context.Context, userId uuid.UUID, orgId uuid.UUID) (*dto.ShowOrganizationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.RequireMembership(ctx, uow, orgId, userId); err != nil {
		return nil, err
	}

	org, err := uow.OrganizationRepository().FindOne(ctx, specification.ByID{ID: orgId})
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, serverutils.ErrNotFound
	}

	return &dto.ShowOrganizationResponse{
		Id:        org.Id,
		Name:      org.Name,
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}, nil
}

func (s *organizationService) ListMembers(ctx context.Context, userId uuid.UUID, orgId uuid.UUID) ([]*dto.OrganizationMemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.RequireMembership(ctx, uow, orgId, userId); err != nil {
		return nil, err
	}

	members, err := uow.OrganizationMemberRepository().FindAll(ctx,
		specification.ByOrganizationID{OrganizationID: orgId},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.OrganizationMemberResponse, 0, len(members))
	for _, m := range members {
		response = append(response, &dto.OrganizationMemberResponse{
			Id:     m.Id,
			UserId: m.UserId,
			Role:   m.Role,
		})
	}
	return response, nil
}

func (s *organizationService) AddMember(ctx context.Context, userId uuid.UUID, req *dto.AddMemberRequest) (*dto.AddMemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	caller, err := s.RequireMembership(ctx, uow, req.OrganizationId, userId)
	if err != nil {
		return nil, err
	}
	if caller.Role != constant.MemberRoleOwner && caller.Role != constant.MemberRoleAdmin {
		return nil, serverutils.ErrForbidden
	}

	existing, err := uow.OrganizationMemberRepository().FindMembership(ctx, req.OrganizationId, req.UserId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.ErrConflict
	}

	member := entity.OrganizationMember{
		Id:             uuid.New(),
		OrganizationId: req.OrganizationId,
		UserId:         req.UserId,
		Role:           req.Role,
		CreatedAt:      time.Now(),
	}
	if err := uow.OrganizationMemberRepository().Create(ctx, &member); err != nil {
		return nil, err
	}

	return &dto.AddMemberResponse{
		Id: member.Id,
	}, nil
}

func (s *organizationService) ResolveContext(ctx context.Context, userId uuid.UUID) (*dto.AuthContextResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	memberships, err := uow.OrganizationMemberRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, serverutils.ErrForbidden
	}

	orgIds := make([]uuid.UUID, 0, len(memberships))
	roleByOrg := make(map[uuid.UUID]string, len(memberships))
	for _, m := range memberships {
		orgIds = append(orgIds, m.OrganizationId)
		roleByOrg[m.OrganizationId] = m.Role
	}

	orgs, err := uow.OrganizationRepository().FindAll(ctx,
		specification.ByIDs{IDs: orgIds},
		specification.NotDeleted{},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AuthOrganizationItem, 0, len(orgs))
	for _, org := range orgs {
		items = append(items, dto.AuthOrganizationItem{
			Id:   org.Id,
			Name: org.Name,
			Role: roleByOrg[org.Id],
		})
	}

	return &dto.AuthContextResponse{
		UserId:        userId,
		Organizations: items,
	}, nil
}

func (s *organizationService) RequireMembership(ctx context.Context, uow unitofwork.UnitOfWork, orgId, userId uuid.UUID) (*entity.OrganizationMember, error) {
	member, err := uow.OrganizationMemberRepository().FindMembership(ctx, orgId, userId)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, serverutils.ErrForbidden
	}
	return member, nil
}
