package service

import (
	"context"

	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/pkg/serverutils"
	"ai-estimator-be/internal/repository/unitofwork"
	"ai-estimator-be/pkg/skills"

	"github.com/google/uuid"
)

type ISkillService interface {
	List(ctx context.Context) []*dto.SkillInfoResponse
	Execute(ctx context.Context, userId uuid.UUID, req *dto.ExecuteSkillRequest) (*dto.ExecuteSkillResponse, error)
}

type skillService struct {
	uowFactory          unitofwork.RepositoryFactory
	organizationService IOrganizationService
	registry            *skills.Registry
}

func NewSkillService(
	uowFactory unitofwork.RepositoryFactory,
	organizationService IOrganizationService,
	registry *skills.Registry,
) ISkillService {
	return &skillService{
		uowFactory:          uowFactory,
		organizationService: organizationService,
		registry:            registry,
	}
}

func (s *skillService) List(ctx context.Context) []*dto.SkillInfoResponse {
	infos := s.registry.List()
	response := make([]*dto.SkillInfoResponse, 0, len(infos))
	for _, info := range infos {
		response = append(response, &dto.SkillInfoResponse{
			Name:        info.Name,
			Description: info.Description,
		})
	}
	return response
}

func (s *skillService) Execute(ctx context.Context, userId uuid.UUID, req *dto.ExecuteSkillRequest) (*dto.ExecuteSkillResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.organizationService.RequireMembership(ctx, uow, req.OrganizationId, userId); err != nil {
		return nil, err
	}

	skill, err := s.registry.Get(req.SkillName)
	if err != nil {
		return nil, serverutils.ErrNotFound
	}

	output, err := skill.Execute(ctx, req.Input, req.Context)
	if err != nil {
		return nil, err
	}

	return &dto.ExecuteSkillResponse{
		SkillName: skill.Name(),
		Output:    output,
	}, nil
}
