package mapper

import (
	"time"

	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/model"

	"gorm.io/gorm"
)

type OrganizationMapper struct{}

func NewOrganizationMapper() *OrganizationMapper {
	return &OrganizationMapper{}
}

func (m *OrganizationMapper) ToEntity(o *model.Organization) *entity.Organization {
	if o == nil {
		return nil
	}

	var deletedAt *time.Time
	if o.DeletedAt.Valid {
		t := o.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !o.UpdatedAt.IsZero() {
		t := o.UpdatedAt
		updatedAt = &t
	}

	return &entity.Organization{
		Id:        o.Id,
		Name:      o.Name,
		CreatedBy: o.CreatedBy,
		CreatedAt: o.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: o.DeletedAt.Valid,
	}
}

func (m *OrganizationMapper) ToModel(o *entity.Organization) *model.Organization {
	if o == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if o.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *o.DeletedAt, Valid: true}
	} else if o.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if o.UpdatedAt != nil {
		updatedAt = *o.UpdatedAt
	}

	return &model.Organization{
		Id:        o.Id,
		Name:      o.Name,
		CreatedBy: o.CreatedBy,
		CreatedAt: o.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *OrganizationMapper) ToEntities(orgs []*model.Organization) []*entity.Organization {
	entities := make([]*entity.Organization, len(orgs))
	for i, o := range orgs {
		entities[i] = m.ToEntity(o)
	}
	return entities
}

type OrganizationMemberMapper struct{}

func NewOrganizationMemberMapper() *OrganizationMemberMapper {
	return &OrganizationMemberMapper{}
}

func (m *OrganizationMemberMapper) ToEntity(o *model.OrganizationMember) *entity.OrganizationMember {
	if o == nil {
		return nil
	}
	return &entity.OrganizationMember{
		Id:             o.Id,
		OrganizationId: o.OrganizationId,
		UserId:         o.UserId,
		Role:           o.Role,
		CreatedAt:      o.CreatedAt,
	}
}

func (m *OrganizationMemberMapper) ToModel(o *entity.OrganizationMember) *model.OrganizationMember {
	if o == nil {
		return nil
	}
	return &model.OrganizationMember{
		Id:             o.Id,
		OrganizationId: o.OrganizationId,
		UserId:         o.UserId,
		Role:           o.Role,
		CreatedAt:      o.CreatedAt,
	}
}

func (m *OrganizationMemberMapper) ToEntities(members []*model.OrganizationMember) []*entity.OrganizationMember {
	entities := make([]*entity.OrganizationMember, len(members))
	for i, o := range members {
		entities[i] = m.ToEntity(o)
	}
	return entities
}
