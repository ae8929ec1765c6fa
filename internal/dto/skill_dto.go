package dto

import "github.com/google/uuid"

type ExecuteSkillRequest struct {
	OrganizationId uuid.UUID
	SkillName      string            `json:"-"`
	Input          string            `json:"input" validate:"required"`
	Context        map[string]string `json:"context"`
}

type ExecuteSkillResponse struct {
	SkillName string `json:"skill_name"`
	Output    string `json:"output"`
}

type SkillInfoResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
