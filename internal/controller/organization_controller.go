package controller

import (
	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/pkg/serverutils"
	"ai-estimator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOrganizationController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ListMembers(ctx *fiber.Ctx) error
	AddMember(ctx *fiber.Ctx) error
}

type organizationController struct {
	organizationService service.IOrganizationService
}

func NewOrganizationController(organizationService service.IOrganizationService) IOrganizationController {
	return &organizationController{
		organizationService: organizationService,
	}
}

func (c *organizationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/organization/v1")
	h.Post("", c.Create)
	h.Get(":orgId", c.Show)
	h.Get(":orgId/members", c.ListMembers)
	h.Post(":orgId/members", c.AddMember)
}

func (c *organizationController) Create(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	var req dto.CreateOrganizationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.organizationService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create organization", res))
}

func (c *organizationController) Show(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	res, err := c.organizationService.Show(ctx.Context(), userId, orgId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show organization", res))
}

func (c *organizationController) ListMembers(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	res, err := c.organizationService.ListMembers(ctx.Context(), userId, orgId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list members", res))
}

func (c *organizationController) AddMember(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	var req dto.AddMemberRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.OrganizationId = orgId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.organizationService.AddMember(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add member", res))
}
