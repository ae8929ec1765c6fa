package controller

import (
	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/pkg/serverutils"
	"ai-estimator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISkillController interface {
	RegisterRoutes(r fiber.Router)
}

type skillController struct {
	skillService service.ISkillService
}

func NewSkillController(skillService service.ISkillService) ISkillController {
	return &skillController{
		skillService: skillService,
	}
}

func (c *skillController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/organization/v1/:orgId/skill/v1")
	h.Get("", c.List)
	h.Post(":name", c.Execute)
}

func (c *skillController) List(ctx *fiber.Ctx) error {
	res := c.skillService.List(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success list skills", res))
}

func (c *skillController) Execute(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	var req dto.ExecuteSkillRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.OrganizationId = orgId
	req.SkillName = ctx.Params("name")
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.skillService.Execute(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success execute skill", res))
}
