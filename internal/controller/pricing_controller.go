package controller

import (
	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/pkg/serverutils"
	"ai-estimator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPricingController interface {
	RegisterRoutes(r fiber.Router)
}

type pricingController struct {
	pricingService service.IPricingService
}

func NewPricingController(pricingService service.IPricingService) IPricingController {
	return &pricingController{
		pricingService: pricingService,
	}
}

func (c *pricingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/organization/v1/:orgId/pricing/v1")
	h.Post("similar-projects", c.SimilarProjects)
	h.Get("category-averages", c.CategoryAverages)
}

func (c *pricingController) SimilarProjects(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	var req dto.SimilarProjectsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.OrganizationId = orgId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.pricingService.FindSimilarProjects(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success find similar projects", res))
}

func (c *pricingController) CategoryAverages(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	req := dto.CategoryAveragesRequest{
		OrganizationId: orgId,
		Category:       ctx.Query("category"),
		ProjectType:    ctx.Query("project_type"),
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.pricingService.CategoryAverages(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success compute category averages", res))
}
