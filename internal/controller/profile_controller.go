package controller

import (
	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/pkg/serverutils"
	"ai-estimator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
}

type profileController struct {
	profileService service.IProfileService
}

func NewProfileController(profileService service.IProfileService) IProfileController {
	return &profileController{
		profileService: profileService,
	}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/organization/v1/:orgId")
	h.Put("company-profile", c.UpsertCompanyProfile)
	h.Get("company-profile", c.ShowCompanyProfile)
	h.Put("pricing-profile", c.UpsertPricingProfile)
	h.Get("pricing-profile", c.ShowPricingProfile)
	h.Post("labor-items", c.CreateLaborItem)
	h.Get("labor-items", c.ListLaborItems)
	h.Put("labor-items/:itemId", c.UpdateLaborItem)
	h.Delete("labor-items/:itemId", c.DeleteLaborItem)
}

func (c *profileController) UpsertCompanyProfile(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	var req dto.UpsertCompanyProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.OrganizationId = orgId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.profileService.UpsertCompanyProfile(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save company profile", res))
}

func (c *profileController) ShowCompanyProfile(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	res, err := c.profileService.ShowCompanyProfile(ctx.Context(), userId, orgId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show company profile", res))
}

func (c *profileController) UpsertPricingProfile(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	var req dto.UpsertPricingProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.OrganizationId = orgId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.profileService.UpsertPricingProfile(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save pricing profile", res))
}

func (c *profileController) ShowPricingProfile(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	res, err := c.profileService.ShowPricingProfile(ctx.Context(), userId, orgId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show pricing profile", res))
}

func (c *profileController) CreateLaborItem(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	var req dto.CreateLaborItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.OrganizationId = orgId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.profileService.CreateLaborItem(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create labor item", res))
}

func (c *profileController) ListLaborItems(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	res, err := c.profileService.ListLaborItems(ctx.Context(), userId, orgId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list labor items", res))
}

func (c *profileController) UpdateLaborItem(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}
	itemId, err := paramUUID(ctx, "itemId")
	if err != nil {
		return err
	}

	var req dto.UpdateLaborItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = itemId
	req.OrganizationId = orgId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.profileService.UpdateLaborItem(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update labor item", res))
}

func (c *profileController) DeleteLaborItem(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}
	itemId, err := paramUUID(ctx, "itemId")
	if err != nil {
		return err
	}

	if err := c.profileService.DeleteLaborItem(ctx.Context(), userId, orgId, itemId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete labor item", nil))
}
