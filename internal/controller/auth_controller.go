package controller

import (
	"ai-estimator-be/internal/pkg/serverutils"
	"ai-estimator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
}

type authController struct {
	organizationService service.IOrganizationService
}

func NewAuthController(organizationService service.IOrganizationService) IAuthController {
	return &authController{
		organizationService: organizationService,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1")
	h.Post("context", c.Context)
}

// Context resolves the bearer token into the user's tenant memberships.
// The JWT middleware already rejected invalid tokens with 401; a valid
// token with no memberships comes back 403.
func (c *authController) Context(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	res, err := c.organizationService.ResolveContext(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success resolve context", res))
}
