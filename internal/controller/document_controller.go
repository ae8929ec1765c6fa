package controller

import (
	"io"

	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/pkg/serverutils"
	"ai-estimator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/organization/v1/:orgId/document/v1")
	h.Post("", c.Upload)
	h.Post("upload-url", c.RegisterUpload)
	h.Post(":docId/confirm", c.ConfirmUpload)
	h.Get("", c.List)
	h.Get(":docId", c.Show)
	h.Get(":docId/status", c.Status)
	h.Post(":docId/reprocess", c.Reprocess)
	h.Delete(":docId", c.Delete)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	req := dto.UploadDocumentRequest{
		OrganizationId: orgId,
		FileName:       fileHeader.Filename,
		MimeType:       fileHeader.Header.Get("Content-Type"),
		DocumentType:   ctx.FormValue("document_type", "other"),
		Content:        content,
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Upload(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Document queued for processing", res))
}

func (c *documentController) RegisterUpload(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	var req dto.RegisterDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.OrganizationId = orgId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.RegisterUpload(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create upload URL", res))
}

func (c *documentController) ConfirmUpload(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}
	docId, err := paramUUID(ctx, "docId")
	if err != nil {
		return err
	}

	res, err := c.documentService.ConfirmUpload(ctx.Context(), userId, orgId, docId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Document queued for processing", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	req := dto.ListDocumentsRequest{
		OrganizationId: orgId,
		DocumentType:   ctx.Query("document_type"),
		Status:         ctx.Query("status"),
		Limit:          ctx.QueryInt("limit", 50),
		Offset:         ctx.QueryInt("offset", 0),
	}

	res, err := c.documentService.List(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}
	docId, err := paramUUID(ctx, "docId")
	if err != nil {
		return err
	}

	res, err := c.documentService.Show(ctx.Context(), userId, orgId, docId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show document", res))
}

func (c *documentController) Status(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}
	docId, err := paramUUID(ctx, "docId")
	if err != nil {
		return err
	}

	res, err := c.documentService.Status(ctx.Context(), userId, orgId, docId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show document status", res))
}

func (c *documentController) Reprocess(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}
	docId, err := paramUUID(ctx, "docId")
	if err != nil {
		return err
	}

	res, err := c.documentService.Reprocess(ctx.Context(), userId, orgId, docId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Document queued for reprocessing", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}
	docId, err := paramUUID(ctx, "docId")
	if err != nil {
		return err
	}

	if err := c.documentService.Delete(ctx.Context(), userId, orgId, docId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}
