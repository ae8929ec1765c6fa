package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/pkg/serverutils"
	"ai-estimator-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/organization/v1/:orgId/chat/v1")
	h.Post("", c.CreateConversation)
	h.Get("", c.ListConversations)
	h.Get(":convId", c.ShowConversation)
	h.Delete(":convId", c.DeleteConversation)
	h.Post(":convId/save", c.SaveConversation)
	h.Post(":convId/messages", c.StreamMessage)
}

func (c *chatController) CreateConversation(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	var req dto.CreateConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.OrganizationId = orgId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateConversation(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create conversation", res))
}

func (c *chatController) ListConversations(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}

	res, err := c.chatService.ListConversations(ctx.Context(), userId, orgId, ctx.Query("search"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list conversations", res))
}

func (c *chatController) ShowConversation(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}
	convId, err := paramUUID(ctx, "convId")
	if err != nil {
		return err
	}

	res, err := c.chatService.ShowConversation(ctx.Context(), userId, orgId, convId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show conversation", res))
}

func (c *chatController) DeleteConversation(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}
	convId, err := paramUUID(ctx, "convId")
	if err != nil {
		return err
	}

	if err := c.chatService.DeleteConversation(ctx.Context(), userId, orgId, convId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete conversation", nil))
}

func (c *chatController) SaveConversation(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}
	convId, err := paramUUID(ctx, "convId")
	if err != nil {
		return err
	}

	var req dto.SaveConversationRequest
	// The body is optional; it only carries a rename.
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}
	req.OrganizationId = orgId
	req.ConversationId = convId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SaveConversation(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save conversation", res))
}

// StreamMessage replies over server-sent events: a start frame, content
// chunk frames as the model produces them, then done. Errors after the
// stream opens are reported in-band as an error frame.
func (c *chatController) StreamMessage(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orgId, err := paramUUID(ctx, "orgId")
	if err != nil {
		return err
	}
	convId, err := paramUUID(ctx, "convId")
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.OrganizationId = orgId
	req.ConversationId = convId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	// The stream writer runs after this handler returns, so it cannot use
	// the request context.
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		streamCtx := context.Background()

		writeFrame(w, dto.StreamFrame{Type: "start", ConversationId: convId.String()})

		err := c.chatService.StreamMessage(streamCtx, userId, &req, func(chunk string) error {
			return writeFrame(w, dto.StreamFrame{Type: "chunk", Content: chunk})
		})
		if err != nil {
			writeFrame(w, dto.StreamFrame{Type: "error", Message: err.Error()})
			return
		}

		writeFrame(w, dto.StreamFrame{Type: "done"})
	}))

	return nil
}

func writeFrame(w *bufio.Writer, frame dto.StreamFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return w.Flush()
}
