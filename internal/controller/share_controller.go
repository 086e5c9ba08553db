package controller

import (
	"quiltdex-be/internal/dto"
	"quiltdex-be/internal/pkg/serverutils"
	"quiltdex-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IShareController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	SubmitFeedback(ctx *fiber.Ctx) error
}

type shareController struct {
	shareService service.IShareService
}

func NewShareController(shareService service.IShareService) IShareController {
	return &shareController{
		shareService: shareService,
	}
}

func (c *shareController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/share/v1")
	h.Post("", serverutils.JwtMiddleware, c.Create)
	// Resolving a link and leaving feedback need no login.
	h.Get(":token", c.Show)
	h.Post(":token/feedback", c.SubmitFeedback)
}

func (c *shareController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateShareRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ValidationError("Invalid JSON body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.shareService.CreateShare(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create share link", res))
}

func (c *shareController) Show(ctx *fiber.Ctx) error {
	token := ctx.Params("token")

	res, err := c.shareService.ResolveShare(ctx.Context(), token)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show shared pattern", res))
}

func (c *shareController) SubmitFeedback(ctx *fiber.Ctx) error {
	token := ctx.Params("token")

	var req dto.SubmitFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ValidationError("Invalid JSON body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.shareService.SubmitFeedback(ctx.Context(), token, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit feedback", res))
}
