package controller

import (
	"fmt"

	"ai-usecase-explorer-be/internal/dto"
	"ai-usecase-explorer-be/internal/pkg/serverutils"
	"ai-usecase-explorer-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IExplorerController interface {
	RegisterRoutes(r fiber.Router)
	Catalog(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
	Back(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
	Import(ctx *fiber.Ctx) error
	OpenUseCase(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
}

type explorerController struct {
	explorerService service.IExplorerService
}

func NewExplorerController(explorerService service.IExplorerService) IExplorerController {
	return &explorerController{
		explorerService: explorerService,
	}
}

func (c *explorerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/explorer/v1")
	h.Get("catalog", c.Catalog)
	h.Post("resolve", c.Resolve)
	h.Post("back", c.Back)
	h.Get("export", c.Export)
	h.Post("import", c.Import)
	h.Post("use-case/open", c.OpenUseCase)
	h.Post("use-case/chat", c.Chat)
}

func (c *explorerController) Catalog(ctx *fiber.Ctx) error {
	res := c.explorerService.Catalog(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success list catalog", res))
}

func (c *explorerController) Resolve(ctx *fiber.Ctx) error {
	var req dto.ResolveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.explorerService.Resolve(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success resolve value chain", res))
}

func (c *explorerController) Back(ctx *fiber.Ctx) error {
	if err := c.explorerService.Back(ctx.Context()); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success reset state", nil))
}

func (c *explorerController) Export(ctx *fiber.Ctx) error {
	filename, blob, err := c.explorerService.Export(ctx.Context())
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return ctx.Send(blob)
}

func (c *explorerController) Import(ctx *fiber.Ctx) error {
	res, err := c.explorerService.Import(ctx.Context(), ctx.Body())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success import configuration", res))
}

func (c *explorerController) OpenUseCase(ctx *fiber.Ctx) error {
	var req dto.OpenUseCaseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.explorerService.OpenUseCase(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success open use case", res))
}

func (c *explorerController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.explorerService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}
