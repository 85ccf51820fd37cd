package controller

import (
	"fmt"

	"ai-usecase-explorer-be/internal/dto"
	"ai-usecase-explorer-be/internal/pkg/serverutils"
	"ai-usecase-explorer-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDataGenController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
	GetInputs(ctx *fiber.Ctx) error
	SaveInputs(ctx *fiber.Ctx) error
}

type dataGenController struct {
	dataGenService service.IDataGenService
}

func NewDataGenController(dataGenService service.IDataGenService) IDataGenController {
	return &dataGenController{
		dataGenService: dataGenService,
	}
}

func (c *dataGenController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/datagen/v1")
	h.Post("generate", c.Generate)
	h.Get("download", c.Download)
	h.Get("inputs", c.GetInputs)
	h.Put("inputs", c.SaveInputs)
}

func (c *dataGenController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateDataRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dataGenService.Generate(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate dataset", res))
}

func (c *dataGenController) Download(ctx *fiber.Ctx) error {
	filename, rawText, err := c.dataGenService.LastResult(ctx.Context())
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/csv")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return ctx.SendString(rawText)
}

func (c *dataGenController) GetInputs(ctx *fiber.Ctx) error {
	res, err := c.dataGenService.LoadInputs(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success load generator inputs", res))
}

func (c *dataGenController) SaveInputs(ctx *fiber.Ctx) error {
	var req dto.GeneratorInputsDTO
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.dataGenService.SaveInputs(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success save generator inputs", nil))
}
