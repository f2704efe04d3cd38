package handler

import (
	"github.com/fadilmartias/career-compass/internal/service"
	"github.com/fadilmartias/career-compass/internal/util"
	"github.com/gofiber/fiber/v2"
)

type GeneratorHandler struct {
	backend service.Backend
}

func NewGeneratorHandler(backend service.Backend) *GeneratorHandler {
	return &GeneratorHandler{backend: backend}
}

func (h *GeneratorHandler) RegisterRoutes(app *fiber.App) {
	gen := app.Group("/api/generator")
	gen.Get("/status", h.Status)
	gen.Post("/reset", h.Reset)
	gen.Post("/ping", h.Ping)
}

func (h *GeneratorHandler) Status(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get generator status",
		Data:    h.backend.Status(),
	})
}

func (h *GeneratorHandler) Reset(c *fiber.Ctx) error {
	h.backend.ResetCircuitBreaker()
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success reset circuit breaker",
		Data:    h.backend.Status(),
	})
}

func (h *GeneratorHandler) Ping(c *fiber.Ctx) error {
	reply, err := service.Ping(c.UserContext(), h.backend)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: "failed to ping generator",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success ping generator",
		Data:    fiber.Map{"reply": reply, "status": h.backend.Status()},
	})
}
