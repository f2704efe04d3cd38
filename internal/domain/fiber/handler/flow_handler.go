package handler

import (
	"time"

	"github.com/fadilmartias/career-compass/internal/dto"
	"github.com/fadilmartias/career-compass/internal/middleware"
	"github.com/fadilmartias/career-compass/internal/session"
	"github.com/fadilmartias/career-compass/internal/util"
	"github.com/gofiber/fiber/v2"
)

// FlowHandler exposes each generation flow as a stateless JSON endpoint.
type FlowHandler struct {
	advisor session.Advisor
}

func NewFlowHandler(advisor session.Advisor) *FlowHandler {
	return &FlowHandler{advisor: advisor}
}

func (h *FlowHandler) RegisterRoutes(app *fiber.App) {
	flows := app.Group("/api/flows", middleware.RateLimiter(20, time.Minute))
	flows.Post("/analyze-compatibility", h.AnalyzeCompatibility)
	flows.Post("/suggest-skills", h.SuggestSkills)
	flows.Post("/recommend-certifications", h.RecommendCertifications)
	flows.Post("/build-resume", h.BuildResume)
}

func (h *FlowHandler) AnalyzeCompatibility(c *fiber.Ctx) error {
	var body dto.AnalyzeCompatibilityRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err)
	}
	req, err := body.Validated()
	if err != nil {
		return handleError(c, "failed to analyze compatibility", err)
	}
	res, err := h.advisor.AnalyzeCompatibility(c.UserContext(), req)
	if err != nil {
		return handleError(c, "failed to analyze compatibility", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success analyze compatibility",
		Data:    res,
	})
}

func (h *FlowHandler) SuggestSkills(c *fiber.Ctx) error {
	var body dto.SuggestSkillsRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err)
	}
	req, err := body.Validated()
	if err != nil {
		return handleError(c, "failed to suggest skills", err)
	}
	res, err := h.advisor.SuggestSkills(c.UserContext(), req)
	if err != nil {
		return handleError(c, "failed to suggest skills", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success suggest skills",
		Data:    res,
	})
}

func (h *FlowHandler) RecommendCertifications(c *fiber.Ctx) error {
	var body dto.RecommendCertificationsRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err)
	}
	req, err := body.Validated()
	if err != nil {
		return handleError(c, "failed to recommend certifications", err)
	}
	res, err := h.advisor.RecommendCertifications(c.UserContext(), req)
	if err != nil {
		return handleError(c, "failed to recommend certifications", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success recommend certifications",
		Data:    res,
	})
}

func (h *FlowHandler) BuildResume(c *fiber.Ctx) error {
	var body dto.BuildResumeRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err)
	}
	req, err := body.Validated()
	if err != nil {
		return handleError(c, "failed to build resume", err)
	}
	res, err := h.advisor.BuildResume(c.UserContext(), req)
	if err != nil {
		return handleError(c, "failed to build resume", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success build resume",
		Data:    res,
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusBadRequest,
		Message: "invalid request body",
	}, err)
}
