package handler

import (
	"errors"

	"github.com/fadilmartias/career-compass/internal/flow"
	"github.com/fadilmartias/career-compass/internal/session"
	"github.com/fadilmartias/career-compass/internal/usecase"
	"github.com/fadilmartias/career-compass/internal/util"
	"github.com/gofiber/fiber/v2"
)

// handleError maps domain errors onto the error envelope.
func handleError(c *fiber.Ctx, fallback string, err error) error {
	var missing *session.MissingInputError
	var genErr *flow.GenerationError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &missing):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: missing.Message,
			Details: fiber.Map{"title": missing.Title, "fields": missing.Fields},
		})
	case errors.Is(err, session.ErrSessionNotFound):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "session not found",
		})
	case errors.Is(err, usecase.ErrRunLogDisabled):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusServiceUnavailable,
			Message: err.Error(),
		})
	case errors.As(err, &genErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: genErr.Error(),
			Details: schemaDetails(genErr),
		}, err)
	case errors.As(err, &fiberErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiberErr.Code,
			Message: fiberErr.Message,
		})
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: fallback}, err)
	}
}

func schemaDetails(err *flow.GenerationError) any {
	var schemaErr *flow.SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr.Errors
	}
	return nil
}
