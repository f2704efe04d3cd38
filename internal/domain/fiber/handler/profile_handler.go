package handler

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/career-compass/internal/dto"
	"github.com/fadilmartias/career-compass/internal/middleware"
	"github.com/fadilmartias/career-compass/internal/util"
	"github.com/gofiber/fiber/v2"
)

const maxProfileSize = 5 * 1024 * 1024

// TextExtractor returns the text content of a PDF.
type TextExtractor func(data []byte) (string, error)

// ProfileHandler turns an uploaded PDF resume into text for the current role
// field.
type ProfileHandler struct {
	extract TextExtractor
}

func NewProfileHandler(extract TextExtractor) *ProfileHandler {
	return &ProfileHandler{extract: extract}
}

func (h *ProfileHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/profile/extract", middleware.RateLimiter(10, time.Minute), h.Extract)
}

func (h *ProfileHandler) Extract(c *fiber.Ctx) error {
	name, text, err := h.readProfile(c, "file")
	if err != nil {
		return handleError(c, "failed to extract profile text", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success extract profile text",
		Data:    dto.ProfileDTO{Filename: name, Text: text},
	})
}

// readProfile extracts the text of the PDF uploaded under fieldName. Client
// mistakes come back as *fiber.Error.
func (h *ProfileHandler) readProfile(c *fiber.Ctx, fieldName string) (string, string, error) {
	file, err := c.FormFile(fieldName)
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s file is required", fieldName))
	}
	if file.Size > maxProfileSize {
		return "", "", fiber.NewError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("%s file size is too large (max 5MB)", fieldName))
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".pdf" {
		return "", "", fiber.NewError(fiber.StatusUnsupportedMediaType, fmt.Sprintf("unsupported %s file type", fieldName))
	}

	f, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("cannot open %s file: %w", fieldName, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", "", fmt.Errorf("cannot read %s file: %w", fieldName, err)
	}

	text, err := h.extract(data)
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusUnprocessableEntity, fmt.Sprintf("failed to extract %s text: %v", fieldName, err))
	}
	return file.Filename, text, nil
}
