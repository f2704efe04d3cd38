package handler

import (
	"context"

	"github.com/fadilmartias/career-compass/internal/dto"
	"github.com/fadilmartias/career-compass/internal/model"
	"github.com/fadilmartias/career-compass/internal/response"
	"github.com/fadilmartias/career-compass/internal/util"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// maxPage keeps (page-1)*pageSize well inside int range.
	maxPage = 1 << 20
)

type RunLister interface {
	ListRuns(ctx context.Context, page, pageSize int) ([]model.FlowRun, int64, error)
}

type RunHandler struct {
	runs RunLister
}

func NewRunHandler(runs RunLister) *RunHandler {
	return &RunHandler{runs: runs}
}

func (h *RunHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/runs", h.List)
}

func (h *RunHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	pageSize := c.QueryInt("page_size", defaultPageSize)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	runs, total, err := h.runs.ListRuns(c.UserContext(), page, pageSize)
	if err != nil {
		return handleError(c, "failed to list runs", err)
	}
	data := make([]dto.FlowRunDTO, 0, len(runs))
	for _, run := range runs {
		data = append(data, dto.NewFlowRunDTO(run))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list runs",
		Data:       data,
		Pagination: response.NewPagination(page, pageSize, total, len(data)),
	})
}
