package handler

import (
	"encoding/json"
	"time"

	"github.com/fadilmartias/career-compass/internal/dto"
	"github.com/fadilmartias/career-compass/internal/middleware"
	"github.com/fadilmartias/career-compass/internal/session"
	"github.com/fadilmartias/career-compass/internal/util"
	"github.com/gofiber/fiber/v2"
)

const resumeFilename = "ats_resume.txt"

// SessionHandler is the JSON API over advisory sessions. Dispatching
// endpoints answer 202 and the result is read back from the session view.
type SessionHandler struct {
	store *session.Store
}

func NewSessionHandler(store *session.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

func (h *SessionHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/sessions")
	api.Post("/", h.Create)
	api.Get("/:id", h.Get)
	api.Patch("/:id/form", h.UpdateForm)

	dispatch := middleware.RateLimiter(20, time.Minute)
	api.Post("/:id/analysis", dispatch, h.Analyze)
	api.Post("/:id/recommendations", dispatch, h.Recommend)
	api.Post("/:id/resume", dispatch, h.BuildResume)
	api.Get("/:id/resume.txt", h.DownloadResume)
}

func (h *SessionHandler) Create(c *fiber.Ctx) error {
	s := h.store.Create()
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create session",
		Data:    dto.SessionCreatedDTO{ID: s.ID.String()},
	})
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	s, err := h.store.Get(c.Params("id"))
	if err != nil {
		return handleError(c, "failed to get session", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get session",
		Data:    s.Snapshot(),
	})
}

func (h *SessionHandler) UpdateForm(c *fiber.Ctx) error {
	s, patch, err := h.sessionAndPatch(c)
	if err != nil {
		return handleError(c, "failed to update form", err)
	}
	s.Update(patch)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update form",
		Data:    s.Snapshot(),
	})
}

func (h *SessionHandler) Analyze(c *fiber.Ctx) error {
	return h.dispatch(c, "analysis", (*session.Session).Analyze)
}

func (h *SessionHandler) Recommend(c *fiber.Ctx) error {
	return h.dispatch(c, "recommendations", (*session.Session).SuggestAndRecommend)
}

func (h *SessionHandler) BuildResume(c *fiber.Ctx) error {
	return h.dispatch(c, "resume build", (*session.Session).BuildResume)
}

func (h *SessionHandler) DownloadResume(c *fiber.Ctx) error {
	s, err := h.store.Get(c.Params("id"))
	if err != nil {
		return handleError(c, "failed to download resume", err)
	}
	return sendResume(c, s)
}

func (h *SessionHandler) dispatch(c *fiber.Ctx, what string, op func(*session.Session, session.FormPatch) error) error {
	s, patch, err := h.sessionAndPatch(c)
	if err != nil {
		return handleError(c, "failed to start "+what, err)
	}
	if err := op(s, patch); err != nil {
		return handleError(c, "failed to start "+what, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: "Success start " + what,
		Data:    s.Snapshot(),
	})
}

// sessionAndPatch resolves the session and decodes an optional JSON form
// patch from the body.
func (h *SessionHandler) sessionAndPatch(c *fiber.Ctx) (*session.Session, session.FormPatch, error) {
	var patch session.FormPatch
	s, err := h.store.Get(c.Params("id"))
	if err != nil {
		return nil, patch, err
	}
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &patch); err != nil {
			return nil, patch, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}
	return s, patch, nil
}

func sendResume(c *fiber.Ctx, s *session.Session) error {
	text, ok := s.ResumeText()
	if !ok {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "no resume has been generated yet",
		})
	}
	c.Attachment(resumeFilename)
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(text)
}
