package handler

import (
	"errors"
	"time"

	"github.com/fadilmartias/career-compass/internal/config"
	"github.com/fadilmartias/career-compass/internal/middleware"
	"github.com/fadilmartias/career-compass/internal/render"
	"github.com/fadilmartias/career-compass/internal/session"
	"github.com/gofiber/fiber/v2"
)

var tabs = map[string]bool{"analysis": true, "recommendations": true, "resume": true}

type PageData struct {
	AppName string
	Tab     string
	View    session.View
}

// PageHandler serves the server-rendered three-tab page. The visitor's
// session is tracked with a cookie and every form posts back and redirects.
type PageHandler struct {
	store   *session.Store
	profile *ProfileHandler
	app     *config.AppConfig
	cookie  *config.SessionConfig
}

func NewPageHandler(store *session.Store, profile *ProfileHandler, app *config.AppConfig, cookie *config.SessionConfig) *PageHandler {
	return &PageHandler{store: store, profile: profile, app: app, cookie: cookie}
}

func (h *PageHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.Index)

	form := app.Group("/session")
	dispatch := middleware.RateLimiter(20, time.Minute)
	form.Post("/analysis", dispatch, h.action("analysis", (*session.Session).Analyze))
	form.Post("/recommendations", dispatch, h.action("recommendations", (*session.Session).SuggestAndRecommend))
	form.Post("/resume", dispatch, h.action("resume", (*session.Session).BuildResume))
	form.Post("/profile", middleware.RateLimiter(10, time.Minute), h.Profile)
	form.Get("/resume.txt", h.DownloadResume)
}

func (h *PageHandler) Index(c *fiber.Ctx) error {
	s := h.session(c)
	tab := c.Query("tab", "analysis")
	if !tabs[tab] {
		tab = "analysis"
	}
	c.Type("html", "utf-8")
	return render.Page(c, PageData{AppName: h.app.Name, Tab: tab, View: s.Snapshot()})
}

func (h *PageHandler) action(tab string, op func(*session.Session, session.FormPatch) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := h.session(c)
		// Missing input is already queued as a notification on the session.
		var missing *session.MissingInputError
		if err := op(s, formPatch(c)); err != nil && !errors.As(err, &missing) {
			return err
		}
		return c.Redirect("/?tab="+tab, fiber.StatusSeeOther)
	}
}

func (h *PageHandler) Profile(c *fiber.Ctx) error {
	s := h.session(c)
	_, text, err := h.profile.readProfile(c, "file")
	if err != nil {
		s.Notify(session.VariantDestructive, "Import Failed", err.Error())
	} else {
		s.Update(session.FormPatch{CurrentUserDescription: &text})
		s.Notify(session.VariantDefault, "Profile Imported", "Your current role was filled in from the uploaded PDF.")
	}
	return c.Redirect("/?tab=analysis", fiber.StatusSeeOther)
}

func (h *PageHandler) DownloadResume(c *fiber.Ctx) error {
	return sendResume(c, h.session(c))
}

// session returns the visitor's session, starting a new one when the cookie
// is missing or has expired.
func (h *PageHandler) session(c *fiber.Ctx) *session.Session {
	s, created := h.store.GetOrCreate(c.Cookies(h.cookie.CookieName))
	if created {
		c.Cookie(&fiber.Cookie{
			Name:     h.cookie.CookieName,
			Value:    s.ID.String(),
			Path:     "/",
			HTTPOnly: true,
			Secure:   h.app.IsProduction(),
			SameSite: fiber.CookieSameSiteLaxMode,
			Expires:  time.Now().Add(h.cookie.TTL),
		})
	}
	return s
}

// formPatch reads the posted fields; fields absent from the form are left
// untouched.
func formPatch(c *fiber.Ctx) session.FormPatch {
	args := c.Request().PostArgs()
	field := func(name string) *string {
		if !args.Has(name) {
			return nil
		}
		v := string(args.Peek(name))
		return &v
	}
	return session.FormPatch{
		CurrentUserDescription: field("currentUserDescription"),
		TargetJobDescription:   field("targetJobDescription"),
		JobMarketTrends:        field("jobMarketTrends"),
		ResumeJobDescription:   field("resumeJobDescription"),
		ResumeSkills:           field("resumeSkills"),
		ResumeQualifications:   field("resumeQualifications"),
	}
}
