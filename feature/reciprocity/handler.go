package reciprocity

import (
	"errors"
	"fmt"
	"time"

	"follow-check/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Retry defaults for live refreshes triggered through the web API. They
// mirror the api subcommand's flag defaults.
const (
	defaultRefreshRetries  = 3
	defaultRefreshBaseWait = 45 * time.Second
)

// pastePage is the paste UI: two textareas and a submit button. The tool is
// local-only, so a static page beats a frontend build.
const pastePage = `<!DOCTYPE html>
<html>
<head><title>follow-check</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; }
textarea { width: 100%%; height: 12rem; font-family: monospace; }
label { display: block; margin-top: 1rem; font-weight: bold; }
</style>
</head>
<body>
<h1>follow-check</h1>
<p>Paste one handle per line (or comma separated). Profile URLs and @-prefixes are fine.</p>
<form method="post" action="/check">
  <label>Account label</label>
  <input type="text" name="target" value="%s">
  <label>Followers</label>
  <textarea name="followers" placeholder="alice&#10;bob"></textarea>
  <label>Following</label>
  <textarea name="following" placeholder="bob&#10;carol"></textarea>
  <p><button type="submit">Compare</button></p>
</form>
</body>
</html>`

// Handler handles HTTP requests for the paste UI and JSON API.
type Handler struct {
	service       *Service
	defaultTarget string
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, defaultTarget string) *Handler {
	return &Handler{service: service, defaultTarget: defaultTarget}
}

// RegisterRoutes registers the reciprocity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.HandlePasteForm)
	app.Post("/check", h.HandleCheck)
	app.Post("/api/check", h.HandleCheckJSON)
	app.Post("/api/refresh", h.HandleRefresh)
	app.Get("/api/history", h.HandleHistory)
}

// HandlePasteForm serves the paste form.
func (h *Handler) HandlePasteForm(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(fmt.Sprintf(pastePage, h.defaultTarget))
}

// HandleCheck compares two pasted lists and renders the text report.
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	target := c.FormValue("target")
	if target == "" {
		target = h.defaultTarget
	}

	report := h.service.RunPaste(c.Context(), c.FormValue("followers"), c.FormValue("following"), target)
	l.Info("Paste check completed",
		zap.String("target", target),
		zap.Int("followers", report.Followers),
		zap.Int("following", report.Following),
	)

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(report.Render())
}

// checkRequest is the JSON API request body.
type checkRequest struct {
	Target    string `json:"target"`
	Followers string `json:"followers"`
	Following string `json:"following"`
}

// HandleCheckJSON compares two pasted lists and returns the report as JSON.
func (h *Handler) HandleCheckJSON(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req checkRequest
	if err := c.BodyParser(&req); err != nil {
		l.Warn("Invalid check request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Target == "" {
		req.Target = h.defaultTarget
	}

	report := h.service.RunPaste(c.Context(), req.Followers, req.Following, req.Target)
	return c.JSON(report)
}

// refreshRequest is the live-refresh request body. All fields are optional;
// omitted fields use the defaults.
type refreshRequest struct {
	Target          string `json:"target"`
	Retries         int    `json:"retries"`
	BaseWaitSeconds int    `json:"base_wait_seconds"`
}

// HandleRefresh fetches both lists live and returns the report as JSON,
// falling back to snapshots when the remote is rate limiting.
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	req := refreshRequest{Retries: defaultRefreshRetries}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			l.Warn("Invalid refresh request", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}
	if req.Target == "" {
		req.Target = h.defaultTarget
	}
	baseWait := defaultRefreshBaseWait
	if req.BaseWaitSeconds > 0 {
		baseWait = time.Duration(req.BaseWaitSeconds) * time.Second
	}

	report, err := h.service.RunAPI(c.Context(), req.Target, req.Retries, baseWait)
	if err != nil {
		if errors.Is(err, ErrNoRemote) {
			l.Warn("Refresh requested without a remote source")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		l.Warn("Live refresh failed", zap.String("target", req.Target), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Live refresh completed",
		zap.String("target", req.Target),
		zap.Int("followers", report.Followers),
		zap.Int("following", report.Following),
		zap.Bool("stale", report.Stale),
	)
	return c.JSON(report)
}

// HandleHistory returns recent recorded runs for a target.
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	target := c.Query("target", h.defaultTarget)
	limit := c.QueryInt("limit", 20)

	runs, err := h.service.History(c.Context(), target, limit)
	if err != nil {
		l.Warn("History query failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}
