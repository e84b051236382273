package handler

import (
	"net/http"
	"path/filepath"

	"faer/config"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the static marketing and dashboard pages that sit
// next to the JSON API.
type PageHandler struct {
	dir     string
	enabled bool
}

// NewPageHandler is the constructor for PageHandler, injected by Fx.
func NewPageHandler(cfg *config.Config) *PageHandler {
	return &PageHandler{
		dir:     cfg.Pages.Dir,
		enabled: cfg.Pages.Enabled && cfg.Pages.Dir != "",
	}
}

// Enabled reports whether page routes should be registered at all.
func (h *PageHandler) Enabled() bool {
	return h.enabled
}

// Serve returns a handler rendering the named HTML view.
func (h *PageHandler) Serve(name string) echo.HandlerFunc {
	page := filepath.Join(h.dir, name)

	return func(c echo.Context) error {
		return c.File(page)
	}
}

// ServeDirect resolves direct *.html requests against the views
// directory. Anything else falls through to a 404.
func (h *PageHandler) ServeDirect(param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param(param)
		if filepath.Ext(name) != ".html" || name != filepath.Base(name) {
			return echo.ErrNotFound
		}

		return c.File(filepath.Join(h.dir, name))
	}
}

// RegisterStatic mounts the asset directory shipped with the views.
func (h *PageHandler) RegisterStatic(e *echo.Echo) {
	e.Static("/assets", filepath.Join(h.dir, "assets"))
}

// HealthCheck reports service liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
