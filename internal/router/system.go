package router

import (
	"github.com/deppfellow/blog-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not blog content:
// health, docs UI and the static OpenAPI document.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status/", h.Health.CheckHealth)
	r.GET("/docs/", h.OpenAPI.ServeOpenAPIUI)
	r.Static("/static", "static")
}
