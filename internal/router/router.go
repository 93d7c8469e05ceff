// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/conference-program/internal/config"
	"github.com/iliyamo/conference-program/internal/handler"
	"github.com/iliyamo/conference-program/internal/middleware"
	"github.com/iliyamo/conference-program/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check for load balancers and
// monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterProgram registers the program builder endpoints under
// /v1/program.  Every route sits behind the JWT middleware and the
// admin/editor role gate; the dashboard and conflict reads are
// additionally cached and all routes rate limited when a redis client
// is available.
func RegisterProgram(e *echo.Echo, h *handler.ProgramHandler, jwtSecret string, rdb *redis.Client) {
	g := e.Group("/v1/program")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleEditor))
	g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// Read side.  The dashboard aggregates several queries, so GET
	// responses are cached briefly in redis.
	cached := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	g.GET("/conferences/:id/dashboard", h.Dashboard, cached)
	g.GET("/conferences/:id/conflicts", h.ConflictReport, cached)

	// Session assembly.
	g.POST("/sessions", h.CreateSession)
	g.PUT("/sessions/:id", h.UpdateSession)
	g.DELETE("/sessions/:id", h.DeleteSession)

	// Grouping suggestions.
	g.POST("/suggestions", h.Suggestions)
}
