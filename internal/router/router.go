package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/agora/backend/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Event   *apiHandler.EventHandler
	Profile *apiHandler.ProfileHandler
	Admin   *apiHandler.AdminHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Protected routes
	r.GET("/api/v1/events", authMiddleware(handlers.Event.List))
	r.POST("/api/v1/events", authMiddleware(handlers.Event.Create))
	r.GET("/api/v1/events/promoted", authMiddleware(handlers.Event.Promoted))
	r.GET("/api/v1/events/{id}/photos", authMiddleware(handlers.Event.Photos))

	r.GET("/api/v1/cities", authMiddleware(handlers.Event.Cities))
	r.GET("/api/v1/types", authMiddleware(handlers.Event.Types))

	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.Get))
	r.GET("/api/v1/profile/events", authMiddleware(handlers.Profile.Events))
	r.PUT("/api/v1/profile/cities", authMiddleware(handlers.Profile.UpdateCities))
	r.POST("/api/v1/profile/events/{id}/highlight", authMiddleware(handlers.Profile.Highlight))

	r.GET("/api/v1/admin/rollups", authMiddleware(handlers.Admin.Rollups))

	return r
}
