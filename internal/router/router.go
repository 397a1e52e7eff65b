package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/handler"
)

// RegisterRoutes registers routes that carry no middleware at all.
// Currently that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register, login and
// logout are reachable without a session: they are the routes that create or
// destroy one.  /v1/me sits behind the authorization gate.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, gate echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)

	p := e.Group("/v1", gate)
	p.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated portfolio endpoints.  The
// cache middleware may be nil when Redis is unavailable; responses are then
// always served fresh.  The contact POST shares the group but the cache only
// touches configured methods (GET by default).
func RegisterPublic(e *echo.Echo, pf *handler.ProfileHandler, pj *handler.ProjectHandler,
	ex *handler.ExperienceHandler, ct *handler.ContactHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/profile", pf.GetPublic)
	g.GET("/projects", pj.ListPublic)
	g.GET("/projects/:id", pj.GetPublic)
	g.GET("/experience", ex.ListPublic)
	g.POST("/contact", ct.Submit)
}
