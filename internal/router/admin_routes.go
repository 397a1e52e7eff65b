package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/handler"
	"github.com/iliyamo/portfolio-api/internal/middleware"
	"github.com/iliyamo/portfolio-api/internal/model"
)

// RegisterAdmin registers the owner-only management endpoints.  Every route
// sits behind the session gate plus a role check; a valid session with the
// wrong role gets a 403, never a 401.
func RegisterAdmin(e *echo.Echo, pf *handler.ProfileHandler, pj *handler.ProjectHandler,
	ex *handler.ExperienceHandler, gate echo.MiddlewareFunc) {
	g := e.Group("/v1", gate, middleware.RequireRole(model.RoleAdmin))

	g.GET("/admin/profile", pf.Get)
	g.PUT("/profile", pf.Update)

	g.GET("/admin/projects", pj.ListAdmin)
	g.POST("/projects", pj.Create)
	g.PUT("/projects/:id", pj.Update)
	g.DELETE("/projects/:id", pj.Delete)

	g.POST("/experience", ex.Create)
	g.PUT("/experience/:id", ex.Update)
	g.DELETE("/experience/:id", ex.Delete)
}
