package router

import (
	"github.com/labstack/echo/v4"

	"github.com/campushq/seminar-registration/internal/handler"
	"github.com/campushq/seminar-registration/internal/middleware"
	"github.com/campushq/seminar-registration/internal/model"
)

// RegisterGuard registers the gate scanner endpoint.  Admins and
// superadmins may also verify tickets so a short-staffed event can
// run the scanner from the admin console.  limitMW throttles rapid
// re-scans; it may be a no-op.
func RegisterGuard(e *echo.Echo, g *handler.GuardHandler, jwtSecret string, limitMW echo.MiddlewareFunc) {
	grp := e.Group(
		"/v1/guard",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleGuard, model.RoleAdmin, model.RoleSuperAdmin),
	)
	grp.POST("/verify", g.Verify, limitMW)
}
