package router

import (
	"github.com/labstack/echo/v4"

	"github.com/campushq/seminar-registration/internal/handler"
	"github.com/campushq/seminar-registration/internal/middleware"
	"github.com/campushq/seminar-registration/internal/model"
)

// RegisterAuth registers the login endpoint and the session probe.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	e.POST("/v1/auth/login", a.Login)

	me := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	me.GET("/me", a.Me)
}

// RegisterAdmin registers the staff console under /v1/admin.  Halls,
// seminars and stats are open to admins and superadmins; staff
// account management is superadmin only.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin),
	)

	// ---- Halls ----
	g.POST("/halls", h.CreateHall)
	g.GET("/halls", h.ListHalls)

	// ---- Seminars ----
	g.POST("/seminars", h.CreateSeminar)
	g.GET("/seminars", h.ListSeminars)

	// ---- Dashboard ----
	g.GET("/stats", h.Stats)

	// ---- Staff accounts ----
	su := e.Group(
		"/v1/admin/users",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleSuperAdmin),
	)
	su.POST("", h.CreateUser)
	su.GET("", h.ListUsers)
}
