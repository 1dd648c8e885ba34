package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campushq/seminar-registration/internal/config"
	"github.com/campushq/seminar-registration/internal/model"
	"github.com/campushq/seminar-registration/internal/store"
	"github.com/campushq/seminar-registration/internal/utils"
)

// AuthHandler bundles dependencies for staff login.  There is no
// self-service registration: superadmins are created with their
// college and all other accounts are created by a superadmin.
type AuthHandler struct {
	Cfg   config.Config
	Store store.Store
}

func NewAuthHandler(cfg config.Config, st store.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Store: st}
}

// ----- DTOs -----

type loginReq struct {
	CollegeID int64  `json:"college_id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type loginResp struct {
	User        *model.User `json:"user"`
	Access      tokenPart   `json:"access"`
	RedirectURL string      `json:"redirect_url"`
}

// redirectFor maps a staff role to its landing page so the client
// can route straight to the right console after login.
func redirectFor(role string) string {
	if role == model.RoleGuard {
		return "/guard/scanner"
	}
	return "/admin/dashboard"
}

// Login verifies college-scoped credentials and returns a signed
// access token.  Usernames are only unique within a college, so the
// college id is part of the credential triple.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.CollegeID == 0 || req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "college_id, username and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Store.GetUserByUsername(ctx, req.CollegeID, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}

	return c.JSON(http.StatusOK, loginResp{
		User:        u,
		Access:      tokenPart{Token: access.Token, Expires: access.Exp},
		RedirectURL: redirectFor(u.Role),
	})
}

// Me echoes the authenticated user's claims; used by clients to
// restore a session after reload.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id":    c.Get("user_id"),
		"role":       c.Get("role"),
		"college_id": c.Get("college_id"),
	})
}
