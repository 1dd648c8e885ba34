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

// CollegeHandler serves tenant onboarding: registering a college
// creates the institution together with its first superadmin
// account, and the college list feeds the login page's picker.
type CollegeHandler struct {
	Cfg   config.Config
	Store store.Store
}

func NewCollegeHandler(cfg config.Config, st store.Store) *CollegeHandler {
	return &CollegeHandler{Cfg: cfg, Store: st}
}

type createCollegeReq struct {
	Name          string `json:"name"`
	AdminUsername string `json:"admin_username"`
	AdminPassword string `json:"admin_password"`
}

// Create registers a new college and its superadmin in one call.
func (h *CollegeHandler) Create(c echo.Context) error {
	var req createCollegeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.AdminUsername = strings.TrimSpace(req.AdminUsername)
	if req.Name == "" || req.AdminUsername == "" || req.AdminPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, admin_username and admin_password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash, err := utils.HashPassword(req.AdminPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}

	college := &model.College{Name: req.Name}
	if err := h.Store.CreateCollege(ctx, college); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create college failed"})
	}
	admin := &model.User{
		CollegeID:    college.ID,
		Username:     req.AdminUsername,
		PasswordHash: hash,
		Role:         model.RoleSuperAdmin,
	}
	if err := h.Store.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create admin failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"college": college,
		"admin":   admin,
	})
}

// List returns all registered colleges.
func (h *CollegeHandler) List(c echo.Context) error {
	colleges, err := h.Store.ListColleges(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": colleges})
}
