package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campushq/seminar-registration/internal/config"
	"github.com/campushq/seminar-registration/internal/layout"
	"github.com/campushq/seminar-registration/internal/middleware"
	"github.com/campushq/seminar-registration/internal/model"
	"github.com/campushq/seminar-registration/internal/store"
	"github.com/campushq/seminar-registration/internal/utils"
)

// AdminHandler serves the authenticated staff console: hall and
// seminar management, staff accounts and the dashboard stats.  Every
// operation is scoped to the college carried in the caller's JWT;
// there is no cross-tenant access path.
type AdminHandler struct {
	Cfg   config.Config
	Store store.Store
}

func NewAdminHandler(cfg config.Config, st store.Store) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Store: st}
}

// ----- Halls -----

type createHallReq struct {
	Name string          `json:"name"`
	Rows []model.HallRow `json:"rows"`
}

// CreateHall handles POST /v1/admin/halls.  Halls are immutable
// after creation, so the layout is validated strictly up front: at
// least one row, single-letter A–Z labels with no duplicates, every
// seat count positive.
func (h *AdminHandler) CreateHall(c echo.Context) error {
	var req createHallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if len(req.Rows) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one row is required"})
	}
	total := 0
	seen := make(map[string]bool, len(req.Rows))
	for i := range req.Rows {
		req.Rows[i].Label = strings.ToUpper(strings.TrimSpace(req.Rows[i].Label))
		label := req.Rows[i].Label
		if layout.RowIndex(label) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "row labels must be single letters A-Z"})
		}
		if seen[label] {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "duplicate row label: " + label})
		}
		seen[label] = true
		if req.Rows[i].Seats < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "row " + label + " must have at least one seat"})
		}
		total += req.Rows[i].Seats
	}

	hall := &model.Hall{
		CollegeID:  middleware.CollegeID(c),
		Name:       req.Name,
		Rows:       req.Rows,
		TotalSeats: total,
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Store.CreateHall(ctx, hall); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hall failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"hall": hall})
}

// ListHalls handles GET /v1/admin/halls.
func (h *AdminHandler) ListHalls(c echo.Context) error {
	halls, err := h.Store.ListHallsByCollege(c.Request().Context(), middleware.CollegeID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": halls})
}

// ----- Seminars -----

type createSeminarReq struct {
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Venue       string      `json:"venue"`
	Thumbnail   string      `json:"thumbnail"`
	RowConfig   map[int]int `json:"row_config"`
	HallID      *int64      `json:"hall_id"`
}

// CreateSeminar handles POST /v1/admin/seminars.  Exactly one
// seating source must be supplied: an inline row_config makes a GRID
// seminar, a hall_id makes a HALL seminar.  The slug is derived from
// the title when not given and must be globally unique.
func (h *AdminHandler) CreateSeminar(c echo.Context) error {
	var req createSeminarReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	hasGrid := len(req.RowConfig) > 0
	hasHall := req.HallID != nil && *req.HallID > 0
	if hasGrid == hasHall {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "provide exactly one of row_config or hall_id"})
	}

	collegeID := middleware.CollegeID(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sem := &model.Seminar{
		CollegeID:   collegeID,
		Title:       req.Title,
		Slug:        strings.TrimSpace(req.Slug),
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Venue:       req.Venue,
		Thumbnail:   req.Thumbnail,
	}
	if sem.Slug == "" {
		sem.Slug = utils.Slugify(req.Title)
	}
	if sem.Slug == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slug could not be derived from title"})
	}

	if hasGrid {
		for row, seats := range req.RowConfig {
			if row < 1 || row > layout.MaxRows {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "row indexes must be between 1 and 26"})
			}
			if seats < 1 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "every row needs at least one seat"})
			}
		}
		sem.SeatingSource = model.SeatingGrid
		sem.RowConfig = req.RowConfig
	} else {
		hall, err := h.Store.GetHall(ctx, *req.HallID)
		if err != nil {
			if errors.Is(err, store.ErrHallNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if hall.CollegeID != collegeID {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "hall belongs to another college"})
		}
		sem.SeatingSource = model.SeatingHall
		sem.HallID = req.HallID
	}

	if err := h.Store.CreateSeminar(ctx, sem); err != nil {
		if errors.Is(err, store.ErrSlugTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create seminar failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"seminar": sem})
}

// ListSeminars handles GET /v1/admin/seminars.
func (h *AdminHandler) ListSeminars(c echo.Context) error {
	seminars, err := h.Store.ListSeminarsByCollege(c.Request().Context(), middleware.CollegeID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": seminars})
}

// Stats handles GET /v1/admin/stats, backing the dashboard header.
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.Store.CollegeStats(c.Request().Context(), middleware.CollegeID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, stats)
}

// ----- Staff accounts (superadmin only) -----

type createUserReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"` // admin | guard
}

// CreateUser handles POST /v1/admin/users.  Superadmins create
// admins and guards for their own college; further superadmins are
// never created this way.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}
	if role != model.RoleAdmin && role != model.RoleGuard {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be admin or guard"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}
	u := &model.User{
		CollegeID:    middleware.CollegeID(c),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": u})
}

// ListUsers handles GET /v1/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.Store.ListUsersByCollege(c.Request().Context(), middleware.CollegeID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": users})
}
