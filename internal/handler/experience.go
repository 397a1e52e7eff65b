package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/model"
	"github.com/iliyamo/portfolio-api/internal/repository"
)

// ExperienceHandler serves the public experience timeline and the admin CRUD.
type ExperienceHandler struct {
	Experiences *repository.ExperienceRepo
	Users       *repository.UserRepo
}

func NewExperienceHandler(e *repository.ExperienceRepo, u *repository.UserRepo) *ExperienceHandler {
	return &ExperienceHandler{Experiences: e, Users: u}
}

type experienceReq struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsCurrent   bool       `json:"is_current"`
}

// ListPublic returns the owner's experience timeline, most recent first.
func (h *ExperienceHandler) ListPublic(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	owner, err := h.Users.GetAdmin(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusOK, []model.Experience{})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	list, err := h.Experiences.List(ctx, owner.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, list)
}

// Create adds an experience entry.
func (h *ExperienceHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req experienceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Company) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title/company required"})
	}
	if req.StartDate.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e := req.toModel(uid)
	id, err := h.Experiences.Create(ctx, e)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create experience failed"})
	}
	created, err := h.Experiences.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusCreated, created)
}

// Update overwrites an experience entry.
func (h *ExperienceHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req experienceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e := req.toModel(uid)
	e.ID = id
	if err := h.Experiences.Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "experience not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update experience failed"})
	}
	updated, err := h.Experiences.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes an experience entry.
func (h *ExperienceHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Experiences.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "experience not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete experience failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (r experienceReq) toModel(uid uint64) model.Experience {
	end := r.EndDate
	if r.IsCurrent {
		end = nil // a current position has no end date
	}
	return model.Experience{
		UserID:      uid,
		Title:       strings.TrimSpace(r.Title),
		Company:     strings.TrimSpace(r.Company),
		Location:    strings.TrimSpace(r.Location),
		Description: strings.TrimSpace(r.Description),
		StartDate:   r.StartDate,
		EndDate:     end,
		IsCurrent:   r.IsCurrent,
	}
}
