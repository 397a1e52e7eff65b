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

// ProjectHandler serves the public gallery and the admin project CRUD.
type ProjectHandler struct {
	Projects *repository.ProjectRepo
}

func NewProjectHandler(p *repository.ProjectRepo) *ProjectHandler {
	return &ProjectHandler{Projects: p}
}

type projectReq struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	DemoURL      string     `json:"demo_url"`
	GitHubURL    string     `json:"github_url"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	Skills       []string   `json:"skills"`
	Technologies []string   `json:"technologies"`
	Images       []imageReq `json:"images"`
}

type imageReq struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// ListPublic returns published projects, optionally filtered by technology
// name via ?technology= (the gallery filter).
func (h *ProjectHandler) ListPublic(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	projects, err := h.Projects.ListPublished(ctx, strings.TrimSpace(c.QueryParam("technology")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, projects)
}

// GetPublic returns one published project.  Drafts and archived projects are
// invisible outside the admin area.
func (h *ProjectHandler) GetPublic(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if p.Status != model.ProjectPublished {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
	}
	return c.JSON(http.StatusOK, p)
}

// ListAdmin returns every project of the owner regardless of status.
func (h *ProjectHandler) ListAdmin(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	projects, err := h.Projects.ListAll(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, projects)
}

// Create adds a project.
func (h *ProjectHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req projectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title/description required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	p := req.toModel(uid)
	id, err := h.Projects.Create(ctx, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create project failed"})
	}
	created, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusCreated, created)
}

// Update overwrites a project and its relations.
func (h *ProjectHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req projectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	p := req.toModel(uid)
	p.ID = id
	if err := h.Projects.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update project failed"})
	}
	updated, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a project.
func (h *ProjectHandler) Delete(c echo.Context) error {
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

	if err := h.Projects.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete project failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (r projectReq) toModel(uid uint64) model.Project {
	status := strings.ToUpper(strings.TrimSpace(r.Status))
	switch status {
	case model.ProjectDraft, model.ProjectPublished, model.ProjectArchived:
	default:
		status = model.ProjectDraft
	}
	category := strings.ToUpper(strings.TrimSpace(r.Category))
	if category == "" {
		category = "FULLSTACK"
	}
	p := model.Project{
		UserID:       uid,
		Title:        strings.TrimSpace(r.Title),
		Description:  strings.TrimSpace(r.Description),
		DemoURL:      strings.TrimSpace(r.DemoURL),
		GitHubURL:    strings.TrimSpace(r.GitHubURL),
		Category:     category,
		Status:       status,
		Skills:       dedupe(r.Skills),
		Technologies: dedupe(r.Technologies),
	}
	for i, img := range r.Images {
		if strings.TrimSpace(img.URL) == "" {
			continue
		}
		p.Images = append(p.Images, model.ProjectImage{
			URL:      strings.TrimSpace(img.URL),
			Caption:  strings.TrimSpace(img.Caption),
			Position: i,
		})
	}
	return p
}

// dedupe trims and de-duplicates tag names while keeping their order.
func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := []string{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[strings.ToLower(s)] {
			continue
		}
		seen[strings.ToLower(s)] = true
		out = append(out, s)
	}
	return out
}
