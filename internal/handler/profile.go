package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/model"
	"github.com/iliyamo/portfolio-api/internal/repository"
)

// ProfileHandler serves the public owner profile and the admin profile
// editor.
type ProfileHandler struct {
	Users    *repository.UserRepo
	Profiles *repository.ProfileRepo
}

func NewProfileHandler(u *repository.UserRepo, p *repository.ProfileRepo) *ProfileHandler {
	return &ProfileHandler{Users: u, Profiles: p}
}

type profilePart struct {
	Bio      string `json:"bio"`
	Location string `json:"location"`
	Website  string `json:"website"`
	Twitter  string `json:"twitter"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	ImageURL string `json:"image_url"`
	Phone    string `json:"phone,omitempty"`
}

type profileResp struct {
	Name        string      `json:"name"`
	Email       string      `json:"email,omitempty"`
	Profile     profilePart `json:"profile"`
	Projects    int64       `json:"projects"`
	Experiences int64       `json:"experiences"`
}

type updateProfileReq struct {
	Name    string      `json:"name"`
	Profile profilePart `json:"profile"`
}

// GetPublic returns the portfolio owner's profile for the public site.  The
// owner is the ADMIN account; phone and email stay private.
func (h *ProfileHandler) GetPublic(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	owner, err := h.Users.GetAdmin(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	resp, err := h.buildResponse(ctx, owner, false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns the caller's full profile for the admin editor.
func (h *ProfileHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	resp, err := h.buildResponse(ctx, u, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Update upserts the caller's profile row and display name.
func (h *ProfileHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.Name != "" {
		if err := h.Users.UpdateProfileFields(ctx, uid, req.Name); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	p := model.Profile{
		UserID:   uid,
		Bio:      req.Profile.Bio,
		Location: req.Profile.Location,
		Website:  req.Profile.Website,
		Twitter:  req.Profile.Twitter,
		GitHub:   req.Profile.GitHub,
		LinkedIn: req.Profile.LinkedIn,
		ImageURL: req.Profile.ImageURL,
		Phone:    req.Profile.Phone,
	}
	if err := h.Profiles.Upsert(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	resp, err := h.buildResponse(ctx, u, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) buildResponse(ctx context.Context, u model.User, private bool) (profileResp, error) {
	p, err := h.Profiles.GetByUserID(ctx, u.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return profileResp{}, err
	}
	projects, experiences, err := h.Profiles.Counts(ctx, u.ID)
	if err != nil {
		return profileResp{}, err
	}
	resp := profileResp{
		Name: u.Name,
		Profile: profilePart{
			Bio:      p.Bio,
			Location: p.Location,
			Website:  p.Website,
			Twitter:  p.Twitter,
			GitHub:   p.GitHub,
			LinkedIn: p.LinkedIn,
			ImageURL: p.ImageURL,
		},
		Projects:    projects,
		Experiences: experiences,
	}
	if private {
		resp.Email = u.Email
		resp.Profile.Phone = p.Phone
	}
	return resp, nil
}
