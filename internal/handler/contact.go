package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/queue"
	queue_publisher "github.com/iliyamo/portfolio-api/internal/service"
)

// ContactHandler accepts contact-form submissions from the public site and
// relays them to the message broker.  Nothing is persisted here; the
// notifier consumer owns delivery.
type ContactHandler struct{}

func NewContactHandler() *ContactHandler { return &ContactHandler{} }

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit validates the form and publishes a ContactMessageEvent.  Publishing
// is best-effort: a broker outage is logged by the publisher but the visitor
// still gets a 202 so the public site never looks broken.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/message required"})
	}

	ev := queue.ContactMessageEvent{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Subject:    strings.TrimSpace(req.Subject),
		Message:    req.Message,
		ClientIP:   c.RealIP(),
		ReceivedAt: time.Now().UTC().Format(time.RFC3339),
	}
	_ = queue_publisher.PublishContactMessage(c.Request().Context(), ev)

	return c.JSON(http.StatusAccepted, echo.Map{"id": ev.ID})
}
