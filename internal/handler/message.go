package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/raddison/salon-booking/internal/repository"
)

// MessageHandler exposes the public contact form and its admin inbox.
type MessageHandler struct {
	Messages *repository.MessageRepo
}

func NewMessageHandler(messages *repository.MessageRepo) *MessageHandler {
	if messages == nil {
		panic("nil repository passed to NewMessageHandler")
	}
	return &MessageHandler{Messages: messages}
}

type messageResp struct {
	ID        uint64  `json:"message_id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Subject   *string `json:"subject"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"created_at"`
}

// List handles GET /api/messages (admin inbox, newest first).
func (h *MessageHandler) List(c echo.Context) error {
	msgs, err := h.Messages.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch messages"})
	}
	out := make([]messageResp, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageResp{m.ID, m.Name, m.Email, m.Subject, m.Message, m.CreatedAt.Format("2006-01-02 15:04:05")})
	}
	return c.JSON(http.StatusOK, out)
}

type messageReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Create handles POST /api/messages (the contact form).
func (h *MessageHandler) Create(c echo.Context) error {
	var req messageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email, and message are required"})
	}
	var subject *string
	if s := strings.TrimSpace(req.Subject); s != "" {
		subject = &s
	}
	id, err := h.Messages.Create(c.Request().Context(), req.Name, req.Email, subject, req.Message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to send message"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "message sent", "message_id": id})
}

// Delete handles DELETE /api/messages/:id.
func (h *MessageHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid message id"})
	}
	if err := h.Messages.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "message not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete message"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "message deleted"})
}
