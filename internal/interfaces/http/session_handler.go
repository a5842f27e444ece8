package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmartel/planif-depots/internal/domain/repository"
)

// SessionHandler expose les sessions actives.
type SessionHandler struct {
	store repository.SessionStore
}

// NewSessionHandler construit le handler.
func NewSessionHandler(store repository.SessionStore) *SessionHandler {
	return &SessionHandler{store: store}
}

// List godoc : GET /api/sessions. Tableau vide si rien n'est chargé.
func (h *SessionHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.store.List())
}
