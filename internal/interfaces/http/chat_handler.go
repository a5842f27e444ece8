package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmartel/planif-depots/internal/application/dto"
	"github.com/jmartel/planif-depots/internal/application/usecase"
)

// ChatHandler sert les questions en langage naturel sur les données chargées.
type ChatHandler struct {
	uc *usecase.ChatUseCase
}

// NewChatHandler construit le handler.
func NewChatHandler(uc *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// Ask godoc : POST /api/chat. Corps : {message}.
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "corps JSON invalide",
		})
	}

	resp, err := h.uc.Ask(c.Context(), req)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(resp)
}
