package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmartel/planif-depots/internal/application/dto"
	"github.com/jmartel/planif-depots/internal/application/planning"
)

// PlanningHandler sert le calcul du plan et les suggestions de complément.
type PlanningHandler struct {
	calculator *planning.Calculator
	suggester  *planning.TopUpSuggester
}

// NewPlanningHandler construit le handler.
func NewPlanningHandler(calculator *planning.Calculator, suggester *planning.TopUpSuggester) *PlanningHandler {
	return &PlanningHandler{calculator: calculator, suggester: suggester}
}

// Calculate godoc : POST /api/calculate.
// Corps : {days, product_filter?, packaging_filter?}. Tout ou rien : en cas
// d'erreur aucune ligne n'est retournée et l'état des sessions reste intact.
func (h *PlanningHandler) Calculate(c *fiber.Ctx) error {
	var req dto.CalculateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "corps JSON invalide",
		})
	}

	resp, err := h.calculator.Calculate(req)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(resp)
}

// DepotSuggestions godoc : POST /api/depot-suggestions.
// Corps : {depot_name, days}. Propose les articles du stock central qui
// complètent le dernier camion partiel du dépôt.
func (h *PlanningHandler) DepotSuggestions(c *fiber.Ctx) error {
	var req dto.SuggestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "corps JSON invalide",
		})
	}

	resp, err := h.suggester.Suggest(req)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(resp)
}
