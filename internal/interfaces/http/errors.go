package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jmartel/planif-depots/internal/application/dto"
	"github.com/jmartel/planif-depots/internal/domain"
)

// mapError traduit une erreur de domaine en réponse HTTP structurée.
// Taxonomie : 422 entrée mal formée, 400 entrée vide /
// entrées manquantes / paramètre invalide, 500 sinon. Toutes les erreurs
// sont terminales pour la requête, jamais de résultat partiel.
func mapError(c *fiber.Ctx, err error) error {
	var emptyErr *domain.EmptyInputError
	switch {
	case errors.Is(err, domain.ErrMalformedInput):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "MALFORMED_INPUT", Message: "fichier illisible ou colonnes requises absentes",
		})
	case errors.As(err, &emptyErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "EMPTY_INPUT", Message: "aucune ligne retenue après filtrage",
			Discarded: emptyErr.Discarded,
		})
	case errors.Is(err, domain.ErrEmptyInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "EMPTY_INPUT", Message: "aucune ligne retenue après filtrage",
		})
	case errors.Is(err, domain.ErrMissingInputs):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "MISSING_INPUTS", Message: "aucune session de commandes active",
		})
	case errors.Is(err, domain.ErrInvalidParameter):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMETER", Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "erreur interne",
		})
	}
}
