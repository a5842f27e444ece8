package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jmartel/planif-depots/internal/application/dto"
	"github.com/jmartel/planif-depots/internal/infrastructure/excel"
	"github.com/jmartel/planif-depots/internal/infrastructure/pdf"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler rend la sélection du plan en classeur ou en PDF.
type ExportHandler struct {
	exporter *excel.Exporter
	pdfGen   *pdf.PlanPDFGenerator
}

// NewExportHandler construit le handler.
func NewExportHandler(exporter *excel.Exporter, pdfGen *pdf.PlanPDFGenerator) *ExportHandler {
	return &ExportHandler{exporter: exporter, pdfGen: pdfGen}
}

// ExportExcel godoc : POST /api/export-excel. Retourne le classeur binaire.
func (h *ExportHandler) ExportExcel(c *fiber.Ctx) error {
	req, ok := parseExportRequest(c)
	if !ok {
		return nil // la réponse d'erreur est déjà écrite
	}

	fileBytes, genErr := h.exporter.Export(req.SelectedItems)
	if genErr != nil {
		return mapError(c, genErr)
	}

	name := fmt.Sprintf("plan-reappro-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(fileBytes)
}

// ExportPDF godoc : POST /api/export-pdf. Même sélection, rendu A4.
func (h *ExportHandler) ExportPDF(c *fiber.Ctx) error {
	req, ok := parseExportRequest(c)
	if !ok {
		return nil
	}

	fileBytes, genErr := h.pdfGen.GeneratePlanPDF(c.Context(), req.SelectedItems)
	if genErr != nil {
		return mapError(c, genErr)
	}

	name := fmt.Sprintf("plan-reappro-%s.pdf", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(fileBytes)
}

// parseExportRequest valide le corps commun des deux exports : au moins un
// élément sélectionné. En cas d'échec la réponse d'erreur est écrite et
// ok vaut false.
func parseExportRequest(c *fiber.Ctx) (*dto.ExportRequest, bool) {
	var req dto.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "corps JSON invalide",
		})
		return nil, false
	}
	if len(req.SelectedItems) == 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMETER", Message: "selected_items ne peut pas être vide",
		})
		return nil, false
	}
	return &req, true
}
