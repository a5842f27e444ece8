package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jmartel/planif-depots/internal/application/dto"
	"github.com/jmartel/planif-depots/internal/application/ingest"
	"github.com/jmartel/planif-depots/internal/domain/entity"
)

// UploadHandler reçoit les trois types de classeurs en multipart.
type UploadHandler struct {
	uc *ingest.UploadUseCase
}

// NewUploadHandler construit le handler.
func NewUploadHandler(uc *ingest.UploadUseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// UploadOrders godoc : POST /api/upload-commandes-excel.
// Réponse 200 avec session_id, résumé et valeurs de filtres.
func (h *UploadHandler) UploadOrders(c *fiber.Ctx) error {
	return h.upload(c, entity.KindOrders)
}

// UploadStock godoc : POST /api/upload-stock-excel.
func (h *UploadHandler) UploadStock(c *fiber.Ctx) error {
	return h.upload(c, entity.KindStock)
}

// UploadTransit godoc : POST /api/upload-transit-excel.
func (h *UploadHandler) UploadTransit(c *fiber.Ctx) error {
	return h.upload(c, entity.KindTransit)
}

func (h *UploadHandler) upload(c *fiber.Ctx, kind entity.SessionKind) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "MISSING_FILE", Message: "champ multipart 'file' requis",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "MALFORMED_INPUT", Message: "fichier illisible",
		})
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "MALFORMED_INPUT", Message: "fichier illisible",
		})
	}

	resp, err := h.uc.Upload(c.Context(), kind, fileHeader.Filename, fileBytes)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(resp)
}
