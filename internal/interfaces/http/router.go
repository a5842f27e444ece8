package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmartel/planif-depots/internal/application/ingest"
	"github.com/jmartel/planif-depots/internal/application/planning"
	"github.com/jmartel/planif-depots/internal/application/usecase"
	"github.com/jmartel/planif-depots/internal/domain/repository"
	"github.com/jmartel/planif-depots/internal/infrastructure/excel"
	"github.com/jmartel/planif-depots/internal/infrastructure/pdf"
)

// RouterDeps dépendances du routeur.
type RouterDeps struct {
	UploadUC   *ingest.UploadUseCase
	Calculator *planning.Calculator
	Suggester  *planning.TopUpSuggester
	ChatUC     *usecase.ChatUseCase
	Store      repository.SessionStore
	Exporter   *excel.Exporter
	PDFGen     *pdf.PlanPDFGenerator
	JWTSecret  string // vide = API ouverte
}

// Router enregistre les routes de l'API. /health, /metrics et /docs
// restent hors protection.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret))
	}

	uploadHandler := NewUploadHandler(deps.UploadUC)
	api.Post("/upload-commandes-excel", uploadHandler.UploadOrders)
	api.Post("/upload-stock-excel", uploadHandler.UploadStock)
	api.Post("/upload-transit-excel", uploadHandler.UploadTransit)

	planningHandler := NewPlanningHandler(deps.Calculator, deps.Suggester)
	api.Post("/calculate", planningHandler.Calculate)
	api.Post("/depot-suggestions", planningHandler.DepotSuggestions)

	exportHandler := NewExportHandler(deps.Exporter, deps.PDFGen)
	api.Post("/export-excel", exportHandler.ExportExcel)
	api.Post("/export-pdf", exportHandler.ExportPDF)

	sessionHandler := NewSessionHandler(deps.Store)
	api.Get("/sessions", sessionHandler.List)

	chatHandler := NewChatHandler(deps.ChatUC)
	api.Post("/chat", chatHandler.Ask)
}
