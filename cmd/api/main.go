package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jmartel/planif-depots/internal/application/ingest"
	"github.com/jmartel/planif-depots/internal/application/planning"
	"github.com/jmartel/planif-depots/internal/application/ports"
	"github.com/jmartel/planif-depots/internal/application/usecase"
	infraai "github.com/jmartel/planif-depots/internal/infrastructure/ai"
	"github.com/jmartel/planif-depots/internal/infrastructure/excel"
	"github.com/jmartel/planif-depots/internal/infrastructure/memstore"
	infrapdf "github.com/jmartel/planif-depots/internal/infrastructure/pdf"
	"github.com/jmartel/planif-depots/internal/infrastructure/postgres"
	httpRouter "github.com/jmartel/planif-depots/internal/interfaces/http"
	"github.com/jmartel/planif-depots/pkg/config"
	"github.com/jmartel/planif-depots/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration : " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	store := memstore.New()

	// Journal d'audit Postgres : optionnel, le service tourne sans base.
	var journal ports.UploadJournal
	if cfg.DB.DatabaseURL != "" {
		ctx := context.Background()
		pool, err := postgres.NewPool(ctx, cfg.DB.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connexion à PostgreSQL")
		}
		defer pool.Close()

		journalRepo := postgres.NewUploadJournalRepository(pool)
		if err := journalRepo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("schéma du journal d'upload")
		}
		journal = journalRepo
		log.Info().Msg("journal d'upload Postgres activé")
	}

	uploadUC := ingest.NewUploadUseCase(excel.NewReader(), store, journal, log)
	calculator := planning.NewCalculator(store)
	suggester := planning.NewTopUpSuggester(store, calculator)

	anthropicSvc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	chatUC := usecase.NewChatUseCase(store, anthropicSvc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    32 * 1024 * 1024, // classeurs jusqu'à 32 Mo
	})
	app.Use(recover.New())

	// Swagger UI : http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Planif Dépôts API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		UploadUC:   uploadUC,
		Calculator: calculator,
		Suggester:  suggester,
		ChatUC:     chatUC,
		Store:      store,
		Exporter:   excel.NewExporter(),
		PDFGen:     infrapdf.NewPlanPDFGenerator(),
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
