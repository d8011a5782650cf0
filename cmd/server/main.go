package main

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/sedrac-slc/escutivel/internal/application"
	"github.com/sedrac-slc/escutivel/internal/auth"
	"github.com/sedrac-slc/escutivel/internal/config"
	"github.com/sedrac-slc/escutivel/internal/email"
	"github.com/sedrac-slc/escutivel/internal/infrastructure/repository"
	handlers "github.com/sedrac-slc/escutivel/internal/interfaces/http"
	"github.com/sedrac-slc/escutivel/internal/scheduler"
	services "github.com/sedrac-slc/escutivel/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	db, err := sql.Open("postgres", cfg.GetDBConnString())
	if err != nil {
		logger.Fatal("Error connecting to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Error pinging database", zap.Error(err))
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length,Content-Disposition",
		MaxAge:           86400,
	}))
	app.Use(handlers.RequestLogger(logger))

	// Autenticação
	provider := auth.NewProvider(cfg.AuthBaseURL, cfg.AuthAPIKey, logger)
	verifier := auth.NewTokenVerifier(cfg.AuthJWTSecret)
	authHandler := handlers.NewAuthHandler(provider, cfg.IsProduction())

	// Email Client
	emailClient, err := email.NewClient(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.SMTPFromName,
		cfg.SMTPFromEmail,
	)
	if err != nil {
		logger.Warn("Email client initialization failed", zap.Error(err))
		emailClient = nil // Continuar sem email
	}

	// Pessoas
	personRepo := repository.NewPersonRepository(db)
	personService := application.NewPersonService(personRepo, logger)
	personHandler := handlers.NewPersonHandler(personService)

	// Escuteiros
	scoutRepo := repository.NewScoutRepository(db)
	scoutService := application.NewScoutService(scoutRepo, logger)
	exportService := application.NewExportService(scoutService, logger)
	scoutHandler := handlers.NewScoutHandler(scoutService, exportService)

	// Inscrições
	var mailer application.Mailer
	if emailClient != nil {
		mailer = emailClient
	}
	enrollmentHandler := handlers.NewEnrollmentHandler(personService, scoutService, mailer, cfg.LeaderEmail, logger)

	// Página inicial e contratos de apresentação
	landingHandler := handlers.NewLandingHandler()
	columnsHandler := handlers.NewColumnsHandler()

	// Documentos
	var uploadHandler *handlers.UploadHandler
	s3Service, err := services.NewS3Service(cfg.S3BucketName, cfg.S3Region)
	if err != nil {
		logger.Warn("S3 service initialization failed", zap.Error(err))
	} else {
		uploadHandler = handlers.NewUploadHandler(s3Service, logger)
	}

	// Scheduler de matrículas pendentes
	matriculationScheduler := scheduler.NewMatriculationScheduler(scoutRepo, cfg.PendingMatriculationDays, logger)
	matriculationScheduler.Start()
	defer matriculationScheduler.Stop()

	app.Get("/", landingHandler.Show)

	api := app.Group("/api")

	// Autenticação
	authRoutes := api.Group("/auth")
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)

	// Rotas protegidas pela sessão
	protected := api.Use(handlers.RequireAuth(verifier))

	// Pessoas
	pessoas := protected.Group("/pessoas")
	pessoas.Get("/", personHandler.List)
	pessoas.Post("/", personHandler.Create)
	pessoas.Put("/:id", personHandler.Update)
	pessoas.Delete("/:id", personHandler.Delete)

	// Escuteiros
	escuteiros := protected.Group("/escuteiros")
	escuteiros.Get("/", scoutHandler.List)
	escuteiros.Get("/export", scoutHandler.Export)
	escuteiros.Get("/colunas", columnsHandler.ScoutColumns)
	escuteiros.Get("/painel/:section", scoutHandler.ListBySection)
	escuteiros.Put("/:id", scoutHandler.Update)
	escuteiros.Delete("/:id", scoutHandler.Delete)

	// Inscrições
	protected.Post("/inscricoes", enrollmentHandler.Submit)

	// Documentos
	if uploadHandler != nil {
		protected.Post("/upload/documentos", uploadHandler.UploadDocument)
	}

	logger.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatal("Error starting server", zap.Error(err))
	}
}
