package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"recruitai/backend/internal/config"
	"recruitai/backend/internal/handlers"
	"recruitai/backend/internal/models"
	"recruitai/backend/internal/repositories"
	"recruitai/backend/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewResumeExtractor()
	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpirationHours)
	log.Println("✅ Services initialized successfully")

	// Select the judgment backend once at startup
	backend := services.SelectJudgmentBackend(cfg)
	judgeService := services.NewJudgeService(backend)

	// Initialize notifier
	mailer := services.NewMailerService(cfg.SMTP)
	if !mailer.Configured() {
		log.Println("⚠️  SMTP not configured, shortlisting will be rejected until it is")
	}

	shortlistService := services.NewShortlistService(applicationRepo, mailer)

	// Initialize worker
	worker := services.NewJudgmentWorker(
		applicationRepo,
		storageService,
		extractor,
		judgeService,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
	)

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userRepo, tokenService)
	jobHandler := handlers.NewJobHandler(jobRepo)
	applicationHandler := handlers.NewApplicationHandler(
		applicationRepo,
		jobRepo,
		storageService,
		extractor,
		judgeService,
		worker,
		cfg.Storage.MaxFileSize,
	)
	shortlistHandler := handlers.NewShortlistHandler(jobRepo, shortlistService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "RecruitAI API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	auth := handlers.RequireAuth(tokenService, userRepo)
	hrOnly := handlers.RequireRole(models.RoleHR)
	applicantOnly := handlers.RequireRole(models.RoleApplicant)

	// Auth endpoints
	api.Post("/auth/register", authHandler.HandleRegister)
	api.Post("/auth/login", authHandler.HandleLogin)
	api.Get("/auth/me", auth, authHandler.HandleMe)

	// Job endpoints
	api.Get("/jobs", jobHandler.HandleListActive)
	api.Get("/jobs/my-postings", auth, hrOnly, jobHandler.HandleMyPostings)
	api.Get("/jobs/:id", jobHandler.HandleGetJob)
	api.Post("/jobs", auth, hrOnly, jobHandler.HandleCreateJob)
	api.Put("/jobs/:id", auth, hrOnly, jobHandler.HandleUpdateJob)
	api.Delete("/jobs/:id", auth, hrOnly, jobHandler.HandleDeleteJob)

	// Application endpoints
	api.Post("/applications", auth, applicantOnly, applicationHandler.HandleApply)
	api.Get("/applications/my-applications", auth, applicantOnly, applicationHandler.HandleMyApplications)
	api.Get("/applications/job/:jobID", auth, hrOnly, applicationHandler.HandleJobApplications)
	api.Post("/applications/job/:jobID/shortlist", auth, hrOnly, shortlistHandler.HandleShortlist)
	api.Get("/applications/:id", auth, applicationHandler.HandleGetApplication)
	api.Put("/applications/:id/status", auth, hrOnly, applicationHandler.HandleUpdateStatus)
	api.Post("/applications/:id/reanalyze", auth, hrOnly, applicationHandler.HandleReanalyze)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "RecruitAI API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/auth/register",
				"POST /api/v1/auth/login",
				"GET /api/v1/jobs",
				"POST /api/v1/applications",
				"POST /api/v1/applications/job/:jobID/shortlist",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
