package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/KeshavMowar711/AI-Interview-App/internal/config"
	"github.com/KeshavMowar711/AI-Interview-App/internal/handlers"
	"github.com/KeshavMowar711/AI-Interview-App/internal/repositories"
	"github.com/KeshavMowar711/AI-Interview-App/internal/services"
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
	interviewRepo := repositories.NewInterviewRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize question memory
	memory, err := services.NewQuestionMemory(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := memory.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Question memory initialized successfully")

	// Initialize indexer
	idx := services.NewIndexer(geminiService, memory, cfg.Interview.IndexConcurrency)

	ctx := context.Background()
	idx.Start(ctx)
	log.Println("✅ Indexer started successfully")

	// Initialize interviewer
	interviewer := services.NewInterviewerService(
		interviewRepo,
		resumeRepo,
		geminiService,
		memory,
		idx,
		cfg.Interview.RetryMaxAttempts,
		cfg.Interview.MemoryLimit,
	)
	log.Println("✅ Interviewer service initialized")

	// Initialize handlers
	interviewHandler := handlers.NewInterviewHandler(interviewRepo, interviewer)
	uploadHandler := handlers.NewUploadHandler(
		resumeRepo,
		storageService,
		pdfParser,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Interview API",
		ReadTimeout:  cfg.Interview.RequestTimeout,
		WriteTimeout: cfg.Interview.RequestTimeout,
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
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
		})
	})

	api.Post("/start-interview", interviewHandler.HandleStartInterview)
	api.Post("/generate-question", interviewHandler.HandleGenerateQuestion)
	api.Post("/grade-answer", interviewHandler.HandleGradeAnswer)
	api.Get("/interviews", interviewHandler.HandleListInterviews)
	api.Post("/upload-resume", uploadHandler.HandleUploadResume)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		idx.Stop()
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
