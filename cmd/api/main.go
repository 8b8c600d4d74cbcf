package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/borderpass/borderpass-backend/pkg/validator"

	"github.com/borderpass/borderpass-backend/internal/adapter/handler"
	"github.com/borderpass/borderpass-backend/internal/adapter/repository"
	"github.com/borderpass/borderpass-backend/internal/infrastructure/cache"
	"github.com/borderpass/borderpass-backend/internal/infrastructure/database"
	httpmw "github.com/borderpass/borderpass-backend/internal/infrastructure/http/middleware"
	"github.com/borderpass/borderpass-backend/internal/infrastructure/storage"
	"github.com/borderpass/borderpass-backend/internal/relay"
	interviewUsecase "github.com/borderpass/borderpass-backend/internal/usecase/interview"
	practiceUsecase "github.com/borderpass/borderpass-backend/internal/usecase/practice"
	"github.com/borderpass/borderpass-backend/internal/usecase/scoring"
	pkgai "github.com/borderpass/borderpass-backend/pkg/ai"
	"github.com/borderpass/borderpass-backend/pkg/config"
	"github.com/borderpass/borderpass-backend/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate in CI/CD.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	transcriptRepo := repository.NewTranscriptRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	countryRepo := repository.NewCountryRepository(db)
	questionRepo := repository.NewQuestionRepository(db)

	// Initialize recording storage
	log.Println("🎙️  Initializing recording storage...")
	var recordingStorage interviewUsecase.RecordingStorage
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		logger.Warn("recording storage unavailable, recording URLs disabled", zap.Error(err))
	} else {
		recordingStorage = minioClient
	}

	// Initialize AI client and scoring engine
	log.Println("🤖 Initializing scoring engine...")
	var analyzer scoring.Analyzer
	var evaluator practiceUsecase.Evaluator
	if cfg.OpenAI.APIKey != "" {
		openaiClient := pkgai.NewOpenAIClient(&cfg.OpenAI)
		analyzer = openaiClient
		evaluator = openaiClient
	} else {
		log.Println("⚠️  OPENAI_API_KEY not set; enrichment and practice evaluation run degraded")
	}
	scoringEngine := scoring.NewEngine(analyzer, logger)

	// Initialize services
	log.Println("✨ Initializing services...")
	interviewService := interviewUsecase.NewInterviewService(
		sessionRepo,
		transcriptRepo,
		scoreRepo,
		subscriptionRepo,
		countryRepo,
		scoringEngine,
		cache.NewScoreCache(redisClient),
		recordingStorage,
		logger,
	)
	practiceService := practiceUsecase.NewPracticeService(evaluator, logger)

	// Initialize JWT manager (verification only; tokens are issued upstream)
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.Issuer, cfg.JWT.AccessExpiry)

	// Initialize session relay
	log.Println("📡 Initializing session relay...")
	hub := relay.NewHub(logger)
	relayHandler := relay.NewHandler(hub, &cfg.Relay, logger)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	interviewHandler := handler.NewInterviewHandler(interviewService, logger)
	practiceHandler := handler.NewPracticeHandler(practiceService, logger)
	countryHandler := handler.NewCountryHandler(countryRepo, questionRepo, logger)
	profileHandler := handler.NewProfileHandler(userRepo, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	authEchoMW := httpmw.EchoAuth(jwtManager)

	router := handler.NewRouter(cfg, interviewHandler, practiceHandler, countryHandler, profileHandler, relayHandler, authEchoMW)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
