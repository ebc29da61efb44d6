package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/jovannirio-prog/petvizor-engine/pkg/auth"
	"github.com/jovannirio-prog/petvizor-engine/pkg/config"
	"github.com/jovannirio-prog/petvizor-engine/pkg/database"
	"github.com/jovannirio-prog/petvizor-engine/pkg/handlers"
	"github.com/jovannirio-prog/petvizor-engine/pkg/knowledge"
	"github.com/jovannirio-prog/petvizor-engine/pkg/llm"
	"github.com/jovannirio-prog/petvizor-engine/pkg/logging"
	"github.com/jovannirio-prog/petvizor-engine/pkg/middleware"
	"github.com/jovannirio-prog/petvizor-engine/pkg/repositories"
	"github.com/jovannirio-prog/petvizor-engine/pkg/retrieval"
	"github.com/jovannirio-prog/petvizor-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

const migrationsPath = "migrations"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.Bool("sheets_configured", cfg.Sheets.SpreadsheetID != ""))

	ctx := context.Background()

	// Database is optional: without it the engine answers consultations but
	// skips exchange persistence and history reconstruction.
	var exchangeRepo repositories.ExchangeRepository
	persister := services.ExchangePersister(services.NopExchangePersister{})
	db, err := connectDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Warn("Running without a database, exchanges will not be persisted", zap.Error(err))
	} else {
		defer db.Close()
		exchangeRepo = repositories.NewExchangeRepository(db)
		persister = services.NewExchangePersister(exchangeRepo, logger)
	}

	// Knowledge pipeline: source feeding the ingestor behind a TTL cache
	var source knowledge.TableSource
	if cfg.Sheets.SpreadsheetID != "" {
		source = knowledge.NewSheetsSource(cfg.Sheets.SpreadsheetID, cfg.Sheets.APIKey, cfg.Sheets.FetchTimeout)
	} else {
		logger.Warn("No spreadsheet configured, knowledge base will be empty")
		source = knowledge.NewStaticSource(nil)
	}
	ingestor := knowledge.NewIngestor(source, knowledge.Tables(cfg.Sheets.Tables), logger)
	cache := knowledge.NewCache(ingestor.Ingest, cfg.Consultation.CacheTTL, logger)

	// Model client; nil means every answer falls back to the canned responses.
	chatClient, err := llm.NewChatClient(&cfg.AI, logger)
	if err != nil {
		log.Fatalf("Failed to create chat client: %v", err)
	}

	consultationService := services.NewConsultationService(
		cache,
		retrieval.NewRetriever(cfg.Consultation.TopK, logger),
		services.NewResponseGenerator(chatClient, cfg.AI.Timeout, logger),
		persister,
		exchangeRepo,
		services.NewClaimsRoleResolver(),
		services.ConsultationConfig{
			HistoryLimit:    cfg.Consultation.HistoryLimit,
			MaxHistoryTurns: cfg.Consultation.MaxHistoryTurns,
		},
		logger,
	)

	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		JWKSEndpoints:      cfg.Auth.JWKSEndpoints,
	})
	if err != nil {
		log.Fatalf("Failed to create JWKS client: %v", err)
	}
	authMiddleware := auth.NewMiddleware(jwksClient, logger)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(cfg, logger)
	healthHandler.RegisterRoutes(mux)

	consultationHandler := handlers.NewConsultationHandler(consultationService, logger)
	consultationHandler.RegisterRoutes(mux, authMiddleware)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting petvizor-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// newLogger builds the process logger. Local runs get the human-readable
// development encoder, everything else logs structured JSON.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// connectDatabase opens the connection pool and applies pending migrations.
func connectDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*database.DB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := database.NewConnection(connectCtx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		return nil, err
	}

	// golang-migrate needs a database/sql handle
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		db.Close()
		return nil, err
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, migrationsPath, logger); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
