package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"innerlog/internal/db"
	"innerlog/internal/handlers"
	"innerlog/internal/insights"
	mw "innerlog/internal/middleware"
	"innerlog/internal/sentiment"
	"innerlog/internal/storage"
	"innerlog/internal/store"
)

func mustGetenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func buildObjectStore(zlog *zap.Logger) storage.ObjectStore {
	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		slog.Warn("STORAGE_BUCKET not set; photo uploads use the stub store")
		return storage.NewStubStore(os.Getenv("STORAGE_PUBLIC_URL"), zlog)
	}
	s3Store, err := storage.NewS3Store(storage.S3Config{
		Endpoint:      os.Getenv("STORAGE_ENDPOINT"),
		Region:        mustGetenv("STORAGE_REGION", "us-east-1"),
		Bucket:        bucket,
		AccessKey:     os.Getenv("STORAGE_ACCESS_KEY"),
		SecretKey:     os.Getenv("STORAGE_SECRET_KEY"),
		PublicBaseURL: os.Getenv("STORAGE_PUBLIC_URL"),
		UsePathStyle:  os.Getenv("STORAGE_PATH_STYLE") == "true",
	}, storage.WithLogger(zlog))
	if err != nil {
		slog.Error("failed to configure object storage", slog.Any("err", err))
		os.Exit(1)
	}
	return s3Store
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	zlog, err := zap.NewProduction()
	if err != nil {
		slog.Error("failed to build logger", slog.Any("err", err))
		os.Exit(1)
	}
	defer zlog.Sync()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	port := mustGetenv("PORT", "8080")

	dbConn, err := sqlx.Open("pgx", databaseURL)
	if err != nil {
		slog.Error("failed to open db", slog.Any("err", err))
		os.Exit(1)
	}
	dbConn.SetMaxOpenConns(10)
	dbConn.SetConnMaxLifetime(2 * time.Hour)
	if err = dbConn.Ping(); err != nil {
		slog.Error("failed to ping db", slog.Any("err", err))
		os.Exit(1)
	}
	if err := db.RunMigrations(dbConn); err != nil {
		slog.Error("failed migrations", slog.Any("err", err))
		os.Exit(1)
	}

	journalStore := store.NewJournalStore(dbConn, zlog)
	insightStore := store.NewInsightStore(dbConn, zlog)
	profileStore := store.NewProfileStore(dbConn, zlog)

	uploader := storage.NewUploader(buildObjectStore(zlog), zlog)

	timeoutSecs, err := strconv.Atoi(mustGetenv("INSIGHT_TIMEOUT_SECONDS", "120"))
	if err != nil || timeoutSecs < 0 {
		slog.Error("invalid INSIGHT_TIMEOUT_SECONDS")
		os.Exit(1)
	}
	generator := insights.NewScriptGenerator(
		mustGetenv("PYTHON_BIN", "python"),
		mustGetenv("INSIGHTS_SCRIPT", "scripts/generate_insight.py"),
		time.Duration(timeoutSecs)*time.Second,
		zlog)

	var sentimentClient *sentiment.Client
	if url := os.Getenv("SENTIMENT_API_URL"); url != "" {
		sentimentClient = sentiment.NewClient(url, zlog)
	} else {
		slog.Warn("SENTIMENT_API_URL not set; entries save without sentiment analysis")
	}

	journalHandler := handlers.NewJournalHandler(journalStore, insightStore, uploader, generator, sentimentClient, zlog)
	trendsHandler := handlers.NewTrendsHandler(journalStore, zlog)
	insightsHandler := handlers.NewInsightsHandler(journalStore, insightStore, generator, zlog)
	profileHandler := handlers.NewProfileHandler(profileStore, zlog)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.ZapRequestLogger(zlog))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	registerRoutes := func(api chi.Router) {
		api.Post("/journal-entries", journalHandler.Create)
		api.Get("/get-journal-entries", journalHandler.List)
		api.Get("/weekly-trends", trendsHandler.Weekly)
		api.Post("/weekly-summaries", insightsHandler.GenerateWeeklySummary)
		api.Get("/weekly_ai_summaries", insightsHandler.LatestWeeklySummary)
		api.Get("/ai-insights", insightsHandler.Recent)
		api.Post("/user-hobby", profileHandler.SaveHobbies)
		api.Post("/profiles", profileHandler.Update)
	}

	// With AUTH_JWT_SECRET set, every route requires a provider access token.
	if jwtSecret := os.Getenv("AUTH_JWT_SECRET"); jwtSecret != "" {
		authMW := mw.NewAuthMiddleware([]byte(jwtSecret))
		r.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)
			registerRoutes(pr)
		})
	} else {
		slog.Warn("AUTH_JWT_SECRET not set; endpoints are unauthenticated")
		registerRoutes(r)
	}

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		slog.Info("server starting", slog.String("addr", ":"+port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.Any("err", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	slog.Info("server stopped")
}
