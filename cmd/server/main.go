package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/studylab/certprep/internal/config"
	"github.com/studylab/certprep/internal/delivery/httpapi"
	"github.com/studylab/certprep/internal/delivery/telegram"
	"github.com/studylab/certprep/internal/infra/postgres"
	"github.com/studylab/certprep/internal/infra/rediscache"
	"github.com/studylab/certprep/internal/logger"
	"github.com/studylab/certprep/internal/repository"
	"github.com/studylab/certprep/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		zlog.Fatal("database is not configured", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zlog.Fatal("failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := repository.ApplySchema(ctx, pool); err != nil {
		zlog.Fatal("failed to apply schema", zap.Error(err))
	}

	catalog, err := repository.NewCatalogRepository()
	if err != nil {
		zlog.Fatal("failed to load certification catalog", zap.Error(err))
	}

	flashcardRepo := repository.NewFlashcardRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	resultRepo := repository.NewResultRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)

	var cache service.BestResultCache = rediscache.Noop{}
	if cfg.RedisURL != "" {
		redisCache, err := rediscache.New(ctx, cfg.RedisURL, zlog)
		if err != nil {
			zlog.Warn("redis unavailable, best-result cache disabled", zap.Error(err))
		} else {
			defer redisCache.Close()
			cache = redisCache
		}
	}

	generator := service.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
	resultsService := service.NewResultsService(resultRepo, cache, zlog)
	studyService := service.NewStudyService(catalog, generator, flashcardRepo, resultsService, cfg.SessionRetention, zlog)
	readingService := service.NewReadingService(progressRepo, zlog)
	instructorService := service.NewInstructorService(catalog)

	reaper := service.NewReaperService(studyService, readingService, zlog)
	go reaper.Start(ctx)

	if cfg.TelegramAPIToken != "" {
		bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
		if err != nil {
			zlog.Fatal("failed to create telegram bot", zap.Error(err))
		}
		zlog.Info("telegram bot authorized", zap.String("account", bot.Self.UserName))

		tgHandler := telegram.NewHandler(bot, studyService, instructorService, zlog)
		go func() {
			if err := tgHandler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				zlog.Error("telegram handler stopped", zap.Error(err))
			}
		}()
	} else {
		zlog.Info("TELEGRAM_API_TOKEN not set, telegram surface disabled")
	}

	apiHandler := httpapi.NewHandler(
		studyService,
		resultsService,
		readingService,
		instructorService,
		flashcardRepo,
		questionRepo,
		zlog,
	)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.NewRouter(apiHandler),
	}

	go func() {
		zlog.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("http server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zlog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("http server shutdown failed", zap.Error(err))
	}
}
