package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

const maxPoolConns = 10

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	sweeper   *quiz.Sweeper
	bgCancels []context.CancelFunc
}

// New bootstraps configs, logger, Postgres, Redis and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	poolCfg.MaxConns = maxPoolConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	queries := sqlcgen.New(pool)

	questionRepo := repository.NewQuestionRepository(queries)
	categoryRepo := repository.NewCategoryRepository(queries)

	categoryCache := question.NewCache(redisClient, cfg.Cache.CategoryTTL)
	questionSvc := question.NewService(questionRepo, categoryRepo, categoryCache, logger)
	questionHandlers := question.NewHTTPHandlers(questionSvc, logger)

	var (
		rounds  quiz.RoundStore
		sweeper *quiz.Sweeper
	)
	switch cfg.Quiz.Store {
	case config.QuizStoreMemory:
		memStore := quiz.NewMemoryStore(cfg.Quiz.RoundTTL)
		sweeper = quiz.NewSweeper(memStore, cfg.Quiz.SweepInterval, logger)
		rounds = memStore
		logger.Warn().Msg("quiz rounds kept in process memory; not shared across instances")
	default:
		rounds = quiz.NewRedisStore(redisClient, cfg.Quiz.RoundTTL, cfg.Quiz.KeyPrefix, logger)
	}

	quizSvc := quiz.NewService(questionRepo, rounds, logger)
	quizHandlers := quiz.NewHTTPHandlers(quizSvc, logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, questionHandlers, quizHandlers)

	return &Application{
		cfg:       cfg,
		logger:    logger,
		pool:      pool,
		redis:     redisClient,
		http:      apiServer,
		sweeper:   sweeper,
		bgCancels: make([]context.CancelFunc, 0, 1),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.sweeper != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.sweeper.Run(bgCtx); err != nil && err != context.Canceled {
				a.logger.Warn().Err(err).Msg("quiz round sweeper stopped")
			}
		}()
	}
}
