package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"survey-service/internal/app"
	"survey-service/internal/config"
	"survey-service/internal/domain"
	"survey-service/internal/infra/files"
	"survey-service/internal/infra/memory"
	pgstore "survey-service/internal/infra/postgres"
	redisstore "survey-service/internal/infra/redis"
	"survey-service/internal/infra/sqlite"
	transport "survey-service/internal/transport/http"
	"survey-service/internal/ui"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the survey server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}

	checks := make(map[string]func(context.Context) error)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		checks["postgres"] = pool.Ping
	}

	var loader memory.SurveyLoader
	if pool != nil {
		loader = pgstore.NewSurveyLoader(pool)
	} else {
		loader = surveyFiles(logger, cfg.Surveys.Dir)
	}

	surveyTTL := config.TTLDuration(cfg.Surveys.TTL, 10*time.Minute)
	var surveyRepo app.SurveyRepository
	if redisClient != nil {
		surveyRepo = redisstore.NewSurveyRepository(redisClient, loader, surveyTTL)
	} else {
		surveyRepo = memory.NewSurveyRepository(loader, surveyTTL)
	}

	var responses app.ResponseRepository
	switch cfg.Storage.Responses {
	case config.StorageSQLite:
		store, err := sqlite.NewResponseStore(cfg.SQLite.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		checks["sqlite"] = store.Ping
		responses = store
	case config.StoragePostgres:
		responses = pgstore.NewResponseStore(pool)
	default:
		responses = memory.NewResponseStore()
	}

	var challenges app.ChallengeRepository
	var feeds app.FeedRepository
	if redisClient != nil {
		challenges = redisstore.NewChallengeStore(redisClient)
		feeds = redisstore.NewFeedStore(redisClient)
	} else {
		challenges = memory.NewChallengeStore()
		feeds = memory.NewFeedStore()
	}

	captcha := app.NewCaptchaService(challenges, app.CaptchaOptions{
		MaxOperand:  cfg.Captcha.MaxOperand,
		MaxAttempts: cfg.Captcha.MaxAttempts,
		TTL:         config.TTLDuration(cfg.Captcha.TTL, time.Hour),
	})
	surveys := app.NewSurveyService(surveyRepo, responses, feeds)

	sessionKey := []byte(cfg.Server.SessionKey)
	if len(sessionKey) == 0 {
		// sessions will not survive a restart
		logger.Warn("server.session_key not set, generating an ephemeral key")
		sessionKey = securecookie.GenerateRandomKey(32)
	}

	handler := transport.NewHandler(transport.Options{
		Captcha:  captcha,
		Surveys:  surveys,
		Sessions: transport.NewSessionStore(sessionKey, cfg.Server.SecureCookies),
		Theme:    cfg.Theme,
		Footer:   ui.DefaultFooterContent(),
		Logger:   logger,
		Checks:   checks,
	})

	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		// no WriteTimeout: websocket feeds stay open
		IdleTimeout: 120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting survey service",
			"addr", server.Addr,
			"responses", cfg.Storage.Responses,
			"redis", redisClient != nil,
			"postgres", pool != nil,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// surveyFiles loads the survey directory, falling back to a built-in sample when it is missing.
func surveyFiles(logger *slog.Logger, dir string) memory.SurveyLoader {
	loader, err := files.LoadDir(dir)
	if err != nil {
		logger.Warn("survey directory unavailable, serving the sample survey", "dir", dir, "error", err)
		return memory.NewStaticSurveyLoader(sampleSurvey())
	}
	return loader
}

func sampleSurvey() domain.Survey {
	return domain.Survey{
		Title:       "Neighbourhood services",
		Description: "Tell us what would make daily life in the area easier.",
		Questions: []domain.Question{
			{Text: "Which public service should be improved first?"},
			{Text: "How could the local library serve you better?"},
		},
	}
}
