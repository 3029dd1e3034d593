package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"careerlaunch-backend/internal/auth"
	"careerlaunch-backend/internal/career"
	"careerlaunch-backend/internal/generation"
	"careerlaunch-backend/internal/llm"
	"careerlaunch-backend/internal/llm/gemini"
	"careerlaunch-backend/internal/llm/openai"
	"careerlaunch-backend/internal/resumes"
	"careerlaunch-backend/internal/services/health"
	sharedauth "careerlaunch-backend/internal/shared/auth"
	"careerlaunch-backend/internal/shared/config"
	"careerlaunch-backend/internal/shared/server"
	"careerlaunch-backend/internal/shared/storage/db"
	"careerlaunch-backend/internal/shared/storage/object"
	localstore "careerlaunch-backend/internal/shared/storage/object/local"
	s3store "careerlaunch-backend/internal/shared/storage/object/s3"
	"careerlaunch-backend/internal/shared/telemetry"
	"careerlaunch-backend/internal/users"
)

// App holds shared dependencies and the configured router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	LLM    llm.Client
	Tokens *sharedauth.Tokens

	ResumesRepo    resumes.Repo
	GenerationRepo generation.Repo
	CareerRepo     career.Repo
	UsersRepo      users.Repo

	ResumesService    *resumes.Service
	GenerationService *generation.Service
	CareerService     *career.Service
	UsersService      *users.Service

	closers []io.Closer
}

// Option customizes Build.
type Option func(*options)

type options struct {
	llmClient llm.Client
}

// WithLLMClient replaces the provider client built from configuration.
func WithLLMClient(client llm.Client) Option {
	return func(o *options) {
		o.llmClient = client
	}
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "production"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB
	if sqlDB != nil {
		app.closers = append(app.closers, sqlDB)
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store

	app.LLM = o.llmClient
	if app.LLM == nil {
		client, err := NewLLMClient(ctx, cfg)
		if err != nil {
			app.Close()
			return nil, err
		}
		if closer, ok := client.(io.Closer); ok {
			app.closers = append(app.closers, closer)
		}
		app.LLM = client
	}

	tokens, err := sharedauth.NewTokens(cfg.JWTSecret, cfg.Env)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Tokens = tokens

	if err := buildServices(app); err != nil {
		app.Close()
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		Tokens:            tokens,
		Health:            health.NewService(health.Version),
		ResumeHandler:     resumes.NewHandler(app.ResumesService),
		GenerationHandler: generation.NewHandler(app.GenerationService),
		CareerHandler:     career.NewHandler(app.CareerService),
		LinkedInAuth: auth.NewLinkedInService(
			cfg.LinkedInClientID,
			cfg.LinkedInClientSecret,
			cfg.LinkedInRedirectURI,
			app.UsersService,
			tokens,
		),
	})

	return app, nil
}

// Close releases the database pool and provider clients.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required unless ENV=dev")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// NewLLMClient builds the provider client selected by cfg. In dev without an API
// key it returns a PlaceholderClient so the server still starts.
func NewLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	models := llm.Models{Standard: cfg.LLMModel, Lite: cfg.LLMLiteModel}
	switch strings.ToLower(strings.TrimSpace(cfg.LLMProvider)) {
	case "gemini":
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" && isDevLike(cfg.Env) {
			return llm.PlaceholderClient{Reason: "GEMINI_API_KEY not set"}, nil
		}
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, models)
	default:
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" && isDevLike(cfg.Env) {
			return llm.PlaceholderClient{Reason: "OPENAI_API_KEY not set"}, nil
		}
		return openai.NewClient(cfg.OpenAIAPIKey, models, cfg.LLMTimeout)
	}
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.GenerationRepo = &generation.PGRepo{DB: app.DB}
		app.CareerRepo = &career.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
	} else {
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.GenerationRepo = generation.NewMemoryRepo()
		app.CareerRepo = career.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.ResumesService = resumes.NewService(app.ResumesRepo, app.Store, app.LLM)
	app.GenerationService = generation.NewService(app.GenerationRepo, app.LLM)
	app.CareerService = career.NewService(app.CareerRepo, app.LLM)
	app.UsersService = users.NewService(app.UsersRepo, app.Config.BcryptCost)

	if app.ResumesService == nil || app.GenerationService == nil || app.CareerService == nil {
		return errors.New("failed to initialize services")
	}
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev":
		return true
	default:
		return false
	}
}
