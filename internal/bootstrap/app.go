package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/auth"
	"docvault-backend/internal/documents"
	"docvault-backend/internal/ingestion"
	sharedauth "docvault-backend/internal/shared/auth"
	"docvault-backend/internal/shared/config"
	"docvault-backend/internal/shared/server"
	"docvault-backend/internal/shared/storage/db"
	"docvault-backend/internal/shared/storage/object"
	localstore "docvault-backend/internal/shared/storage/object/local"
	s3store "docvault-backend/internal/shared/storage/object/s3"
	"docvault-backend/internal/shared/telemetry"
	"docvault-backend/internal/users"
)

const devSecret = "dev-secret"

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Tokens *sharedauth.TokenService

	UsersRepo     users.Repo
	DocumentsRepo documents.Repo
	IngestionRepo ingestion.Repo

	AuthService      *auth.Service
	UsersService     *users.Service
	DocumentsService *documents.Service
	IngestionService *ingestion.Service

	AuthHandler      *auth.Handler
	UsersHandler     *users.Handler
	DocumentsHandler *documents.Handler
	IngestionHandler *ingestion.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	telemetry.Init(telemetry.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	secret := strings.TrimSpace(cfg.JWTSecret)
	if secret == "" {
		if !cfg.IsDevLike() {
			return nil, fmt.Errorf("JWT_SECRET is required in %s", cfg.Env)
		}
		logger := telemetry.Get()
		logger.Warn().Msg("JWT_SECRET empty; using dev secret")
		secret = devSecret
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Tokens: sharedauth.NewTokenService(secret, cfg.TokenTTL),
	}
	app.buildServices()

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		Tokens:           app.Tokens,
		AuthHandler:      app.AuthHandler,
		UserHandler:      app.UsersHandler,
		DocumentHandler:  app.DocumentsHandler,
		IngestionHandler: app.IngestionHandler,
	})

	return app, nil
}

// Close releases held resources.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			logger := telemetry.Get()
			logger.Warn().Msg("DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required in %s", cfg.Env)
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultServerOptions())
	if err != nil {
		if cfg.IsDevLike() {
			logger := telemetry.Get()
			logger.Warn().Err(err).Msg("database connect failed; using in-memory repositories")
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if cfg.IsDevLike() {
			logger := telemetry.Get()
			logger.Warn().Err(err).Msg("migrations failed; using in-memory repositories")
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func (a *App) buildServices() {
	if a.DB != nil {
		a.UsersRepo = &users.PGRepo{DB: a.DB}
		a.DocumentsRepo = &documents.PGRepo{DB: a.DB}
		a.IngestionRepo = &ingestion.PGRepo{DB: a.DB}
	} else {
		a.UsersRepo = users.NewMemoryRepo()
		a.DocumentsRepo = documents.NewMemoryRepo()
		a.IngestionRepo = ingestion.NewMemoryRepo()
	}

	a.AuthService = auth.NewService(a.UsersRepo, a.Tokens)
	a.UsersService = users.NewService(a.UsersRepo)
	a.DocumentsService = &documents.Service{Store: a.Store, Repo: a.DocumentsRepo}
	a.IngestionService = &ingestion.Service{Repo: a.IngestionRepo}

	a.AuthHandler = auth.NewHandler(a.AuthService)
	a.UsersHandler = users.NewHandler(a.UsersService)
	a.DocumentsHandler = documents.NewHandler(a.DocumentsService)
	a.IngestionHandler = ingestion.NewHandler(a.IngestionService)
}
