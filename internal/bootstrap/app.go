package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stackfast/internal/blueprints"
	"stackfast/internal/blueprints/engine"
	"stackfast/internal/blueprints/enhance"
	"stackfast/internal/catalog"
	"stackfast/internal/llm"
	azurellm "stackfast/internal/llm/azure"
	ollamallm "stackfast/internal/llm/ollama"
	openai "stackfast/internal/llm/openai"
	"stackfast/internal/services/health"
	"stackfast/internal/shared/config"
	"stackfast/internal/shared/server"
	"stackfast/internal/shared/storage/db"
	"stackfast/internal/shared/storage/object"
	localstore "stackfast/internal/shared/storage/object/local"
	s3store "stackfast/internal/shared/storage/object/s3"
	"stackfast/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	DB                *sql.DB
	Store             object.ObjectStore
	Catalog           catalog.Repo
	LLM               llm.Client
	BlueprintsService *blueprints.Service
	BlueprintsHandler *blueprints.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	telemetry.Configure(cfg.LogLevel)
	ctx := context.Background()

	app := &App{Config: cfg}

	if cfg.CatalogSource == config.CatalogSourcePostgres {
		sqlDB, err := buildDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.DB = sqlDB
	}
	if app.DB == nil || cfg.CatalogSource != config.CatalogSourcePostgres {
		store, err := buildStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.Store = store
	}

	repo, err := buildCatalog(ctx, app)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Catalog = repo

	client, err := BuildLLM(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.LLM = client

	opts := engine.Options{MaxStackSize: cfg.MaxStackSize, AcceptanceThreshold: cfg.AcceptanceThreshold}
	var enhancer blueprints.Enhancer
	if client != nil {
		enhancer = enhance.NewEnhancer(client, cfg.MaxStackSize)
	}
	app.BlueprintsService = blueprints.NewService(repo, enhancer, opts)
	app.BlueprintsHandler = blueprints.NewHandler(app.BlueprintsService)

	app.Router = server.NewRouter(server.RouterDeps{
		Blueprints:      app.BlueprintsHandler,
		Health:          health.NewService(repo),
		CORSOrigins:     cfg.CORSAllowOrigin,
		RateLimitPerMin: cfg.RateLimitBlueprintsPerMin,
	})

	log.Printf("bootstrap: env=%s catalog=%s llm=%s", cfg.Env, cfg.CatalogSource, cfg.LLMProvider)
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; reading catalog from object store")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required for CATALOG_SOURCE=postgres")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; reading catalog from object store: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

// BuildStore returns the object store selected by OBJECT_STORE.
func BuildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	return buildStore(ctx, cfg)
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.ObjectStoreType)) {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildCatalog(ctx context.Context, app *App) (catalog.Repo, error) {
	if app.DB != nil {
		return &catalog.PGRepo{DB: app.DB}, nil
	}
	objectRepo := &catalog.ObjectRepo{Store: app.Store, Prefix: app.Config.CatalogPrefix}
	if app.Config.CatalogSource != config.CatalogSourceMemory {
		return objectRepo, nil
	}

	// The memory source snapshots the partition files once at startup.
	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	tools, err := objectRepo.ListTools(loadCtx)
	if err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}
	log.Printf("bootstrap: loaded %d catalog tools into memory", len(tools))
	return catalog.NewMemoryRepo(tools...), nil
}

// BuildLLM returns the provider client selected by LLM_PROVIDER wrapped with a
// single retry, or nil when no provider is configured.
func BuildLLM(cfg config.Config) (llm.Client, error) {
	var (
		client llm.Client
		err    error
	)
	switch cfg.LLMProvider {
	case config.LLMProviderOpenAI:
		opts := []openai.Option{openai.WithTimeout(time.Duration(cfg.LLMTimeoutSeconds) * time.Second)}
		if strings.TrimSpace(cfg.OpenAIBaseURL) != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
		}
		client, err = openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, opts...)
	case config.LLMProviderAzure:
		client, err = azurellm.NewClient(cfg.AzureEndpoint, cfg.AzureAPIKey, cfg.AzureDeployment)
	case config.LLMProviderOllama:
		client, err = ollamallm.NewClient(cfg.OllamaHost, cfg.LLMModel)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("init %s client: %w", cfg.LLMProvider, err)
	}
	return llm.WithRetry(client), nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
