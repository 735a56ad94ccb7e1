package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Catalog sources.
const (
	CatalogSourcePostgres = "postgres"
	CatalogSourceObject   = "object"
	CatalogSourceMemory   = "memory"
)

// LLM providers.
const (
	LLMProviderNone   = "none"
	LLMProviderOpenAI = "openai"
	LLMProviderAzure  = "azure"
	LLMProviderOllama = "ollama"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	CORSAllowOrigin []string

	DatabaseURL   string
	CatalogSource string
	CatalogPrefix string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string

	LLMProvider         string
	LLMModel            string
	LLMTimeoutSeconds   int
	OpenAIAPIKey        string
	OpenAIBaseURL       string
	AzureEndpoint       string
	AzureAPIKey         string
	AzureDeployment     string
	OllamaHost          string
	MaxStackSize        int
	AcceptanceThreshold float64

	RateLimitBlueprintsPerMin int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	source := normalizeCatalogSource(getEnv("CATALOG_SOURCE", ""), dbURL)

	if env == "production" && source == CatalogSourcePostgres && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),

		DatabaseURL:   dbURL,
		CatalogSource: source,
		CatalogPrefix: getEnv("CATALOG_PREFIX", "catalog"),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),

		LLMProvider:         NormalizeProvider(getEnv("LLM_PROVIDER", LLMProviderNone)),
		LLMModel:            getEnv("LLM_MODEL", ""),
		LLMTimeoutSeconds:   getEnvInt("LLM_TIMEOUT_SECONDS", 60),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", ""),
		AzureEndpoint:       getEnv("AZURE_OPENAI_ENDPOINT", ""),
		AzureAPIKey:         getEnv("AZURE_OPENAI_KEY", ""),
		AzureDeployment:     getEnv("AZURE_OPENAI_DEPLOYMENT", ""),
		OllamaHost:          getEnv("OLLAMA_HOST", ""),
		MaxStackSize:        getEnvInt("MAX_STACK_SIZE", 6),
		AcceptanceThreshold: getEnvFloat("ACCEPTANCE_THRESHOLD", 40),

		RateLimitBlueprintsPerMin: getEnvInt("RATE_LIMIT_BLUEPRINTS_PER_MIN", 30),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return v
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

// normalizeCatalogSource defaults to Postgres when a database is configured and to
// object-store partitions otherwise.
func normalizeCatalogSource(raw, dbURL string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg", "db":
		return CatalogSourcePostgres
	case "object", "files", "s3", "local":
		return CatalogSourceObject
	case "memory":
		return CatalogSourceMemory
	}
	if dbURL != "" {
		return CatalogSourcePostgres
	}
	return CatalogSourceObject
}

// NormalizeProvider maps provider aliases onto the LLMProvider constants; unknown values disable the provider.
func NormalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return LLMProviderOpenAI
	case "azure", "azure-openai", "azopenai":
		return LLMProviderAzure
	case "ollama":
		return LLMProviderOllama
	default:
		return LLMProviderNone
	}
}
