package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"stackfast/internal/shared/config"
)

const frontendPartition = `
category: Frontend Framework
tools:
  - id: react
    name: React
    skills: {setup: 2, daily: 2}
    pricing_model: free
    popularity_score: 0.95
    community_sentiment: highly_positive
  - id: vue
    name: Vue
    skills: {setup: 2, daily: 2}
    pricing_model: free
    popularity_score: 0.8
    community_sentiment: positive
`

func writePartition(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, "catalog", name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write partition: %v", err)
	}
}

func testConfig(dir, source string) config.Config {
	return config.Config{
		Env:                       "dev",
		LogLevel:                  "error",
		CatalogSource:             source,
		CatalogPrefix:             "catalog",
		ObjectStoreType:           "local",
		LocalStoreDir:             dir,
		LLMProvider:               config.LLMProviderNone,
		MaxStackSize:              6,
		AcceptanceThreshold:       40,
		RateLimitBlueprintsPerMin: 30,
	}
}

func TestBuildServesCatalogFromObjectStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	writePartition(t, dir, "frontend.yaml", frontendPartition)

	app, err := Build(testConfig(dir, config.CatalogSourceObject))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer app.Close()

	if app.DB != nil {
		t.Fatalf("expected no database for object source")
	}
	if app.LLM != nil {
		t.Fatalf("expected no llm client when provider is none")
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/tools", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"react"`) {
		t.Fatalf("expected react in catalog, got %s", resp.Body.String())
	}
}

func TestBuildMemorySnapshotsCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	writePartition(t, dir, "frontend.yaml", frontendPartition)

	app, err := Build(testConfig(dir, config.CatalogSourceMemory))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer app.Close()

	// Later edits to the partition files are not visible to a memory snapshot.
	if err := os.RemoveAll(filepath.Join(dir, "catalog")); err != nil {
		t.Fatalf("remove catalog: %v", err)
	}

	body := `{"projectIdea":"a simple blog","skillProfile":{"setup":2,"daily":2}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/blueprints/enhanced", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"mode":"rule-based"`) {
		t.Fatalf("expected rule-based fallback without a provider, got %s", resp.Body.String())
	}
}

func TestBuildRequiresBucketForS3(t *testing.T) {
	cfg := testConfig(t.TempDir(), config.CatalogSourceObject)
	cfg.ObjectStoreType = "s3"
	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected error when S3_BUCKET is empty")
	}
}

func TestBuildPostgresRequiresURLOutsideDev(t *testing.T) {
	cfg := testConfig(t.TempDir(), config.CatalogSourcePostgres)
	cfg.Env = "production"
	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected error when DATABASE_URL is empty in production")
	}
}

func TestBuildLLM(t *testing.T) {
	client, err := BuildLLM(config.Config{LLMProvider: config.LLMProviderNone})
	if err != nil || client != nil {
		t.Fatalf("expected nil client for provider none, got %v, %v", client, err)
	}

	client, err = BuildLLM(config.Config{LLMProvider: config.LLMProviderOpenAI, LLMModel: "gpt-4o-mini", OpenAIAPIKey: "sk-test"})
	if err != nil || client == nil {
		t.Fatalf("expected openai client, got %v, %v", client, err)
	}

	if _, err := BuildLLM(config.Config{LLMProvider: config.LLMProviderOpenAI, LLMModel: "gpt-4o-mini"}); err == nil {
		t.Fatalf("expected error for missing OPENAI_API_KEY")
	}

	client, err = BuildLLM(config.Config{LLMProvider: config.LLMProviderOllama, LLMModel: "llama3"})
	if err != nil || client == nil {
		t.Fatalf("expected ollama client, got %v, %v", client, err)
	}
}
