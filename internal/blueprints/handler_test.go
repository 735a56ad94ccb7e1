package blueprints

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"stackfast/internal/catalog"
	"stackfast/internal/shared/server/middleware"
)

func setupRouter(t *testing.T, repo catalog.Repo, enh Enhancer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	NewHandler(newTestService(repo, enh)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestCreateBlueprint(t *testing.T) {
	router := setupRouter(t, sampleRepo(), nil)
	resp := postJSON(t, router, "/api/v1/blueprints", map[string]any{
		"projectIdea":  "a simple blog",
		"skillProfile": map[string]int{"setup": 1, "daily": 1},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		BlueprintID      string `json:"blueprintId"`
		Mode             string `json:"mode"`
		RecommendedStack []struct {
			ToolID string `json:"toolId"`
		} `json:"recommendedStack"`
		CostProjection struct {
			Breakdown []json.RawMessage `json:"breakdown"`
		} `json:"costProjection"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.BlueprintID != "bp-1" || out.Mode != ModeRuleBased {
		t.Fatalf("unexpected envelope %+v", out)
	}
	if len(out.RecommendedStack) == 0 || out.RecommendedStack[0].ToolID != "react" {
		t.Fatalf("expected react first, got %+v", out.RecommendedStack)
	}
	if len(out.CostProjection.Breakdown) != len(out.RecommendedStack) {
		t.Fatalf("breakdown/stack mismatch")
	}
}

func TestCreateBlueprintSetsModeForLogging(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var mode string
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Next()
		mode = c.GetString(middleware.BlueprintModeKey)
	})
	NewHandler(newTestService(sampleRepo(), nil)).RegisterRoutes(r.Group("/api/v1"))

	resp := postJSON(t, r, "/api/v1/blueprints", map[string]any{
		"projectIdea":  "a simple blog",
		"skillProfile": map[string]int{"setup": 1, "daily": 1},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if mode != ModeRuleBased {
		t.Fatalf("expected mode %q on the context, got %q", ModeRuleBased, mode)
	}
}

func TestCreateBlueprintValidation(t *testing.T) {
	router := setupRouter(t, sampleRepo(), nil)
	cases := []struct {
		name    string
		payload any
		code    string
	}{
		{name: "missing_idea", payload: map[string]any{"skillProfile": map[string]int{"setup": 1, "daily": 1}}, code: ErrorCodeValidation},
		{name: "skill_out_of_range", payload: map[string]any{"projectIdea": "x", "skillProfile": map[string]int{"setup": 0, "daily": 6}}, code: ErrorCodeValidation},
		{name: "too_many_preferences", payload: map[string]any{
			"projectIdea":      "x",
			"skillProfile":     map[string]int{"setup": 1, "daily": 1},
			"preferredToolIds": []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
		}, code: ErrorCodeValidation},
		{name: "not_an_object", payload: []int{1, 2}, code: ErrorCodeInvalidJSON},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, router, "/api/v1/blueprints", tc.payload)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.Code)
			}
			var env errorEnvelope
			if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if env.Error.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, env.Error.Code)
			}
		})
	}
}

func TestCreateBlueprintCatalogUnavailable(t *testing.T) {
	router := setupRouter(t, failingRepo{err: errors.New("down")}, nil)
	resp := postJSON(t, router, "/api/v1/blueprints", map[string]any{
		"projectIdea":  "a simple blog",
		"skillProfile": map[string]int{"setup": 1, "daily": 1},
	})
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	var env errorEnvelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	if env.Error.Code != ErrorCodeCatalogUnavailable {
		t.Fatalf("expected catalog_unavailable, got %s", env.Error.Code)
	}
}

func TestCreateEnhancedBlueprintFallsBack(t *testing.T) {
	router := setupRouter(t, sampleRepo(), &stubEnhancer{err: errors.New("malformed json")})
	resp := postJSON(t, router, "/api/v1/blueprints/enhanced", map[string]any{
		"projectIdea":  "a simple blog",
		"skillProfile": map[string]int{"setup": 1, "daily": 1},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["mode"] != ModeRuleBased {
		t.Fatalf("expected rule-based mode, got %v", out["mode"])
	}
	if _, ok := out["aiAnalysis"]; ok {
		t.Fatalf("did not expect aiAnalysis on fallback")
	}
}

func TestListTools(t *testing.T) {
	router := setupRouter(t, sampleRepo(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tools?category=database", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var out ToolListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Total != 1 || out.Items[0].ID != "postgres" || out.Items[0].CostModel == nil {
		t.Fatalf("unexpected tools %+v", out)
	}
	if len(out.Categories) != 1 || out.Categories[0] != "database" {
		t.Fatalf("unexpected categories %v", out.Categories)
	}
}
