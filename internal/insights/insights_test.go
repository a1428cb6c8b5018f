package insights

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestOverviewEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler().RegisterRoutes(r.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/insights", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var overview Overview
	if err := json.Unmarshal(w.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	if len(overview.CropPatterns) != 3 {
		t.Fatalf("expected 3 crop patterns, got %d", len(overview.CropPatterns))
	}
	if len(overview.IrrigationTips) == 0 {
		t.Fatalf("expected irrigation tips")
	}
	if overview.SeasonalRecommendations.CurrentSeason == "" {
		t.Fatalf("expected current season")
	}
	if len(overview.PestAlerts) != 3 {
		t.Fatalf("expected 3 pest alerts, got %d", len(overview.PestAlerts))
	}
}

func TestCropPatternsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler().RegisterRoutes(r.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crop-patterns", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Patterns []CropPattern `json:"patterns"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Patterns[1].Season != "Rabi" || resp.Patterns[1].SuccessRate != 88 {
		t.Fatalf("unexpected Rabi pattern: %+v", resp.Patterns[1])
	}
}
