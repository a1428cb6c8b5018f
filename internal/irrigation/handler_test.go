package irrigation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"agroadvisor-backend/internal/shared/server/middleware"
)

type staticVerifier struct{ username string }

func (v staticVerifier) Verify(token string) (string, error) {
	return v.username, nil
}

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.Auth(staticVerifier{username: "ramesh"}))
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any, token bool) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token {
		req.Header.Set("Authorization", "Bearer test-token")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScheduleEndpoint(t *testing.T) {
	repo := NewMemoryRepo()
	r := newTestRouter(NewService(repo))

	w := postJSON(t, r, "/api/v1/predictions/irrigation", Request{
		CropType:     "maize",
		SoilMoisture: 25,
		Temperature:  30,
		Humidity:     55,
		Rainfall:     2,
		CropStage:    StageVegetative,
	}, true)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var plan Plan
	if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !plan.IrrigationNeeded {
		t.Fatalf("expected irrigation needed at 25%% moisture")
	}

	// The run lands in the caller's history.
	records, err := repo.ListByUsername(context.Background(), "ramesh", 10)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(records))
	}
}

func TestScheduleEndpointRejectsUnknownStage(t *testing.T) {
	r := newTestRouter(NewService(nil))

	w := postJSON(t, r, "/api/v1/predictions/irrigation", Request{
		CropType:  "maize",
		CropStage: "germination",
	}, false)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", resp.Error.Code)
	}
}

func TestScheduleEndpointRejectsMalformedBody(t *testing.T) {
	r := newTestRouter(NewService(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/predictions/irrigation", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHistoryEndpointRequiresUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	// No Authorization header means anonymous.
	api.Use(middleware.Auth(staticVerifier{}))
	NewHandler(NewService(NewMemoryRepo())).RegisterRoutes(api)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history/irrigation", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
