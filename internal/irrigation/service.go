package irrigation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"agroadvisor-backend/internal/apperr"
	"agroadvisor-backend/internal/shared/metrics"
	"agroadvisor-backend/internal/shared/telemetry"
)

// Service validates scheduling requests, runs the engine and records history
// for authenticated callers.
type Service struct {
	Repo Repo
	now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Schedule computes the irrigation plan. When username is non-empty and a
// repo is configured, the run is saved to the user's history; persistence
// failures are logged but do not fail the request.
func (s *Service) Schedule(ctx context.Context, username string, req Request) (Plan, error) {
	start := metrics.NowMillis()

	if err := validate(req); err != nil {
		metrics.IncPrediction("irrigation", "invalid")
		return Plan{}, err
	}

	plan := BuildPlan(req, s.now())

	if s.Repo != nil && username != "" {
		rec := Record{
			ID:        uuid.NewString(),
			Username:  username,
			Request:   req,
			Plan:      plan,
			CreatedAt: s.now().UTC(),
		}
		if err := s.Repo.Insert(ctx, rec); err != nil {
			telemetry.Error("irrigation.history_insert_failed", map[string]any{
				"username": username,
				"error":    err.Error(),
			})
		}
	}

	metrics.IncPrediction("irrigation", "ok")
	metrics.ObservePredictionDurationMs(metrics.NowMillis() - start)
	return plan, nil
}

// History returns the user's most recent scheduling runs, newest first.
func (s *Service) History(ctx context.Context, username string, limit int) ([]Record, error) {
	if s.Repo == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListByUsername(ctx, username, limit)
}

func validate(req Request) error {
	if strings.TrimSpace(req.CropType) == "" {
		return fmt.Errorf("crop_type is required: %w", apperr.ErrInvalidInput)
	}
	stage := strings.ToLower(strings.TrimSpace(req.CropStage))
	if !validStage(stage) {
		return fmt.Errorf("unknown crop_stage %q: %w", req.CropStage, apperr.ErrInvalidInput)
	}
	if req.SoilMoisture < 0 || req.SoilMoisture > 100 {
		return fmt.Errorf("soil_moisture must be between 0 and 100: %w", apperr.ErrInvalidInput)
	}
	if req.Humidity < 0 || req.Humidity > 100 {
		return fmt.Errorf("humidity must be between 0 and 100: %w", apperr.ErrInvalidInput)
	}
	if req.Rainfall < 0 {
		return fmt.Errorf("rainfall must not be negative: %w", apperr.ErrInvalidInput)
	}
	return nil
}
