package crops

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"agroadvisor-backend/internal/apperr"
	"agroadvisor-backend/internal/inference"
	"agroadvisor-backend/internal/shared/metrics"
	"agroadvisor-backend/internal/shared/telemetry"
)

// Service runs the crop model and decorates its verdict with reasoning.
type Service struct {
	Classifier inference.CropClassifier
	Repo       Repo
	now        func() time.Time
}

func NewService(classifier inference.CropClassifier, repo Repo) *Service {
	return &Service{Classifier: classifier, Repo: repo, now: time.Now}
}

// Recommend scores the readings against the crop model. History is recorded
// for authenticated callers; persistence failures are logged, not returned.
func (s *Service) Recommend(ctx context.Context, username string, req Request) (Recommendation, error) {
	start := metrics.NowMillis()

	if err := validate(req); err != nil {
		metrics.IncPrediction("crop", "invalid")
		return Recommendation{}, err
	}

	pred, err := s.Classifier.Predict(ctx, inference.CropFeatures{
		Nitrogen:    req.Nitrogen,
		Phosphorus:  req.Phosphorus,
		Potassium:   req.Potassium,
		Temperature: req.Temperature,
		Humidity:    req.Humidity,
		PH:          req.PH,
		Rainfall:    req.Rainfall,
	})
	if err != nil {
		metrics.IncPrediction("crop", "error")
		return Recommendation{}, classificationError(err)
	}

	rec := Recommendation{
		RecommendedCrop: pred.Label,
		Reasoning:       reasoning(pred.Label, req),
	}
	if len(pred.Probs) > 0 {
		conf := maxProb(pred.Probs)
		rec.Confidence = &conf
		rec.AlternativeCrops = alternatives(pred.Labels, pred.Probs)
	}

	if s.Repo != nil && username != "" {
		record := Record{
			ID:             uuid.NewString(),
			Username:       username,
			Request:        req,
			Recommendation: rec,
			CreatedAt:      s.now().UTC(),
		}
		if err := s.Repo.Insert(ctx, record); err != nil {
			telemetry.Error("crops.history_insert_failed", map[string]any{
				"username": username,
				"error":    err.Error(),
			})
		}
	}

	metrics.IncPrediction("crop", "ok")
	metrics.ObservePredictionDurationMs(metrics.NowMillis() - start)
	return rec, nil
}

// History returns the user's most recent recommendations, newest first.
func (s *Service) History(ctx context.Context, username string, limit int) ([]Record, error) {
	if s.Repo == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListByUsername(ctx, username, limit)
}

// classificationError keeps already-classified and context errors intact and
// treats anything else the model reports as a rejection of the readings.
func classificationError(err error) error {
	switch {
	case errors.Is(err, apperr.ErrUnavailable),
		errors.Is(err, apperr.ErrInvalidInput),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("crop classification failed: %v: %w", err, apperr.ErrInvalidInput)
}

func validate(req Request) error {
	if req.Nitrogen < 0 || req.Phosphorus < 0 || req.Potassium < 0 {
		return fmt.Errorf("nutrient values must not be negative: %w", apperr.ErrInvalidInput)
	}
	if req.Humidity < 0 || req.Humidity > 100 {
		return fmt.Errorf("humidity must be between 0 and 100: %w", apperr.ErrInvalidInput)
	}
	if req.PH < 0 || req.PH > 14 {
		return fmt.Errorf("ph must be between 0 and 14: %w", apperr.ErrInvalidInput)
	}
	if req.Rainfall < 0 {
		return fmt.Errorf("rainfall must not be negative: %w", apperr.ErrInvalidInput)
	}
	return nil
}

func maxProb(probs []float64) float64 {
	best := probs[0]
	for _, p := range probs[1:] {
		if p > best {
			best = p
		}
	}
	return best
}

// alternatives returns the runner-up crops: the two labels that follow the
// winner in descending probability. Ties keep the model's class order.
func alternatives(labels []string, probs []float64) []string {
	n := len(labels)
	if n != len(probs) || n < 2 {
		return nil
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return probs[order[a]] > probs[order[b]]
	})
	out := make([]string, 0, 2)
	for _, idx := range order[1:] {
		out = append(out, labels[idx])
		if len(out) == 2 {
			break
		}
	}
	return out
}

func reasoning(crop string, req Request) string {
	var reasons []string

	if req.Temperature < 15 {
		reasons = append(reasons, "Cool temperature suitable for cold-season crops")
	} else if req.Temperature > 30 {
		reasons = append(reasons, "High temperature favorable for heat-tolerant crops")
	}

	if req.Rainfall > 200 {
		reasons = append(reasons, "High rainfall supports water-intensive crops")
	} else if req.Rainfall < 50 {
		reasons = append(reasons, "Low rainfall requires drought-resistant crops")
	}

	if req.PH < 6 {
		reasons = append(reasons, "Acidic soil conditions")
	} else if req.PH > 7.5 {
		reasons = append(reasons, "Alkaline soil conditions")
	}

	reasons = append(reasons, fmt.Sprintf("N:P:K ratio of %.0f:%.0f:%.0f", req.Nitrogen, req.Phosphorus, req.Potassium))

	return fmt.Sprintf("%s is recommended based on: %s", capitalize(crop), strings.Join(reasons, ", "))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
