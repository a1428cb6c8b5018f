package diseases

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"agroadvisor-backend/internal/apperr"
	"agroadvisor-backend/internal/imaging"
	"agroadvisor-backend/internal/inference"
	"agroadvisor-backend/internal/shared/metrics"
	"agroadvisor-backend/internal/shared/storage/object"
	"agroadvisor-backend/internal/shared/telemetry"
)

// Service preprocesses leaf uploads, scores them against the disease model and
// grades the result. Uploads are archived when an object store is configured.
type Service struct {
	Classifier inference.ImageClassifier
	Repo       Repo
	Store      object.Store
	classes    []string
	now        func() time.Time

	// Taxonomy alignment happens once, on the first reported model width,
	// so a mismatch warns a single time instead of on every request.
	alignOnce sync.Once
	aligned   []string
}

func NewService(classifier inference.ImageClassifier, repo Repo, store object.Store) *Service {
	return &Service{
		Classifier: classifier,
		Repo:       repo,
		Store:      store,
		classes:    DefaultClasses,
		now:        time.Now,
	}
}

// Detect runs the full pipeline on a raw upload. filename is only used to
// name the archived copy.
func (s *Service) Detect(ctx context.Context, username, filename string, imageBytes []byte) (Detection, error) {
	start := metrics.NowMillis()

	info, err := s.Classifier.Info(ctx)
	if err != nil {
		metrics.IncPrediction("disease", "error")
		return Detection{}, err
	}

	pixels, err := imaging.Preprocess(imageBytes, info.InputSize)
	if err != nil {
		metrics.IncPrediction("disease", "invalid")
		return Detection{}, err
	}

	scores, err := s.Classifier.Predict(ctx, pixels, info.InputSize, info.InputSize)
	if err != nil {
		metrics.IncPrediction("disease", "error")
		return Detection{}, err
	}

	classes := s.taxonomy(info.Classes)
	if len(scores) == 0 {
		metrics.IncPrediction("disease", "error")
		return Detection{}, fmt.Errorf("model returned no scores: %w", apperr.ErrIndexOutOfRange)
	}
	best := argmax(scores)
	if best >= len(classes) {
		metrics.IncPrediction("disease", "error")
		return Detection{}, fmt.Errorf("predicted class %d exceeds known classes %d: %w", best, len(classes), apperr.ErrIndexOutOfRange)
	}

	plant, disease := ParseClassName(classes[best])
	detection := Detection{
		Disease:       disease,
		Confidence:    scores[best],
		Severity:      Severity(disease, scores[best]),
		AffectedPlant: plant,
	}

	telemetry.Info("diseases.detected", map[string]any{
		"disease":    detection.Disease,
		"confidence": detection.Confidence,
		"severity":   detection.Severity,
	})

	imageObject := s.archive(ctx, username, filename, imageBytes)

	if s.Repo != nil && username != "" {
		rec := Record{
			ID:          uuid.NewString(),
			Username:    username,
			Detection:   detection,
			ImageObject: imageObject,
			CreatedAt:   s.now().UTC(),
		}
		if err := s.Repo.Insert(ctx, rec); err != nil {
			telemetry.Error("diseases.history_insert_failed", map[string]any{
				"username": username,
				"error":    err.Error(),
			})
			s.discard(ctx, imageObject)
		}
	}

	metrics.IncPrediction("disease", "ok")
	metrics.ObservePredictionDurationMs(metrics.NowMillis() - start)
	return detection, nil
}

// History returns the user's most recent detections, newest first. Records
// with an archived upload carry a short-lived download link.
func (s *Service) History(ctx context.Context, username string, limit int) ([]Record, error) {
	if s.Repo == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	records, err := s.Repo.ListByUsername(ctx, username, limit)
	if err != nil {
		return nil, err
	}
	if s.Store != nil {
		for i := range records {
			if records[i].ImageObject == "" {
				continue
			}
			url, err := s.Store.PresignedURL(ctx, records[i].ImageObject)
			if err != nil {
				telemetry.Warn("diseases.presign_failed", map[string]any{
					"object": records[i].ImageObject,
					"error":  err.Error(),
				})
				continue
			}
			records[i].ImageURL = url
		}
	}
	return records, nil
}

// archive stores the raw upload. Failures only cost the archived copy, never
// the detection, so they are logged and swallowed.
func (s *Service) archive(ctx context.Context, username, filename string, imageBytes []byte) string {
	if s.Store == nil {
		return ""
	}
	owner := username
	if owner == "" {
		owner = "anonymous"
	}
	objectName := fmt.Sprintf("leaves/%s/%s%s", owner, uuid.NewString(), filepath.Ext(filename))
	stored, err := s.Store.Put(ctx, objectName, bytes.NewReader(imageBytes), int64(len(imageBytes)), "application/octet-stream")
	if err != nil {
		telemetry.Error("diseases.archive_failed", map[string]any{
			"object": objectName,
			"error":  err.Error(),
		})
		return ""
	}
	return stored
}

// discard drops an archived upload whose history row never materialized, so
// the bucket does not accumulate orphans.
func (s *Service) discard(ctx context.Context, objectName string) {
	if s.Store == nil || objectName == "" {
		return
	}
	if err := s.Store.Remove(ctx, objectName); err != nil {
		telemetry.Warn("diseases.orphan_cleanup_failed", map[string]any{
			"object": objectName,
			"error":  err.Error(),
		})
	}
}

func (s *Service) taxonomy(modelClasses int) []string {
	s.alignOnce.Do(func() {
		s.aligned = AlignTaxonomy(s.classes, modelClasses)
	})
	return s.aligned
}

func argmax(scores []float64) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}
