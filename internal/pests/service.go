package pests

import (
	"context"

	"agroadvisor-backend/internal/diseases"
	"agroadvisor-backend/internal/shared/metrics"
)

// Detector is the slice of the disease pipeline this service needs.
type Detector interface {
	Detect(ctx context.Context, username, filename string, imageBytes []byte) (diseases.Detection, error)
}

// Service turns a leaf photo into treatment advice by running disease
// detection and mapping the result onto control measures.
type Service struct {
	Detector Detector
}

func NewService(detector Detector) *Service {
	return &Service{Detector: detector}
}

// Advise detects the disease and attaches its control measures. Detection
// errors pass through unchanged so callers see the same mapping as the
// disease endpoint.
func (s *Service) Advise(ctx context.Context, username, filename string, imageBytes []byte) (Advice, error) {
	start := metrics.NowMillis()

	detection, err := s.Detector.Detect(ctx, username, filename, imageBytes)
	if err != nil {
		metrics.IncPrediction("pest", "error")
		return Advice{}, err
	}

	key := NormalizeDiseaseName(detection.Disease)
	measures := MeasuresFor(key)

	// The quick-action list is the organic treatments plus the two most
	// common chemical ones.
	chemicals := measures.Chemical
	if len(chemicals) > 2 {
		chemicals = chemicals[:2]
	}
	control := make([]string, 0, len(measures.Organic)+len(chemicals))
	control = append(control, measures.Organic...)
	control = append(control, chemicals...)

	metrics.IncPrediction("pest", "ok")
	metrics.ObservePredictionDurationMs(metrics.NowMillis() - start)
	return Advice{
		Disease:               detection.Disease,
		Confidence:            detection.Confidence,
		Severity:              measures.Severity,
		ControlMeasures:       control,
		OrganicSolutions:      measures.Organic,
		ChemicalSolutions:     measures.Chemical,
		PreventiveMeasures:    measures.Preventive,
		EstimatedRecoveryTime: measures.RecoveryTime,
	}, nil
}
