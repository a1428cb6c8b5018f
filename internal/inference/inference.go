// Package inference abstracts the trained model endpoints used by the
// prediction engines. The models run out of process; the interfaces here keep
// the engines testable and let the API start without them.
package inference

import (
	"context"
	"fmt"

	"agroadvisor-backend/internal/apperr"
)

// CropFeatures are the agronomic inputs to the crop recommendation model.
type CropFeatures struct {
	Nitrogen    float64 `json:"nitrogen"`
	Phosphorus  float64 `json:"phosphorus"`
	Potassium   float64 `json:"potassium"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
}

// CropPrediction carries the winning label plus the full class distribution.
// Labels and Probs are index-aligned and preserve the model's class order.
type CropPrediction struct {
	Label  string
	Labels []string
	Probs  []float64
}

// CropClassifier scores a feature vector against the crop model.
type CropClassifier interface {
	Predict(ctx context.Context, features CropFeatures) (CropPrediction, error)
}

// ImageModelInfo describes the disease model's expected input and output.
type ImageModelInfo struct {
	InputSize int
	Classes   int
}

// ImageClassifier scores a preprocessed leaf image against the disease model.
// Pixels are row-major RGB floats in [0,1].
type ImageClassifier interface {
	Info(ctx context.Context) (ImageModelInfo, error)
	Predict(ctx context.Context, pixels []float32, width, height int) ([]float64, error)
}

// ErrNotConfigured is returned by the placeholder clients when no model
// endpoint is set. It wraps apperr.ErrUnavailable so callers surface it as a
// temporary outage rather than a caller mistake.
var ErrNotConfigured = fmt.Errorf("inference: model endpoint not configured: %w", apperr.ErrUnavailable)

// PlaceholderCrop stands in when CROP_MODEL_URL is unset.
type PlaceholderCrop struct{}

func (PlaceholderCrop) Predict(ctx context.Context, features CropFeatures) (CropPrediction, error) {
	_ = ctx
	_ = features
	return CropPrediction{}, ErrNotConfigured
}

// PlaceholderImage stands in when DISEASE_MODEL_URL is unset.
type PlaceholderImage struct{}

func (PlaceholderImage) Info(ctx context.Context) (ImageModelInfo, error) {
	_ = ctx
	return ImageModelInfo{}, ErrNotConfigured
}

func (PlaceholderImage) Predict(ctx context.Context, pixels []float32, width, height int) ([]float64, error) {
	_ = ctx
	_ = pixels
	return nil, ErrNotConfigured
}
