// Package remote talks HTTP to the model-serving sidecars.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"agroadvisor-backend/internal/apperr"
	"agroadvisor-backend/internal/inference"
)

// CropClient calls the crop recommendation model over HTTP.
type CropClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCropClient validates the endpoint and builds the client.
func NewCropClient(baseURL string, timeout time.Duration) (*CropClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("CROP_MODEL_URL is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CropClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type cropResponse struct {
	Label         string    `json:"label"`
	Labels        []string  `json:"labels"`
	Probabilities []float64 `json:"probabilities"`
	Error         string    `json:"error,omitempty"`
}

func (c *CropClient) Predict(ctx context.Context, features inference.CropFeatures) (inference.CropPrediction, error) {
	payload, err := json.Marshal(features)
	if err != nil {
		return inference.CropPrediction{}, err
	}

	body, err := postJSON(ctx, c.httpClient, c.baseURL+"/predict", payload)
	if err != nil {
		return inference.CropPrediction{}, err
	}

	var parsed cropResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return inference.CropPrediction{}, fmt.Errorf("crop model response parse: %w", err)
	}
	if parsed.Error != "" {
		// The sidecar is up but refused the readings, so this is the
		// caller's problem, not an outage.
		return inference.CropPrediction{}, fmt.Errorf("crop model rejected input: %s: %w", parsed.Error, apperr.ErrInvalidInput)
	}
	if parsed.Label == "" || len(parsed.Labels) == 0 || len(parsed.Labels) != len(parsed.Probabilities) {
		return inference.CropPrediction{}, fmt.Errorf("crop model response incomplete: %w", apperr.ErrUnavailable)
	}
	return inference.CropPrediction{
		Label:  parsed.Label,
		Labels: parsed.Labels,
		Probs:  parsed.Probabilities,
	}, nil
}

// postJSON issues the request and maps transport and 5xx failures to
// ErrUnavailable so handlers answer 503 when a sidecar is down. A 4xx means
// the sidecar rejected the payload and maps to ErrInvalidInput.
func postJSON(ctx context.Context, client *http.Client, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("model request failed: %v: %w", err, apperr.ErrUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("model returned status %d: %w", resp.StatusCode, apperr.ErrUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model returned status %d: %w", resp.StatusCode, apperr.ErrInvalidInput)
	}
	return body, nil
}

var _ inference.CropClassifier = (*CropClient)(nil)
