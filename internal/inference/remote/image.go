package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"agroadvisor-backend/internal/apperr"
	"agroadvisor-backend/internal/inference"
)

// ImageClient calls the leaf disease model over HTTP. Model metadata is
// fetched once and cached for the life of the process.
type ImageClient struct {
	baseURL    string
	httpClient *http.Client

	mu   sync.Mutex
	info *inference.ImageModelInfo
}

// NewImageClient validates the endpoint and builds the client.
func NewImageClient(baseURL string, timeout time.Duration) (*ImageClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("DISEASE_MODEL_URL is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ImageClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type imageInfoResponse struct {
	InputSize int    `json:"input_size"`
	Classes   int    `json:"num_classes"`
	Error     string `json:"error,omitempty"`
}

type imageScoreRequest struct {
	Pixels []float32 `json:"pixels"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
}

type imageScoreResponse struct {
	Scores []float64 `json:"scores"`
	Error  string    `json:"error,omitempty"`
}

func (c *ImageClient) Info(ctx context.Context) (inference.ImageModelInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.info != nil {
		return *c.info, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/metadata", nil)
	if err != nil {
		return inference.ImageModelInfo{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return inference.ImageModelInfo{}, err
		}
		return inference.ImageModelInfo{}, fmt.Errorf("model metadata request failed: %v: %w", err, apperr.ErrUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return inference.ImageModelInfo{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return inference.ImageModelInfo{}, fmt.Errorf("model metadata status %d: %w", resp.StatusCode, apperr.ErrUnavailable)
	}

	var parsed imageInfoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return inference.ImageModelInfo{}, fmt.Errorf("model metadata parse: %w", err)
	}
	if parsed.Error != "" {
		return inference.ImageModelInfo{}, fmt.Errorf("model metadata error: %s: %w", parsed.Error, apperr.ErrUnavailable)
	}
	if parsed.InputSize <= 0 || parsed.Classes <= 0 {
		return inference.ImageModelInfo{}, fmt.Errorf("model metadata incomplete: %w", apperr.ErrUnavailable)
	}

	c.info = &inference.ImageModelInfo{InputSize: parsed.InputSize, Classes: parsed.Classes}
	return *c.info, nil
}

func (c *ImageClient) Predict(ctx context.Context, pixels []float32, width, height int) ([]float64, error) {
	payload, err := json.Marshal(imageScoreRequest{Pixels: pixels, Width: width, Height: height})
	if err != nil {
		return nil, err
	}

	body, err := postJSON(ctx, c.httpClient, c.baseURL+"/predict", payload)
	if err != nil {
		return nil, err
	}

	var parsed imageScoreResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("disease model response parse: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("disease model error: %s: %w", parsed.Error, apperr.ErrUnavailable)
	}
	if len(parsed.Scores) == 0 {
		return nil, fmt.Errorf("disease model returned no scores: %w", apperr.ErrUnavailable)
	}
	return parsed.Scores, nil
}

var _ inference.ImageClassifier = (*ImageClient)(nil)
