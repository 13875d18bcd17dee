package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Label is one scored class from the sentiment model, e.g.
// {"label": "positive", "score": 0.94}.
type Label struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type Client interface {
	Analyze(ctx context.Context, text string) ([]Label, error)
}

type HTTPClient struct {
	modelURL   string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPClient(modelURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		modelURL:   modelURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) Analyze(ctx context.Context, text string) ([]Label, error) {
	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.modelURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("sentiment POST: %d %s", resp.StatusCode, string(body))
	}

	// The inference API wraps single-input results in an extra array.
	var nested [][]Label
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 {
		return nested[0], nil
	}
	var flat []Label
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("sentiment response: %w", err)
	}
	return flat, nil
}
