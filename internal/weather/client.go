package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Observation is the subset of a current-conditions report the
// prediction engine cares about.
type Observation struct {
	Temperature   float64 `json:"temperature"`
	ConditionCode int     `json:"condition_code"`
	Condition     string  `json:"condition"`
	RainMM        float64 `json:"rain_mm"`
}

type Client interface {
	Current(ctx context.Context, lat, lng float64) (*Observation, error)
}

type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type openWeatherResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"weather"`
	Rain map[string]float64 `json:"rain"`
}

func (c *HTTPClient) Current(ctx context.Context, lat, lng float64) (*Observation, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lng))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
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
		return nil, fmt.Errorf("weather GET: %d %s", resp.StatusCode, string(body))
	}

	var raw openWeatherResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	obs := &Observation{Temperature: raw.Main.Temp}
	if len(raw.Weather) > 0 {
		obs.ConditionCode = raw.Weather[0].ID
		obs.Condition = raw.Weather[0].Description
	}
	obs.RainMM = raw.Rain["1h"]
	return obs, nil
}
