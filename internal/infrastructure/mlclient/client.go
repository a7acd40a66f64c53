// Package mlclient wraps the external ML classification service. It is pure
// request/response forwarding: no state beyond the base URL and HTTP client.
package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// Features is the input vector for a single classification.
type Features struct {
	Temperature float64 `json:"temperature"`
	MotionLevel int     `json:"motion_level"`
	SoundLevel  int     `json:"sound_level"`
	HourOfDay   int     `json:"hour_of_day"`
	IsNight     int     `json:"is_night"`
	MotionTrend float64 `json:"motion_trend"`
}

// Prediction is the classification result for one reading.
type Prediction struct {
	ActivityClass    string             `json:"activity_class"`
	Confidence       float64            `json:"confidence"`
	ConfidenceScores map[string]float64 `json:"confidence_scores,omitempty"`
}

// Health is the ML service health response.
type Health struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Timestamp   string `json:"timestamp"`
}

// ModelInfo describes the loaded model.
type ModelInfo struct {
	ModelLoaded bool     `json:"model_loaded"`
	Classes     []string `json:"classes"`
	Features    []string `json:"features"`
}

type batchRequest struct {
	Readings []Features `json:"readings"`
}

type batchPrediction struct {
	Index         int     `json:"index"`
	ActivityClass string  `json:"activity_class"`
	Confidence    float64 `json:"confidence"`
}

type batchResponse struct {
	Predictions []batchPrediction `json:"predictions"`
}

// Client talks to the ML prediction service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the service at baseURL. A zero timeout falls back
// to 10 seconds.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Classify requests a prediction for a single feature vector.
func (c *Client) Classify(ctx context.Context, features Features) (*Prediction, error) {
	var out Prediction
	if err := c.post(ctx, "/predict", features, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClassifyBatch requests predictions for multiple readings in one call.
// Results are returned in input order.
func (c *Client) ClassifyBatch(ctx context.Context, readings []Features) ([]Prediction, error) {
	var resp batchResponse
	if err := c.post(ctx, "/predict/batch", batchRequest{Readings: readings}, &resp); err != nil {
		return nil, err
	}

	out := make([]Prediction, len(readings))
	for _, p := range resp.Predictions {
		if p.Index < 0 || p.Index >= len(out) {
			return nil, fmt.Errorf("ml batch: prediction index %d out of range", p.Index)
		}
		out[p.Index] = Prediction{ActivityClass: p.ActivityClass, Confidence: p.Confidence}
	}
	return out, nil
}

// HealthCheck reports whether the ML service is up and its model loaded.
func (c *Client) HealthCheck(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.get(ctx, "/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ModelInfo returns metadata about the loaded model.
func (c *Client) ModelInfo(ctx context.Context) (*ModelInfo, error) {
	var out ModelInfo
	if err := c.get(ctx, "/model/info", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("ml request encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ml request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("ml request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ml service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ml service returned %d: %s", resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ml response decode: %w", err)
	}
	return nil
}

// BuildFeatures derives the model's input vector from a raw reading taken at
// ts. Night is 22:00 through 05:59 local to the timestamp.
func BuildFeatures(temperature float64, motionLevel, soundLevel int, ts time.Time, motionTrend float64) Features {
	hour := ts.Hour()
	isNight := 0
	if hour >= 22 || hour < 6 {
		isNight = 1
	}
	return Features{
		Temperature: temperature,
		MotionLevel: motionLevel,
		SoundLevel:  soundLevel,
		HourOfDay:   hour,
		IsNight:     isNight,
		MotionTrend: motionTrend,
	}
}
