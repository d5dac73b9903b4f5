package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftplan/internal/equipment"
	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/progression"
	"github.com/claude/liftplan/internal/units"
	"github.com/claude/liftplan/internal/warmup"
	"github.com/google/uuid"
)

// HTTPClient implements Engine by calling the LiftPlan REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the resolution engine lives on the remote server (accessed over
// Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies Engine.
var _ Engine = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
// The API key is only needed for inventory endpoints.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, payload any) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, respBody)
	}

	return respBody, nil
}

func (c *HTTPClient) ResolveWeight(ctx context.Context, targetWeight float64, unit units.Unit, exerciseID *uuid.UUID, barType string, lt equipment.LoadType, userID int64) (equipment.Resolution, error) {
	payload := map[string]any{
		"target_weight": targetWeight,
		"unit":          unit,
		"load_type":     lt,
		"bar_type":      barType,
		"user_id":       userID,
	}
	if exerciseID != nil {
		payload["exercise_id"] = exerciseID.String()
	}

	body, err := c.do(ctx, http.MethodPost, "/api/v1/resolve", nil, payload)
	if err != nil {
		return equipment.Resolution{}, err
	}

	var res equipment.Resolution
	if err := json.Unmarshal(body, &res); err != nil {
		return equipment.Resolution{}, fmt.Errorf("httpclient: decode resolution: %w", err)
	}
	return res, nil
}

func (c *HTTPClient) AvailableWeights(ctx context.Context, lt equipment.LoadType, exerciseID *uuid.UUID, barType string, userID int64, maxWeight float64, unit units.Unit) ([]float64, error) {
	params := url.Values{}
	params.Set("load_type", string(lt))
	params.Set("unit", string(unit))
	params.Set("max_weight", strconv.FormatFloat(maxWeight, 'f', -1, 64))
	params.Set("user_id", strconv.FormatInt(userID, 10))
	if barType != "" {
		params.Set("bar_type", barType)
	}
	if exerciseID != nil {
		params.Set("exercise_id", exerciseID.String())
	}

	body, err := c.do(ctx, http.MethodGet, "/api/v1/weights", params, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Weights []float64 `json:"weights"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("httpclient: decode weights: %w", err)
	}
	return out.Weights, nil
}

func (c *HTTPClient) GenerateWarmup(ctx context.Context, userID int64, instanceID string, topWeightKg float64) (*warmup.Plan, error) {
	payload := map[string]any{
		"user_id":       userID,
		"instance_id":   instanceID,
		"top_weight_kg": topWeightKg,
	}

	body, err := c.do(ctx, http.MethodPost, "/api/v1/warmup", nil, payload)
	if err != nil {
		return nil, err
	}

	var plan warmup.Plan
	if err := json.Unmarshal(body, &plan); err != nil {
		return nil, fmt.Errorf("httpclient: decode warmup plan: %w", err)
	}
	return &plan, nil
}

func (c *HTTPClient) RecordWarmupFeedback(ctx context.Context, userID int64, instanceID string, fb warmup.Feedback) (*warmup.Plan, error) {
	payload := map[string]any{
		"user_id":     userID,
		"instance_id": instanceID,
		"feedback":    fb,
	}

	body, err := c.do(ctx, http.MethodPost, "/api/v1/warmup/feedback", nil, payload)
	if err != nil {
		return nil, err
	}

	var plan warmup.Plan
	if err := json.Unmarshal(body, &plan); err != nil {
		return nil, fmt.Errorf("httpclient: decode warmup plan: %w", err)
	}
	return &plan, nil
}

func (c *HTTPClient) SuggestTarget(ctx context.Context, in progression.Input) (progression.Target, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/progression/target", nil, in)
	if err != nil {
		return progression.Target{}, err
	}

	var target progression.Target
	if err := json.Unmarshal(body, &target); err != nil {
		return progression.Target{}, fmt.Errorf("httpclient: decode target: %w", err)
	}
	return target, nil
}

func (c *HTTPClient) ListProfiles(ctx context.Context, kind string) ([]models.EquipmentProfile, error) {
	params := url.Values{}
	if kind != "" {
		params.Set("kind", kind)
	}

	body, err := c.do(ctx, http.MethodGet, "/api/v1/inventory/profiles", params, nil)
	if err != nil {
		return nil, err
	}

	var profiles []models.EquipmentProfile
	if err := json.Unmarshal(body, &profiles); err != nil {
		return nil, fmt.Errorf("httpclient: decode profiles: %w", err)
	}
	return profiles, nil
}
