package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/liftplan/internal/equipment"
	"github.com/claude/liftplan/internal/progression"
	"github.com/claude/liftplan/internal/units"
	"github.com/claude/liftplan/internal/warmup"
)

// newTestServer creates an httptest server that routes requests to handler
// functions keyed by path. Verifies the HTTP client hits the right paths.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestHTTPClientResolveWeight verifies the client posts the resolution
// request and decodes the response.
func TestHTTPClientResolveWeight(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/resolve": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", r.Method)
			}
			var req map[string]any
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatal(err)
			}
			if got := req["target_weight"].(float64); got != 100 {
				t.Errorf("target_weight = %v, want 100", got)
			}
			if got := req["load_type"].(string); got != "dual_load" {
				t.Errorf("load_type = %q, want dual_load", got)
			}
			writeTestJSON(t, w, equipment.Resolution{
				ResolvedWeight: equipment.ResolvedWeight{Weight: 100, Unit: units.Kg, Achievable: true},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	res, err := client.ResolveWeight(context.Background(), 100, units.Kg, nil, "", equipment.DualLoad, 1)
	if err != nil {
		t.Fatalf("ResolveWeight: %v", err)
	}
	if res.Weight != 100 || !res.Achievable {
		t.Errorf("got weight=%v achievable=%v, want 100/true", res.Weight, res.Achievable)
	}
}

// TestHTTPClientAvailableWeights verifies query params and the wrapped
// weights response.
func TestHTTPClientAvailableWeights(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/weights": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if got := q.Get("load_type"); got != "single_load" {
				t.Errorf("load_type=%q, want single_load", got)
			}
			if got := q.Get("max_weight"); got != "50" {
				t.Errorf("max_weight=%q, want 50", got)
			}
			writeTestJSON(t, w, map[string]any{"unit": "kg", "weights": []float64{10, 12.5, 15}})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	weights, err := client.AvailableWeights(context.Background(), equipment.SingleLoad, nil, "", 1, 50, units.Kg)
	if err != nil {
		t.Fatalf("AvailableWeights: %v", err)
	}
	if len(weights) != 3 || weights[0] != 10 {
		t.Errorf("weights = %v, want [10 12.5 15]", weights)
	}
}

// TestHTTPClientWarmupRoundTrip verifies generate and feedback calls decode
// into plans.
func TestHTTPClientWarmupRoundTrip(t *testing.T) {
	plan := warmup.Plan{Strategy: "percent_ramp", BaseWeight: 100}
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/warmup": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, plan)
		},
		"/api/v1/warmup/feedback": func(w http.ResponseWriter, r *http.Request) {
			var req map[string]any
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatal(err)
			}
			if got := req["feedback"].(string); got != "too_much" {
				t.Errorf("feedback=%q, want too_much", got)
			}
			writeTestJSON(t, w, plan)
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	got, err := client.GenerateWarmup(context.Background(), 1, "inst-1", 100)
	if err != nil {
		t.Fatalf("GenerateWarmup: %v", err)
	}
	if got.BaseWeight != 100 {
		t.Errorf("BaseWeight = %v, want 100", got.BaseWeight)
	}

	got, err = client.RecordWarmupFeedback(context.Background(), 1, "inst-1", warmup.TooMuch)
	if err != nil {
		t.Fatalf("RecordWarmupFeedback: %v", err)
	}
	if got.Strategy != "percent_ramp" {
		t.Errorf("Strategy = %q, want percent_ramp", got.Strategy)
	}
}

// TestHTTPClientSuggestTarget verifies the progression input round-trips.
func TestHTTPClientSuggestTarget(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/progression/target": func(w http.ResponseWriter, r *http.Request) {
			var in progression.Input
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				t.Fatal(err)
			}
			if in.LastWeightKg != 100 || in.LastReps != 8 {
				t.Errorf("input = %+v, want weight 100 reps 8", in)
			}
			writeTestJSON(t, w, progression.Target{WeightKg: 102.5, Reps: 8, Feel: progression.FeelModerate})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	target, err := client.SuggestTarget(context.Background(), progression.Input{LastWeightKg: 100, LastReps: 8})
	if err != nil {
		t.Fatalf("SuggestTarget: %v", err)
	}
	if target.WeightKg != 102.5 {
		t.Errorf("WeightKg = %v, want 102.5", target.WeightKg)
	}
}

// TestHTTPClientSendsAPIKey verifies the X-API-Key header reaches inventory
// endpoints.
func TestHTTPClientSendsAPIKey(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/inventory/profiles": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("X-API-Key"); got != "secret" {
				t.Errorf("X-API-Key = %q, want secret", got)
			}
			writeTestJSON(t, w, []any{})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "secret")
	if _, err := client.ListProfiles(context.Background(), ""); err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
}

// TestHTTPClientErrorStatus verifies non-200 responses surface as errors.
func TestHTTPClientErrorStatus(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/resolve": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"bad input"}`, http.StatusBadRequest)
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	if _, err := client.ResolveWeight(context.Background(), 0, units.Kg, nil, "", equipment.DualLoad, 1); err == nil {
		t.Error("expected error for 400 response")
	}
}
