package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/claude/liftplan/internal/equipment"
	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/progression"
	"github.com/claude/liftplan/internal/warmup"
	"github.com/google/uuid"
)

type fakeSource struct {
	assoc     *models.ProfileAssociation
	plates    []models.PlateItem
	dumbbells []models.DumbbellItem
	steps     []models.StackStep
	barKg     float64
}

func (f *fakeSource) GetProfileAssociation(ctx context.Context, userID int64) (*models.ProfileAssociation, error) {
	return f.assoc, nil
}

func (f *fakeSource) FetchPlateItems(ctx context.Context, profileID uuid.UUID) ([]models.PlateItem, error) {
	return f.plates, nil
}

func (f *fakeSource) FetchDumbbells(ctx context.Context, profileID uuid.UUID) ([]models.DumbbellItem, error) {
	return f.dumbbells, nil
}

func (f *fakeSource) FetchStackSteps(ctx context.Context, profileID uuid.UUID) ([]models.StackStep, error) {
	return f.steps, nil
}

func (f *fakeSource) FetchBarWeight(ctx context.Context, exerciseID *uuid.UUID, barType string) (float64, error) {
	return f.barKg, nil
}

func testServer(t *testing.T, src *fakeSource) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))

	contexts := equipment.NewContextResolver(src, equipment.NewContextCache(5*time.Minute), log)
	engine := equipment.NewService(src, contexts, equipment.NewResolver(log), log)

	plans, err := warmup.OpenPlanStore(t.TempDir())
	if err != nil {
		t.Fatalf("plan store: %v", err)
	}
	t.Cleanup(func() { plans.Close() })

	return New(nil, engine, warmup.NewPlanner(), plans, progression.NewEngine(), "test-key", log)
}

// TestHandleResolveBarbell verifies the resolve endpoint end to end: a
// 100 kg request against a standard plate profile comes back exact with a
// per-side breakdown.
func TestHandleResolveBarbell(t *testing.T) {
	pid := uuid.New()
	src := &fakeSource{
		assoc: &models.ProfileAssociation{UserID: 1, Unit: "kg", PlateProfileID: &pid},
		barKg: 20,
		plates: []models.PlateItem{
			{Weight: 20, Unit: "kg"}, {Weight: 15, Unit: "kg"}, {Weight: 10, Unit: "kg"},
			{Weight: 5, Unit: "kg"}, {Weight: 2.5, Unit: "kg"}, {Weight: 1.25, Unit: "kg"},
		},
	}
	s := testServer(t, src)

	body := `{"target_weight":100,"unit":"kg","load_type":"dual_load","user_id":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resolve", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var res equipment.Resolution
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Weight != 100 || !res.Achievable {
		t.Errorf("got %v achievable=%v, want 100/true", res.Weight, res.Achievable)
	}
	if res.Breakdown == nil || len(res.Breakdown.PerSideKg) != 3 {
		t.Errorf("breakdown = %+v, want three plates per side", res.Breakdown)
	}
}

// TestHandleResolveBadInput verifies unknown units and load types are
// rejected with a 400 before reaching the engine.
func TestHandleResolveBadInput(t *testing.T) {
	s := testServer(t, &fakeSource{})

	for _, body := range []string{
		`{"target_weight":100,"unit":"stone","load_type":"dual_load"}`,
		`{"target_weight":100,"unit":"kg","load_type":"telekinesis"}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/resolve", strings.NewReader(body))
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

// TestHandleResolveAnonymousDegrades verifies a caller with no user ID and
// no inventory still gets a usable, degraded resolution — the primary user
// action is never blocked.
func TestHandleResolveAnonymousDegrades(t *testing.T) {
	s := testServer(t, &fakeSource{})

	body := `{"target_weight":18,"unit":"kg","load_type":"single_load"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resolve", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res equipment.Resolution
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Degraded || !res.Achievable {
		t.Errorf("degraded=%v achievable=%v, want true/true", res.Degraded, res.Achievable)
	}
	if res.Weight != 17.5 {
		t.Errorf("weight = %v, want 17.5", res.Weight)
	}
}

// TestHandleAvailableWeights verifies the listing endpoint returns an
// ascending, capped list for a stack profile.
func TestHandleAvailableWeights(t *testing.T) {
	pid := uuid.New()
	src := &fakeSource{
		assoc: &models.ProfileAssociation{UserID: 1, Unit: "kg", StackProfileID: &pid},
		steps: []models.StackStep{
			{StepWeight: 5, Unit: "kg"}, {StepWeight: 10, Unit: "kg"},
			{StepWeight: 15, Unit: "kg"}, {StepWeight: 20, Unit: "kg"},
		},
	}
	s := testServer(t, src)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weights?load_type=stack&user_id=1&max_weight=15&unit=kg", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out struct {
		Weights []float64 `json:"weights"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Weights) != 3 || out.Weights[2] != 15 {
		t.Errorf("weights = %v, want [5 10 15]", out.Weights)
	}
}

// TestWarmupLifecycle verifies generate, re-generate with a new top weight,
// feedback application, and retrieval against the same exercise instance.
func TestWarmupLifecycle(t *testing.T) {
	s := testServer(t, &fakeSource{})

	post := func(path, body string) (*httptest.ResponseRecorder, warmup.Plan) {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		var plan warmup.Plan
		if rec.Code == http.StatusOK {
			if err := json.NewDecoder(rec.Body).Decode(&plan); err != nil {
				t.Fatalf("decode: %v", err)
			}
		}
		return rec, plan
	}

	// First engagement creates the default ramp.
	rec, plan := post("/api/v1/warmup", `{"user_id":1,"instance_id":"squat-1","top_weight_kg":100}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: status = %d: %s", rec.Code, rec.Body.String())
	}
	if len(plan.Steps) != 3 || plan.Steps[0].Pct != 40 {
		t.Fatalf("plan = %+v, want default 40/60/80 ramp", plan)
	}

	// Same instance with a heavier top weight rebases, keeping percentages.
	rec, plan = post("/api/v1/warmup", `{"user_id":1,"instance_id":"squat-1","top_weight_kg":110}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("rebase: status = %d", rec.Code)
	}
	if plan.BaseWeight != 110 || plan.Steps[0].TargetWeight != 44 {
		t.Errorf("rebased plan base=%v first=%v, want 110/44", plan.BaseWeight, plan.Steps[0].TargetWeight)
	}

	// Feedback shifts the ramp down.
	rec, plan = post("/api/v1/warmup/feedback", `{"user_id":1,"instance_id":"squat-1","feedback":"too_much"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("feedback: status = %d", rec.Code)
	}
	if plan.Steps[0].Pct != 35 {
		t.Errorf("first pct after too_much = %v, want 35", plan.Steps[0].Pct)
	}

	// The revised plan is retained.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/warmup/squat-1?user_id=1", nil)
	getRec := httptest.NewRecorder()
	s.ServeHTTP(getRec, req)
	if getRec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", getRec.Code)
	}
	var stored warmup.Plan
	if err := json.NewDecoder(getRec.Body).Decode(&stored); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stored.Steps[0].Pct != 35 {
		t.Errorf("stored first pct = %v, want 35", stored.Steps[0].Pct)
	}
}

// TestWarmupFeedbackWithoutPlan verifies rating an unengaged exercise is a
// 404, not a silent create.
func TestWarmupFeedbackWithoutPlan(t *testing.T) {
	s := testServer(t, &fakeSource{})

	body := `{"user_id":1,"instance_id":"never-done","feedback":"excellent"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/warmup/feedback", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// TestHandleSuggestTarget verifies the progression endpoint applies the
// overload rule.
func TestHandleSuggestTarget(t *testing.T) {
	s := testServer(t, &fakeSource{})

	body := `{"last_weight_kg":100,"last_reps":8,"feel":"moderate"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/progression/target", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var target progression.Target
	if err := json.NewDecoder(rec.Body).Decode(&target); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if target.WeightKg != 102.5 || target.Reps != 8 {
		t.Errorf("target = %v x %d, want 102.5 x 8", target.WeightKg, target.Reps)
	}
}

// TestInventoryRequiresAPIKey verifies inventory mutation routes sit
// behind the API key middleware while resolution routes do not.
func TestInventoryRequiresAPIKey(t *testing.T) {
	s := testServer(t, &fakeSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/profiles", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("without key: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/inventory/profiles", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong key: status = %d, want 403", rec.Code)
	}
}

// TestHandleAvailableWeightsRejectsMalformedCap verifies that NaN, Inf,
// and non-positive max_weight values are rejected before they reach the
// grid enumeration.
func TestHandleAvailableWeightsRejectsMalformedCap(t *testing.T) {
	s := testServer(t, &fakeSource{})

	for _, m := range []string{"NaN", "Inf", "-Inf", "-5", "0"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/weights?load_type=dual_load&max_weight="+m, nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("max_weight=%s: status = %d, want 400", m, rec.Code)
		}
	}
}

// TestHandleWarmupGetBadUserID verifies that a malformed user_id is a 400,
// not a silent lookup against user 0.
func TestHandleWarmupGetBadUserID(t *testing.T) {
	s := testServer(t, &fakeSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/warmup/squat-1?user_id=abc", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
