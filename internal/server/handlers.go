package server

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/claude/liftplan/internal/equipment"
	"github.com/claude/liftplan/internal/progression"
	"github.com/claude/liftplan/internal/units"
	"github.com/claude/liftplan/internal/warmup"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type resolveRequest struct {
	TargetWeight float64 `json:"target_weight"`
	Unit         string  `json:"unit"`
	LoadType     string  `json:"load_type"`
	ExerciseID   *string `json:"exercise_id,omitempty"`
	BarType      string  `json:"bar_type,omitempty"`
	UserID       int64   `json:"user_id,omitempty"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	unit, err := units.Parse(req.Unit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	lt, err := equipment.ParseLoadType(req.LoadType)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	exerciseID, err := parseOptionalUUID(req.ExerciseID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise_id"})
		return
	}

	res := s.engine.ResolveWeightForExercise(r.Context(), req.TargetWeight, unit, exerciseID, req.BarType, lt, req.UserID)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAvailableWeights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lt, err := equipment.ParseLoadType(q.Get("load_type"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	unit := units.Kg
	if u := q.Get("unit"); u != "" {
		if unit, err = units.Parse(u); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}
	maxWeight := 300.0
	if m := q.Get("max_weight"); m != "" {
		maxWeight, err = strconv.ParseFloat(m, 64)
		// ParseFloat accepts "NaN" and "Inf"; neither bounds a weight list.
		if err != nil || math.IsNaN(maxWeight) || math.IsInf(maxWeight, 0) || maxWeight <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid max_weight"})
			return
		}
	}
	var userID int64
	if u := q.Get("user_id"); u != "" {
		if userID, err = strconv.ParseInt(u, 10, 64); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user_id"})
			return
		}
	}
	var exerciseID *uuid.UUID
	if e := q.Get("exercise_id"); e != "" {
		id, err := uuid.Parse(e)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise_id"})
			return
		}
		exerciseID = &id
	}

	weights := s.engine.AvailableWeights(r.Context(), lt, exerciseID, q.Get("bar_type"), userID, maxWeight, unit)
	writeJSON(w, http.StatusOK, map[string]any{"unit": unit, "weights": weights})
}

type warmupGenerateRequest struct {
	UserID      int64   `json:"user_id"`
	InstanceID  string  `json:"instance_id"`
	TopWeightKg float64 `json:"top_weight_kg"`
}

func (s *Server) handleWarmupGenerate(w http.ResponseWriter, r *http.Request) {
	var req warmupGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.InstanceID == "" || req.TopWeightKg <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "instance_id and positive top_weight_kg required"})
		return
	}

	existing, err := s.plans.GetPlan(req.UserID, req.InstanceID)
	if err != nil {
		s.log.Error("warmup plan load failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var plan *warmup.Plan
	if existing == nil {
		plan = s.planner.Generate(req.TopWeightKg)
	} else {
		plan = s.planner.Rebase(existing, req.TopWeightKg)
	}

	if err := s.plans.SavePlan(req.UserID, req.InstanceID, plan); err != nil {
		s.log.Error("warmup plan save failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

type warmupFeedbackRequest struct {
	UserID     int64  `json:"user_id"`
	InstanceID string `json:"instance_id"`
	Feedback   string `json:"feedback"`
}

func (s *Server) handleWarmupFeedback(w http.ResponseWriter, r *http.Request) {
	var req warmupFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	fb, err := warmup.ParseFeedback(req.Feedback)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	plan, err := s.plans.GetPlan(req.UserID, req.InstanceID)
	if err != nil {
		s.log.Error("warmup plan load failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if plan == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no warmup plan for instance"})
		return
	}

	revised := s.planner.ApplyFeedback(plan, fb)
	if err := s.plans.SavePlan(req.UserID, req.InstanceID, revised); err != nil {
		s.log.Error("warmup plan save failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if err := s.plans.SaveFeedback(req.UserID, req.InstanceID, fb); err != nil {
		s.log.Error("warmup feedback save failed", "error", err)
	}
	writeJSON(w, http.StatusOK, revised)
}

func (s *Server) handleWarmupGet(w http.ResponseWriter, r *http.Request) {
	instanceID := chi.URLParam(r, "instanceID")
	var userID int64
	if u := r.URL.Query().Get("user_id"); u != "" {
		var err error
		if userID, err = strconv.ParseInt(u, 10, 64); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user_id"})
			return
		}
	}

	plan, err := s.plans.GetPlan(userID, instanceID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if plan == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no warmup plan for instance"})
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleSuggestTarget(w http.ResponseWriter, r *http.Request) {
	var in progression.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.progression.SuggestTarget(in))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
