package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// writeStorageError maps validation failures to a 400 the user can act on;
// everything else is a 500.
func (s *Server) writeStorageError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrInvalidInput) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.log.Error("inventory operation failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func profileIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "profileID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid profile ID"})
		return uuid.UUID{}, false
	}
	return id, true
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.db.ListProfiles(r.Context(), r.URL.Query().Get("kind"))
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Kind  string `json:"kind"`
		GymID *int64 `json:"gym_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	profile, err := s.db.CreateProfile(r.Context(), req.Name, req.Kind, req.GymID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (s *Server) handleUpsertAssociation(w http.ResponseWriter, r *http.Request) {
	var assoc models.ProfileAssociation
	if err := json.NewDecoder(r.Body).Decode(&assoc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if assoc.UserID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id is required"})
		return
	}

	if err := s.db.UpsertProfileAssociation(r.Context(), assoc); err != nil {
		s.writeStorageError(w, err)
		return
	}
	// The cached loading context is now stale.
	s.engine.Contexts().Invalidate(assoc.UserID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListPlates(w http.ResponseWriter, r *http.Request) {
	profileID, ok := profileIDParam(w, r)
	if !ok {
		return
	}
	items, err := s.db.FetchPlateItems(r.Context(), profileID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleUpsertPlate(w http.ResponseWriter, r *http.Request) {
	profileID, ok := profileIDParam(w, r)
	if !ok {
		return
	}
	var item models.PlateItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	item.ProfileID = profileID

	if err := s.db.UpsertPlateItem(r.Context(), item); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeletePlate(w http.ResponseWriter, r *http.Request) {
	profileID, ok := profileIDParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Weight float64 `json:"weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.db.DeletePlateItem(r.Context(), profileID, req.Weight); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListDumbbells(w http.ResponseWriter, r *http.Request) {
	profileID, ok := profileIDParam(w, r)
	if !ok {
		return
	}
	items, err := s.db.FetchDumbbells(r.Context(), profileID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleUpsertDumbbell(w http.ResponseWriter, r *http.Request) {
	profileID, ok := profileIDParam(w, r)
	if !ok {
		return
	}
	var item models.DumbbellItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	item.ProfileID = profileID

	if err := s.db.UpsertDumbbell(r.Context(), item); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteDumbbell(w http.ResponseWriter, r *http.Request) {
	profileID, ok := profileIDParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Weight float64 `json:"weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.db.DeleteDumbbell(r.Context(), profileID, req.Weight); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListStackSteps(w http.ResponseWriter, r *http.Request) {
	profileID, ok := profileIDParam(w, r)
	if !ok {
		return
	}
	steps, err := s.db.FetchStackSteps(r.Context(), profileID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, steps)
}

func (s *Server) handleUpsertStackStep(w http.ResponseWriter, r *http.Request) {
	profileID, ok := profileIDParam(w, r)
	if !ok {
		return
	}
	var step models.StackStep
	if err := json.NewDecoder(r.Body).Decode(&step); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	step.ProfileID = profileID

	if err := s.db.UpsertStackStep(r.Context(), step); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

func (s *Server) handleDeleteStackStep(w http.ResponseWriter, r *http.Request) {
	profileID, ok := profileIDParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Weight float64 `json:"weight"`
		IsAux  bool    `json:"is_aux"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.db.DeleteStackStep(r.Context(), profileID, req.Weight, req.IsAux); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSetBarWeight(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ExerciseID *string `json:"exercise_id,omitempty"`
		BarType    string  `json:"bar_type"`
		WeightKg   float64 `json:"weight_kg"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	exerciseID, err := parseOptionalUUID(req.ExerciseID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise_id"})
		return
	}
	if req.BarType == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bar_type is required"})
		return
	}

	if err := s.db.SetBarWeight(r.Context(), exerciseID, req.BarType, req.WeightKg); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
