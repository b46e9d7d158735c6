package server

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/retirewise/retirement-planner/internal/domain"
	"github.com/retirewise/retirement-planner/internal/scenario"
)

type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// scenarioSaveRequest is the body of POST /api/scenarios.
type scenarioSaveRequest struct {
	Name string                  `json:"name"`
	Data domain.SimulationParams `json:"data"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Retirement Planner API"})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var params domain.SimulationParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	timeline, err := s.engine.Simulate(r.Context(), &params)
	if err != nil {
		// Deterministic computation: a failure here is bad input, and
		// retrying without changing it cannot succeed.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Data:    domain.SimulationResult{Params: params, Timeline: timeline},
	})
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List()
	if err != nil {
		s.logger.Error("list scenarios failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list scenarios")
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: summaries})
}

func (s *Server) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "scenario name is required")
		return
	}

	id, err := s.store.Save(req.Name, &req.Data)
	if err != nil {
		s.logger.Error("save scenario failed", "name", req.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save scenario")
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: map[string]string{"id": id}})
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.PathValue("id"))
	if errors.Is(err, scenario.ErrNotFound) {
		writeError(w, http.StatusNotFound, "scenario not found")
		return
	}
	if err != nil {
		s.logger.Error("get scenario failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load scenario")
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: doc})
}

func (s *Server) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	err := s.store.Delete(r.PathValue("id"))
	if errors.Is(err, scenario.ErrNotFound) {
		writeError(w, http.StatusNotFound, "scenario not found")
		return
	}
	if err != nil {
		s.logger.Error("delete scenario failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete scenario")
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}
