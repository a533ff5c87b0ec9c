// internal/server/rest.go - REST surface for the web UI
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"nutrition-advisor/internal/engine"
	"nutrition-advisor/internal/models"
)

func (s *AdvisorServer) registerRoutes(r *mux.Router) {
	r.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/api/limits", s.handleLimits).Methods("POST")
	r.HandleFunc("/api/recipes/evaluate", s.handleRecipeEvaluate).Methods("POST")
	r.HandleFunc("/api/meals", s.handleCreateMeal).Methods("POST")
	r.HandleFunc("/api/meals", s.handleListMeals).Methods("GET")
	r.HandleFunc("/api/consumption", s.handleConsumption).Methods("GET")
	r.HandleFunc("/api/profile/{user}", s.handlePutProfile).Methods("PUT")
	r.HandleFunc("/api/profile/{user}", s.handleGetProfile).Methods("GET")
	r.HandleFunc("/api/ingredients/match", s.handleIngredientMatch).Methods("GET")
	r.HandleFunc("/api/ingredients/aliases", s.handleLearnAlias).Methods("POST")
	r.HandleFunc("/api/ingredients/extract", s.handleExtract).Methods("POST")
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}
		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)
		log.Printf("RES: %d - %s %s - %v", wrapper.statusCode, r.Method, r.URL.Path, duration)
	})
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *AdvisorServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type limitsRequest struct {
	Profile models.Profile `json:"profile"`
	Target  int            `json:"target,omitempty"`
}

func (s *AdvisorServer) handleLimits(w http.ResponseWriter, r *http.Request) {
	var req limitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	target := req.Target
	if target == 0 {
		target = engine.EstimateDailyCalories(req.Profile, s.config.ActivityFactor)
	}

	writeJSON(w, http.StatusOK, engine.ComputeDailyLimits(req.Profile, target))
}

func (s *AdvisorServer) handleRecipeEvaluate(w http.ResponseWriter, r *http.Request) {
	var params EvaluateRecipeParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	profile, err := s.resolveProfile(params.Profile, params.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	target := params.Target
	if target == 0 {
		target = engine.EstimateDailyCalories(*profile, s.config.ActivityFactor)
	}

	day := params.Day
	if day == "" {
		day = time.Now().Format("2006-01-02")
	}

	var consumed models.NutritionVector
	if params.UserID != "" {
		days, err := s.storage.GetMealRecords(params.UserID, day, day)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		consumed = engine.AggregateConsumption(days)
	}

	warnings := engine.EvaluateRecipeRisk(params.Recipe, params.Ingredients, *profile, consumed, target)
	substitutions := engine.IdentifySubstitutions(warnings, params.Ingredients, *profile)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"warnings":      warnings,
		"substitutions": substitutions,
		"consumed":      consumed,
		"daily_limits":  engine.ComputeDailyLimits(*profile, target),
	})
}

func (s *AdvisorServer) handleCreateMeal(w http.ResponseWriter, r *http.Request) {
	var params LogMealParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	if params.UserID == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("user_id is required"))
		return
	}

	rec, err := buildMealRecord(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.storage.SaveMealRecord(rec); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (s *AdvisorServer) handleListMeals(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("user query parameter is required"))
		return
	}

	days, err := s.storage.GetMealRecords(user, r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, days)
}

func (s *AdvisorServer) handleConsumption(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("user query parameter is required"))
		return
	}

	days, err := s.storage.GetMealRecords(user, r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, engine.AggregateConsumption(days))
}

func (s *AdvisorServer) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	user := mux.Vars(r)["user"]

	var p models.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	p.Gender = models.NormalizeGender(string(p.Gender))
	p.Goal = models.NormalizeGoal(string(p.Goal))

	if err := s.storage.SaveProfile(user, &p); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *AdvisorServer) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user := mux.Vars(r)["user"]

	p, err := s.storage.GetProfile(user)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *AdvisorServer) handleIngredientMatch(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("name query parameter is required"))
		return
	}

	candidates, err := s.matcher.Match(r.Context(), r.URL.Query().Get("user"), name)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, candidates)
}

type learnAliasRequest struct {
	UserID        string `json:"user_id"`
	RawName       string `json:"raw_name"`
	CanonicalName string `json:"canonical_name"`
}

func (s *AdvisorServer) handleLearnAlias(w http.ResponseWriter, r *http.Request) {
	var req learnAliasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	if req.UserID == "" || req.RawName == "" || req.CanonicalName == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("user_id, raw_name, and canonical_name are required"))
		return
	}

	if err := s.matcher.Learn(req.UserID, req.RawName, req.CanonicalName); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "learned"})
}

func (s *AdvisorServer) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractIngredientsParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("text is required"))
		return
	}

	ingredients, err := s.extraction.ExtractIngredients(r.Context(), req.Text)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ingredients": ingredients})
}
