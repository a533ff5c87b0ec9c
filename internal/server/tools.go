// internal/server/tools.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/google/uuid"

	"nutrition-advisor/internal/engine"
	"nutrition-advisor/internal/models"
)

type EstimateCaloriesParams struct {
	Profile        models.Profile `json:"profile" description:"Biometric profile to estimate for"`
	ActivityFactor float64        `json:"activity_factor,omitempty" description:"TDEE multiplier (defaults to the profile's activity level)"`
}

type ComputeDailyLimitsParams struct {
	UserID  string          `json:"user_id,omitempty" description:"Stored profile to use when no inline profile is given"`
	Profile *models.Profile `json:"profile,omitempty" description:"Inline profile (overrides user_id)"`
	Target  int             `json:"target,omitempty" description:"Daily calorie target (estimated from the profile when omitted)"`
}

type LogMealParams struct {
	UserID    string                 `json:"user_id" description:"Owner of the meal record"`
	Day       string                 `json:"day,omitempty" description:"Day of the meal (YYYY-MM-DD, defaults to today)"`
	RecipeID  string                 `json:"recipe_id,omitempty" description:"Recipe the meal came from"`
	Portion   float64                `json:"portion,omitempty" description:"Portion multiplier (defaults to 1)"`
	Status    string                 `json:"status,omitempty" description:"planned, eaten, or skipped (defaults to eaten)"`
	Nutrition models.NutritionVector `json:"nutrition" description:"Per-portion nutrition totals"`
}

type GetConsumptionParams struct {
	UserID   string `json:"user_id" description:"User whose meal log to aggregate"`
	StartDay string `json:"start_day,omitempty" description:"First day to include (YYYY-MM-DD)"`
	EndDay   string `json:"end_day,omitempty" description:"Last day to include (YYYY-MM-DD)"`
}

type EvaluateRecipeParams struct {
	UserID      string                 `json:"user_id,omitempty" description:"Stored profile and meal log to evaluate against"`
	Profile     *models.Profile        `json:"profile,omitempty" description:"Inline profile (overrides user_id)"`
	Recipe      models.NutritionVector `json:"recipe" description:"Candidate recipe nutrition totals"`
	Ingredients []models.Ingredient    `json:"ingredients,omitempty" description:"Candidate recipe ingredient list"`
	Target      int                    `json:"target,omitempty" description:"Daily calorie target (estimated when omitted)"`
	Day         string                 `json:"day,omitempty" description:"Day whose consumption to count (defaults to today)"`
}

type ExtractIngredientsParams struct {
	Text string `json:"text" description:"Free-text recipe or meal description"`
}

// extractParams safely extracts parameters from the request arguments
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("failed to unmarshal parameters: %w", err)
	}

	return nil
}

// resolveProfile prefers an inline profile and falls back to storage.
func (s *AdvisorServer) resolveProfile(inline *models.Profile, userID string) (*models.Profile, error) {
	if inline != nil {
		return inline, nil
	}
	if userID == "" {
		return nil, fmt.Errorf("either profile or user_id is required")
	}
	return s.storage.GetProfile(userID)
}

func (s *AdvisorServer) handleEstimateCalories(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params EstimateCaloriesParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	factor := params.ActivityFactor
	if factor <= 0 {
		factor = s.config.ActivityFactor
	}
	target := engine.EstimateDailyCalories(params.Profile, factor)

	return s.createJSONResponse(map[string]interface{}{
		"daily_calorie_target": target,
		"sufficient_data":      target > 0,
	})
}

func (s *AdvisorServer) handleComputeDailyLimits(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ComputeDailyLimitsParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	profile, err := s.resolveProfile(params.Profile, params.UserID)
	if err != nil {
		return nil, err
	}

	target := params.Target
	if target == 0 {
		target = engine.EstimateDailyCalories(*profile, s.config.ActivityFactor)
	}

	return s.createJSONResponse(engine.ComputeDailyLimits(*profile, target))
}

func (s *AdvisorServer) handleLogMeal(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params LogMealParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if params.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	rec, err := buildMealRecord(params)
	if err != nil {
		return nil, err
	}

	if err := s.storage.SaveMealRecord(rec); err != nil {
		return nil, fmt.Errorf("failed to save meal record: %w", err)
	}

	return s.createJSONResponse(rec)
}

func buildMealRecord(params LogMealParams) (*models.MealRecord, error) {
	day := params.Day
	if day == "" {
		day = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, fmt.Errorf("invalid day format: %w", err)
	}

	status := models.MealStatus(params.Status)
	switch status {
	case "":
		status = models.StatusEaten
	case models.StatusPlanned, models.StatusEaten, models.StatusSkipped:
	default:
		return nil, fmt.Errorf("invalid status %q", params.Status)
	}

	portion := params.Portion
	if portion < 0 {
		return nil, fmt.Errorf("portion must be non-negative")
	}
	if portion == 0 {
		portion = 1
	}

	return &models.MealRecord{
		ID:        uuid.NewString(),
		UserID:    params.UserID,
		Day:       day,
		RecipeID:  params.RecipeID,
		Portion:   portion,
		Status:    status,
		Nutrition: params.Nutrition,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (s *AdvisorServer) handleGetConsumption(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetConsumptionParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if params.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	days, err := s.storage.GetMealRecords(params.UserID, params.StartDay, params.EndDay)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve meal records: %w", err)
	}

	return s.createJSONResponse(engine.AggregateConsumption(days))
}

func (s *AdvisorServer) handleEvaluateRecipe(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params EvaluateRecipeParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	profile, err := s.resolveProfile(params.Profile, params.UserID)
	if err != nil {
		return nil, err
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
			return nil, fmt.Errorf("failed to retrieve meal records: %w", err)
		}
		consumed = engine.AggregateConsumption(days)
	}

	warnings := engine.EvaluateRecipeRisk(params.Recipe, params.Ingredients, *profile, consumed, target)
	substitutions := engine.IdentifySubstitutions(warnings, params.Ingredients, *profile)

	return s.createJSONResponse(map[string]interface{}{
		"warnings":      warnings,
		"substitutions": substitutions,
		"consumed":      consumed,
		"daily_limits":  engine.ComputeDailyLimits(*profile, target),
	})
}

func (s *AdvisorServer) handleExtractIngredients(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ExtractIngredientsParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if params.Text == "" {
		return nil, fmt.Errorf("text is required")
	}

	ingredients, err := s.extraction.ExtractIngredients(ctx, params.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to extract ingredients: %w", err)
	}

	return s.createJSONResponse(map[string]interface{}{
		"ingredients": ingredients,
	})
}

// Register all tools - the HTTP handler dispatches by name, this just keeps
// the canonical tool list in one place.
func (s *AdvisorServer) registerTools() error {
	tools := []string{
		"estimate_calories",
		"compute_daily_limits",
		"log_meal",
		"get_consumption",
		"evaluate_recipe",
		"extract_ingredients",
	}

	for _, name := range tools {
		fmt.Printf("Registered tool: %s\n", name)
	}

	return nil
}
