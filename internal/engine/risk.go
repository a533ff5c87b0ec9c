// internal/engine/risk.go
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"nutrition-advisor/internal/models"
)

// excessRule describes one nutrient checked for daily-limit excess.
type excessRule struct {
	reason   models.ReasonType
	label    string
	unit     string
	decimals int
	value    func(models.NutritionVector) float64
	limit    func(models.DailyLimits) int
}

// Excess warnings are emitted for exactly these three nutrients, in this
// order. Calories, protein, carbs, and fiber have limits too but are never
// warned on; see DESIGN.md for why that asymmetry is kept.
var excessRules = []excessRule{
	{
		reason: models.ReasonFat, label: "Fat", unit: "g", decimals: 1,
		value: func(v models.NutritionVector) float64 { return v.Fat },
		limit: func(l models.DailyLimits) int { return l.FatG },
	},
	{
		reason: models.ReasonSodium, label: "Sodium", unit: "mg", decimals: 0,
		value: func(v models.NutritionVector) float64 { return v.Sodium },
		limit: func(l models.DailyLimits) int { return l.SodiumMg },
	},
	{
		reason: models.ReasonSugar, label: "Sugar", unit: "g", decimals: 1,
		value: func(v models.NutritionVector) float64 { return v.Sugar },
		limit: func(l models.DailyLimits) int { return l.SugarG },
	},
}

// EvaluateRecipeRisk checks a candidate recipe against the user's allergies
// and remaining daily budget. Allergy warnings always precede nutrient
// warnings. A recipe with no calorie data produces no warnings at all; the
// advisory core degrades rather than guessing from incomplete totals.
func EvaluateRecipeRisk(recipe models.NutritionVector, ingredients []models.Ingredient, p models.Profile, consumed models.NutritionVector, dailyCalorieTarget int) []models.Warning {
	if recipe.Calories == 0 {
		return nil
	}

	var warnings []models.Warning

	if matched := matchAllergens(p.Allergies, ingredients); len(matched) > 0 {
		warnings = append(warnings, models.Warning{
			Type:               models.WarnError,
			ReasonType:         models.ReasonAllergy,
			Message:            fmt.Sprintf("Recipe contains ingredients matching your allergies: %s", strings.Join(matched, ", ")),
			AllergyIngredients: matched,
		})
	}

	limits := ComputeDailyLimits(p, dailyCalorieTarget)

	for _, rule := range excessRules {
		eaten := rule.value(consumed)
		added := rule.value(recipe)
		limit := float64(rule.limit(limits))
		if eaten+added <= limit {
			continue
		}
		remaining := limit - eaten
		if remaining < 0 {
			remaining = 0
		}
		warnings = append(warnings, models.Warning{
			Type:       models.WarnWarning,
			ReasonType: rule.reason,
			Message: fmt.Sprintf("%s exceeds the daily limit by %s %s (limit %s %s, consumed %s %s, %s %s remaining)",
				rule.label,
				formatAmount(eaten+added-limit, rule.decimals), rule.unit,
				formatAmount(limit, rule.decimals), rule.unit,
				formatAmount(eaten, rule.decimals), rule.unit,
				formatAmount(remaining, rule.decimals), rule.unit),
		})
	}

	return warnings
}

// matchAllergens returns the names of ingredients matching any user allergy.
// Matching is case-insensitive and symmetric: the allergy may be contained
// in the ingredient name or the ingredient name in the allergy.
func matchAllergens(allergies []string, ingredients []models.Ingredient) []string {
	var matched []string
	seen := make(map[string]bool)
	for _, allergy := range allergies {
		allergy = strings.ToLower(strings.TrimSpace(allergy))
		if allergy == "" {
			continue
		}
		for _, ing := range ingredients {
			name := strings.ToLower(strings.TrimSpace(ing.Name))
			if name == "" || seen[ing.Name] {
				continue
			}
			if strings.Contains(name, allergy) || strings.Contains(allergy, name) {
				seen[ing.Name] = true
				matched = append(matched, ing.Name)
			}
		}
	}
	return matched
}

func formatAmount(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
