// internal/engine/consumption.go
package engine

import (
	"math"

	"nutrition-advisor/internal/models"
)

// AggregateConsumption folds a set of day logs into running totals per
// nutrient. Only records with status "eaten" contribute; each record's
// nutrition is scaled by its portion (a zero or missing portion counts as
// one, matching the legacy logs where portion was optional). Empty input
// yields the zero vector.
func AggregateConsumption(days []models.DayLog) models.NutritionVector {
	var total models.NutritionVector
	for _, day := range days {
		for _, meal := range day.Meals {
			if meal.Status != models.StatusEaten {
				continue
			}
			portion := meal.Portion
			if portion == 0 {
				portion = 1
			}
			total.AddScaled(meal.Nutrition, portion)
		}
	}

	total.Calories = round2(total.Calories)
	total.Protein = round2(total.Protein)
	total.Fat = round2(total.Fat)
	total.Carbs = round2(total.Carbs)
	total.Fiber = round2(total.Fiber)
	total.Sugar = round2(total.Sugar)
	total.Sodium = round2(total.Sodium)
	return total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
