// internal/engine/energy.go
package engine

import (
	"math"

	"nutrition-advisor/internal/models"
)

// ActivityFactors maps activity level names to their TDEE multiplier. This
// is the single source of truth for valid activity levels.
var ActivityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// DefaultActivityFactor is assumed when a profile carries no activity level.
const DefaultActivityFactor = 1.375

// Calorie shift applied on top of maintenance expenditure per goal.
const goalCalorieShift = 500

// EstimateDailyCalories computes a goal-adjusted daily calorie target from a
// profile via Mifflin-St Jeor. Returns 0 when age, height, or weight is
// missing or non-positive; callers must treat 0 as "insufficient data", not
// as a valid target.
//
// A recognized activity level on the profile takes precedence over
// activityFactor; activityFactor <= 0 falls back to DefaultActivityFactor.
func EstimateDailyCalories(p models.Profile, activityFactor float64) int {
	if p.Age <= 0 || p.HeightCm <= 0 || p.WeightKg <= 0 {
		return 0
	}

	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	switch p.Gender {
	case models.GenderMale:
		bmr += 5
	case models.GenderFemale:
		bmr -= 161
	default:
		// Averaged constant for profiles outside the two sexed formulas.
		bmr -= 78
	}

	if f, ok := ActivityFactors[p.ActivityLevel]; ok {
		activityFactor = f
	}
	if activityFactor <= 0 {
		activityFactor = DefaultActivityFactor
	}
	tdee := bmr * activityFactor

	switch models.NormalizeGoal(string(p.Goal)) {
	case models.GoalLoseWeight:
		tdee -= goalCalorieShift
	case models.GoalGainWeight:
		tdee += goalCalorieShift
	}

	return int(math.Round(tdee))
}
