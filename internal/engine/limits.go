// internal/engine/limits.go
package engine

import (
	"math"

	"nutrition-advisor/internal/models"
)

// Acceptable Macronutrient Distribution Ranges, as fractions of the daily
// calorie target.
const (
	proteinPctMin = 0.10
	proteinPctMax = 0.35
	fatPctTarget  = 0.30
	fatPctMin     = 0.20
	fatPctMax     = 0.35
	carbPctMin    = 0.45
	carbPctMax    = 0.65
)

// proteinPerKg is grams of protein per kg of body weight by goal.
var proteinPerKg = map[models.Goal]float64{
	models.GoalMaintainWeight: 1.0,
	models.GoalLoseWeight:     1.6,
	models.GoalGainWeight:     1.8,
}

const (
	sodiumLimitMg  = 2000 // WHO ceiling, not calorie-scaled
	sugarPct       = 0.05 // stricter of the two WHO thresholds
	fiberPer1000   = 14.0
	fiberMinMale   = 30
	fiberMaxMale   = 38
	fiberMinFemale = 21
	fiberMaxFemale = 25
)

// ComputeDailyLimits derives the full daily budget from a profile and a
// calorie target. A non-positive target yields zeroed macros with the fixed
// micronutrient defaults.
func ComputeDailyLimits(p models.Profile, dailyCalorieTarget int) models.DailyLimits {
	if dailyCalorieTarget <= 0 {
		return models.DailyLimits{
			FiberG:   defaultFiberLimit(p.Gender),
			SodiumMg: sodiumLimitMg,
		}
	}

	proteinG, fatG, carbsG := allocateMacros(float64(dailyCalorieTarget), p.WeightKg, models.NormalizeGoal(string(p.Goal)))

	return models.DailyLimits{
		Calories: dailyCalorieTarget,
		ProteinG: proteinG,
		FatG:     fatG,
		CarbsG:   carbsG,
		FiberG:   fiberLimit(dailyCalorieTarget, p.Gender),
		SodiumMg: sodiumLimitMg,
		SugarG:   int(math.Round(float64(dailyCalorieTarget) * sugarPct / 4)),
	}
}

// allocateMacros distributes the calorie target across protein, fat, and
// carbohydrate grams. Protein comes from body weight and goal, clamped to
// its AMDR band; fat starts at a fixed 30%; carbohydrate takes the
// remainder and is pulled back into its band by adjusting fat only.
func allocateMacros(target, weightKg float64, goal models.Goal) (proteinG, fatG, carbsG int) {
	proteinKcal := weightKg * proteinPerKg[goal] * 4
	if pct := proteinKcal / target; pct < proteinPctMin {
		proteinKcal = proteinPctMin * target
	} else if pct > proteinPctMax {
		proteinKcal = proteinPctMax * target
	}

	fatKcal := fatPctTarget * target
	fatKcal = rebalanceFat(target, proteinKcal, fatKcal)
	carbKcal := target - proteinKcal - fatKcal

	proteinG = int(math.Round(proteinKcal / 4))
	fatG = int(math.Round(fatKcal / 9))
	carbsG = int(math.Round(carbKcal / 4))
	return proteinG, fatG, carbsG
}

// rebalanceFat returns the fat calories that keep the carbohydrate share
// inside [45%,65%], moving fat only while fat itself stays inside [20%,35%].
// When fat would leave its own band, it is left unchanged and the
// out-of-band carbohydrate share stands. Protein is never touched here.
func rebalanceFat(target, proteinKcal, fatKcal float64) float64 {
	carbPct := (target - proteinKcal - fatKcal) / target

	switch {
	case carbPct < carbPctMin:
		reduced := target - proteinKcal - carbPctMin*target
		if reduced/target >= fatPctMin {
			return reduced
		}
	case carbPct > carbPctMax:
		raised := target - proteinKcal - carbPctMax*target
		if raised/target <= fatPctMax {
			return raised
		}
	}
	return fatKcal
}

// fiberLimit scales with calories (14 g per 1000 kcal) and is clamped to the
// gender band.
func fiberLimit(target int, gender models.Gender) int {
	g := int(math.Round(float64(target) / 1000 * fiberPer1000))
	lo, hi := fiberMinFemale, fiberMaxFemale
	if gender == models.GenderMale {
		lo, hi = fiberMinMale, fiberMaxMale
	}
	if g < lo {
		return lo
	}
	if g > hi {
		return hi
	}
	return g
}

func defaultFiberLimit(gender models.Gender) int {
	if gender == models.GenderMale {
		return fiberMaxMale
	}
	return fiberMaxFemale
}
