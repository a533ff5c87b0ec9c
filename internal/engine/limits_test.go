package engine

import (
	"math"
	"testing"

	"nutrition-advisor/internal/models"
)

func TestComputeDailyLimits_LoseWeightScenario(t *testing.T) {
	p := models.Profile{Gender: models.GenderMale, WeightKg: 70, Goal: models.GoalLoseWeight}
	limits := ComputeDailyLimits(p, 2000)

	// 70kg * 1.6 g/kg = 112 g = 448 kcal = 22.4%, inside the band, unclamped.
	if limits.ProteinG != 112 {
		t.Errorf("ProteinG = %d, want 112", limits.ProteinG)
	}
	// Fat 30% of 2000 = 600 kcal / 9 = 66.7 g.
	if limits.FatG != 67 {
		t.Errorf("FatG = %d, want 67", limits.FatG)
	}
	// Carbs = (2000 - 448 - 600) / 4 = 238 g = 47.6%, no rebalance.
	if limits.CarbsG != 238 {
		t.Errorf("CarbsG = %d, want 238", limits.CarbsG)
	}
}

func TestComputeDailyLimits_MaintainScenario(t *testing.T) {
	p := models.Profile{Gender: models.GenderMale, WeightKg: 70, Goal: models.GoalMaintainWeight}
	limits := ComputeDailyLimits(p, 1200)

	// 70 g = 280 kcal = 23.3%; fat 360 kcal = 40 g; carbs 560 kcal = 140 g = 46.7%.
	if limits.ProteinG != 70 {
		t.Errorf("ProteinG = %d, want 70", limits.ProteinG)
	}
	if limits.FatG != 40 {
		t.Errorf("FatG = %d, want 40", limits.FatG)
	}
	if limits.CarbsG != 140 {
		t.Errorf("CarbsG = %d, want 140", limits.CarbsG)
	}
}

func TestComputeDailyLimits_ProteinClampTriggersRebalance(t *testing.T) {
	// 200kg at 1.6 g/kg = 320 g = 1280 kcal = 64% of 2000: clamped to 35%
	// (700 kcal = 175 g). Carbs drop to 35%, so fat is reduced to put carbs
	// at exactly 45% while staying at its own 20% floor.
	p := models.Profile{Gender: models.GenderMale, WeightKg: 200, Goal: models.GoalLoseWeight}
	limits := ComputeDailyLimits(p, 2000)

	if limits.ProteinG != 175 {
		t.Errorf("ProteinG = %d, want 175 (clamped to 35%%)", limits.ProteinG)
	}
	// Fat reduced from 600 to 400 kcal = 44.4 g.
	if limits.FatG != 44 {
		t.Errorf("FatG = %d, want 44", limits.FatG)
	}
	// Carbs land at exactly 45%: 900 kcal = 225 g.
	if limits.CarbsG != 225 {
		t.Errorf("CarbsG = %d, want 225", limits.CarbsG)
	}
}

func TestComputeDailyLimits_ProteinFloorClamp(t *testing.T) {
	// 20kg maintain at 1.0 g/kg = 80 kcal = 4% of 2000: clamped up to 10%.
	p := models.Profile{Gender: models.GenderFemale, WeightKg: 20, Goal: models.GoalMaintainWeight}
	limits := ComputeDailyLimits(p, 2000)

	// 10% of 2000 = 200 kcal = 50 g.
	if limits.ProteinG != 50 {
		t.Errorf("ProteinG = %d, want 50 (clamped to 10%%)", limits.ProteinG)
	}
}

func TestRebalanceFat_EscapeHatch(t *testing.T) {
	// Carbs below 45% but reducing fat far enough would push fat under its
	// 20% floor: fat stays put and carbs stay out of band.
	got := rebalanceFat(1000, 400, 300)
	if got != 300 {
		t.Errorf("rebalanceFat left fat at %v, want unchanged 300", got)
	}
}

func TestRebalanceFat_HighCarbAdjustment(t *testing.T) {
	// Carbs at 75%: fat is raised to pull carbs down to exactly 65%.
	got := rebalanceFat(1000, 50, 200)
	if got != 300 {
		t.Errorf("rebalanceFat = %v, want 300", got)
	}
}

func TestAllocateMacros_EnergyConservation(t *testing.T) {
	goals := []models.Goal{models.GoalLoseWeight, models.GoalMaintainWeight, models.GoalGainWeight}
	for _, target := range []int{1200, 1500, 1800, 2000, 2500, 3000, 4000} {
		for _, weight := range []float64{45, 60, 70, 85, 110, 150} {
			for _, goal := range goals {
				proteinG, fatG, carbsG := allocateMacros(float64(target), weight, goal)

				sum := float64(proteinG*4 + fatG*9 + carbsG*4)
				if math.Abs(sum-float64(target)) > 9 {
					t.Errorf("target=%d weight=%v goal=%s: macro kcal sum %v deviates beyond rounding tolerance",
						target, weight, goal, sum)
				}

				proteinPct := float64(proteinG) * 4 / float64(target)
				if proteinPct < 0.095 || proteinPct > 0.355 {
					t.Errorf("target=%d weight=%v goal=%s: protein share %.3f outside [10%%,35%%]",
						target, weight, goal, proteinPct)
				}

				fatPct := float64(fatG) * 9 / float64(target)
				if fatPct < 0.195 || fatPct > 0.355 {
					t.Errorf("target=%d weight=%v goal=%s: fat share %.3f outside [20%%,35%%]",
						target, weight, goal, fatPct)
				}
			}
		}
	}
}

func TestComputeDailyLimits_FiberBands(t *testing.T) {
	tests := []struct {
		name   string
		gender models.Gender
		target int
		want   int
	}{
		{"male tiny target clamps to floor", models.GenderMale, 600, 30},
		{"male huge target clamps to ceiling", models.GenderMale, 5000, 38},
		{"male mid target unclamped", models.GenderMale, 2500, 35},
		{"female mid target clamps to ceiling", models.GenderFemale, 2000, 25},
		{"female small target unclamped", models.GenderFemale, 1600, 22},
		{"other uses female band", models.GenderOther, 5000, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.Profile{Gender: tt.gender, WeightKg: 70, Goal: models.GoalMaintainWeight}
			limits := ComputeDailyLimits(p, tt.target)
			if limits.FiberG != tt.want {
				t.Errorf("FiberG = %d, want %d", limits.FiberG, tt.want)
			}
		})
	}
}

func TestComputeDailyLimits_SodiumAndSugar(t *testing.T) {
	p := models.Profile{Gender: models.GenderMale, WeightKg: 70, Goal: models.GoalMaintainWeight}
	limits := ComputeDailyLimits(p, 2000)

	if limits.SodiumMg != 2000 {
		t.Errorf("SodiumMg = %d, want constant 2000", limits.SodiumMg)
	}
	// 5% of 2000 kcal / 4 = 25 g.
	if limits.SugarG != 25 {
		t.Errorf("SugarG = %d, want 25", limits.SugarG)
	}
}

func TestComputeDailyLimits_InvalidTarget(t *testing.T) {
	male := models.Profile{Gender: models.GenderMale}
	limits := ComputeDailyLimits(male, 0)

	if limits.Calories != 0 || limits.ProteinG != 0 || limits.FatG != 0 || limits.CarbsG != 0 {
		t.Errorf("expected zeroed macros, got %+v", limits)
	}
	if limits.FiberG != 38 {
		t.Errorf("FiberG default = %d, want 38 for male", limits.FiberG)
	}
	if limits.SodiumMg != 2000 {
		t.Errorf("SodiumMg default = %d, want 2000", limits.SodiumMg)
	}
	if limits.SugarG != 0 {
		t.Errorf("SugarG default = %d, want 0", limits.SugarG)
	}

	female := models.Profile{Gender: models.GenderFemale}
	if got := ComputeDailyLimits(female, -100).FiberG; got != 25 {
		t.Errorf("FiberG default = %d, want 25 for female", got)
	}
}
