package engine

import (
	"reflect"
	"strings"
	"testing"

	"nutrition-advisor/internal/models"
)

func maleProfile() models.Profile {
	return models.Profile{
		Age: 30, Gender: models.GenderMale, HeightCm: 175, WeightKg: 70,
		Goal: models.GoalMaintainWeight,
	}
}

func TestEvaluateRecipeRisk_MissingCaloriesProducesNothing(t *testing.T) {
	p := maleProfile()
	p.Allergies = []string{"tôm"}
	recipe := models.NutritionVector{Fat: 500, Sodium: 9000, Sugar: 300}
	ingredients := []models.Ingredient{{Name: "tôm sú"}}

	warnings := EvaluateRecipeRisk(recipe, ingredients, p, models.NutritionVector{}, 2000)
	if len(warnings) != 0 {
		t.Errorf("expected no warnings for a recipe without calorie data, got %d", len(warnings))
	}
}

func TestEvaluateRecipeRisk_AllergyMatchingIsSymmetric(t *testing.T) {
	recipe := models.NutritionVector{Calories: 500}

	t.Run("allergy contained in ingredient", func(t *testing.T) {
		p := maleProfile()
		p.Allergies = []string{"tôm"}
		warnings := EvaluateRecipeRisk(recipe, []models.Ingredient{{Name: "tôm sú"}}, p, models.NutritionVector{}, 2000)
		if len(warnings) != 1 || warnings[0].ReasonType != models.ReasonAllergy {
			t.Fatalf("expected one allergy warning, got %+v", warnings)
		}
	})

	t.Run("ingredient contained in allergy", func(t *testing.T) {
		p := maleProfile()
		p.Allergies = []string{"tôm sú"}
		warnings := EvaluateRecipeRisk(recipe, []models.Ingredient{{Name: "tôm"}}, p, models.NutritionVector{}, 2000)
		if len(warnings) != 1 || warnings[0].ReasonType != models.ReasonAllergy {
			t.Fatalf("expected one allergy warning, got %+v", warnings)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		p := maleProfile()
		p.Allergies = []string{"Shrimp"}
		warnings := EvaluateRecipeRisk(recipe, []models.Ingredient{{Name: "dried SHRIMP"}}, p, models.NutritionVector{}, 2000)
		if len(warnings) != 1 {
			t.Fatalf("expected one allergy warning, got %+v", warnings)
		}
	})
}

func TestEvaluateRecipeRisk_AllergyWarningAggregatesMatches(t *testing.T) {
	p := maleProfile()
	p.Allergies = []string{"tôm", "mực"}
	ingredients := []models.Ingredient{
		{Name: "tôm sú"},
		{Name: "mực ống"},
		{Name: "rau muống"},
	}

	warnings := EvaluateRecipeRisk(models.NutritionVector{Calories: 500}, ingredients, p, models.NutritionVector{}, 2000)
	if len(warnings) != 1 {
		t.Fatalf("expected a single aggregated allergy warning, got %d", len(warnings))
	}

	w := warnings[0]
	if w.Type != models.WarnError {
		t.Errorf("allergy warning type = %s, want error", w.Type)
	}
	want := []string{"tôm sú", "mực ống"}
	if !reflect.DeepEqual(w.AllergyIngredients, want) {
		t.Errorf("AllergyIngredients = %v, want %v", w.AllergyIngredients, want)
	}
	if !strings.Contains(w.Message, "tôm sú, mực ống") {
		t.Errorf("message should list matched names comma-joined, got %q", w.Message)
	}
}

func TestEvaluateRecipeRisk_OnlyFatSodiumSugarWarn(t *testing.T) {
	// Calories, protein, carbs, and fiber wildly over budget must produce
	// zero warnings.
	recipe := models.NutritionVector{
		Calories: 5000, Protein: 500, Carbs: 1000, Fiber: 100,
		Fat: 10, Sodium: 100, Sugar: 5,
	}

	warnings := EvaluateRecipeRisk(recipe, nil, maleProfile(), models.NutritionVector{}, 2000)
	if len(warnings) != 0 {
		t.Errorf("expected no warnings (only fat/sodium/sugar are checked), got %+v", warnings)
	}
}

func TestEvaluateRecipeRisk_WarningOrderIsFixed(t *testing.T) {
	p := maleProfile()
	p.Allergies = []string{"tôm"}
	// Limits for male/70kg/maintain at 2000 kcal: fat 67 g, sodium 2000 mg,
	// sugar 25 g. Everything exceeds.
	recipe := models.NutritionVector{Calories: 900, Fat: 80, Sodium: 2500, Sugar: 30}
	ingredients := []models.Ingredient{{Name: "tôm sú"}}

	warnings := EvaluateRecipeRisk(recipe, ingredients, p, models.NutritionVector{}, 2000)

	wantOrder := []models.ReasonType{models.ReasonAllergy, models.ReasonFat, models.ReasonSodium, models.ReasonSugar}
	if len(warnings) != len(wantOrder) {
		t.Fatalf("got %d warnings, want %d", len(warnings), len(wantOrder))
	}
	for i, rt := range wantOrder {
		if warnings[i].ReasonType != rt {
			t.Errorf("warnings[%d].ReasonType = %s, want %s", i, warnings[i].ReasonType, rt)
		}
	}
}

func TestEvaluateRecipeRisk_ConsumedCountsTowardLimit(t *testing.T) {
	// Limit fat 67 g; consumed 60 + recipe 10 = 70, 3 g over, 7 g remaining.
	consumed := models.NutritionVector{Fat: 60}
	recipe := models.NutritionVector{Calories: 400, Fat: 10}

	warnings := EvaluateRecipeRisk(recipe, nil, maleProfile(), consumed, 2000)
	if len(warnings) != 1 || warnings[0].ReasonType != models.ReasonFat {
		t.Fatalf("expected one fat warning, got %+v", warnings)
	}

	msg := warnings[0].Message
	for _, fragment := range []string{"3.0 g", "limit 67.0 g", "consumed 60.0 g", "7.0 g remaining"} {
		if !strings.Contains(msg, fragment) {
			t.Errorf("message missing %q: %q", fragment, msg)
		}
	}
}

func TestEvaluateRecipeRisk_RemainingNeverNegative(t *testing.T) {
	// Already past the sodium limit before the recipe: remaining clamps to 0.
	consumed := models.NutritionVector{Sodium: 2500}
	recipe := models.NutritionVector{Calories: 400, Sodium: 100}

	warnings := EvaluateRecipeRisk(recipe, nil, maleProfile(), consumed, 2000)
	if len(warnings) != 1 {
		t.Fatalf("expected one sodium warning, got %+v", warnings)
	}
	if !strings.Contains(warnings[0].Message, "0 mg remaining") {
		t.Errorf("remaining headroom should clamp to 0, got %q", warnings[0].Message)
	}
}

func TestEvaluateRecipeRisk_SodiumUsesWholeNumbers(t *testing.T) {
	consumed := models.NutritionVector{Sodium: 1800.4}
	recipe := models.NutritionVector{Calories: 400, Sodium: 350.2}

	warnings := EvaluateRecipeRisk(recipe, nil, maleProfile(), consumed, 2000)
	if len(warnings) != 1 {
		t.Fatalf("expected one sodium warning, got %+v", warnings)
	}
	if !strings.Contains(warnings[0].Message, "limit 2000 mg") {
		t.Errorf("sodium amounts should use 0 decimals, got %q", warnings[0].Message)
	}
}

func TestEvaluateRecipeRisk_NoWarningAtExactLimit(t *testing.T) {
	// totalAfter == limit emits nothing.
	recipe := models.NutritionVector{Calories: 400, Sugar: 25}

	warnings := EvaluateRecipeRisk(recipe, nil, maleProfile(), models.NutritionVector{}, 2000)
	if len(warnings) != 0 {
		t.Errorf("expected no warning at exactly the limit, got %+v", warnings)
	}
}

func TestEvaluateRecipeRisk_Idempotent(t *testing.T) {
	p := maleProfile()
	p.Allergies = []string{"tôm"}
	recipe := models.NutritionVector{Calories: 900, Fat: 80, Sodium: 2500, Sugar: 30}
	ingredients := []models.Ingredient{{Name: "tôm sú"}, {Name: "nước mắm"}}
	consumed := models.NutritionVector{Fat: 12.5}

	first := EvaluateRecipeRisk(recipe, ingredients, p, consumed, 2000)
	second := EvaluateRecipeRisk(recipe, ingredients, p, consumed, 2000)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs should yield identical warning lists:\n%+v\nvs\n%+v", first, second)
	}
}
