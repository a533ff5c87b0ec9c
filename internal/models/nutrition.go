// internal/models/nutrition.go
package models

import "time"

// NutritionVector is the seven-field nutrient totals shape shared by recipe
// totals and consumption totals. Fields absent from incoming JSON decode to
// zero, which is exactly the fallback the engine requires.
type NutritionVector struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

// AddScaled adds other*factor to v in place.
func (v *NutritionVector) AddScaled(other NutritionVector, factor float64) {
	v.Calories += other.Calories * factor
	v.Protein += other.Protein * factor
	v.Fat += other.Fat * factor
	v.Carbs += other.Carbs * factor
	v.Fiber += other.Fiber * factor
	v.Sugar += other.Sugar * factor
	v.Sodium += other.Sodium * factor
}

type MealStatus string

const (
	StatusPlanned MealStatus = "planned"
	StatusEaten   MealStatus = "eaten"
	StatusSkipped MealStatus = "skipped"
)

// MealRecord is one logged meal. Only records with status "eaten" count
// toward consumption; Nutrition is scaled by Portion before summation.
type MealRecord struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Day       string          `json:"day"` // YYYY-MM-DD
	RecipeID  string          `json:"recipe_id"`
	Portion   float64         `json:"portion"`
	Status    MealStatus      `json:"status"`
	Nutrition NutritionVector `json:"nutrition"`
	CreatedAt time.Time       `json:"created_at"`
}

// DayLog groups the meal records of a single day.
type DayLog struct {
	Day   string       `json:"day"`
	Meals []MealRecord `json:"meals"`
}

// Ingredient is a recipe ingredient. Quantity is free text and plays no
// numeric role; the name is only used for substring matching.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
}
