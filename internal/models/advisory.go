// internal/models/advisory.go
package models

// DailyLimits is the personalized daily budget derived from a profile and a
// calorie target. Recomputed on demand, never persisted.
type DailyLimits struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	FatG     int `json:"fat_g"`
	CarbsG   int `json:"carbs_g"`
	FiberG   int `json:"fiber_g"`
	SodiumMg int `json:"sodium_mg"`
	SugarG   int `json:"sugar_g"`
}

type WarningType string

const (
	WarnError   WarningType = "error"
	WarnWarning WarningType = "warning"
)

type ReasonType string

const (
	ReasonAllergy ReasonType = "allergy"
	ReasonCalorie ReasonType = "calorie"
	ReasonProtein ReasonType = "protein"
	ReasonFat     ReasonType = "fat"
	ReasonCarbs   ReasonType = "carbs"
	ReasonFiber   ReasonType = "fiber"
	ReasonSugar   ReasonType = "sugar"
	ReasonSodium  ReasonType = "sodium"
)

// Warning is one advisory finding for a candidate recipe. Ordering within a
// warning list is significant: allergy warnings always come first.
type Warning struct {
	Type               WarningType `json:"type"`
	Message            string      `json:"message"`
	ReasonType         ReasonType  `json:"reason_type"`
	AllergyIngredients []string    `json:"allergy_ingredients,omitempty"`
}

// SubstitutionCandidate names an ingredient worth swapping out, tied back to
// the warning that flagged it.
type SubstitutionCandidate struct {
	Ingredient Ingredient  `json:"ingredient"`
	Reason     string      `json:"reason"`
	Priority   WarningType `json:"priority"`
	ReasonType ReasonType  `json:"reason_type"`
}
