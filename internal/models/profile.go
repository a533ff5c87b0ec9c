// internal/models/profile.go
package models

import "strings"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Goal string

const (
	GoalLoseWeight     Goal = "lose_weight"
	GoalMaintainWeight Goal = "maintain_weight"
	GoalGainWeight     Goal = "gain_weight"
)

// goalSynonyms maps legacy goal labels still present in old profile rows
// onto the three canonical goals.
var goalSynonyms = map[string]Goal{
	"lose_weight":     GoalLoseWeight,
	"lose":            GoalLoseWeight,
	"weight_loss":     GoalLoseWeight,
	"cut":             GoalLoseWeight,
	"cutting":         GoalLoseWeight,
	"giam_can":        GoalLoseWeight,
	"gain_weight":     GoalGainWeight,
	"gain":            GoalGainWeight,
	"weight_gain":     GoalGainWeight,
	"bulk":            GoalGainWeight,
	"bulking":         GoalGainWeight,
	"muscle_gain":     GoalGainWeight,
	"tang_can":        GoalGainWeight,
	"maintain_weight": GoalMaintainWeight,
	"maintain":        GoalMaintainWeight,
	"maintenance":     GoalMaintainWeight,
	"keep_fit":        GoalMaintainWeight,
	"giu_can":         GoalMaintainWeight,
}

// NormalizeGoal maps a raw goal label (canonical or legacy synonym) to one
// of the three canonical goals. Unknown or empty labels normalize to
// maintain_weight, which leaves the calorie target unadjusted.
func NormalizeGoal(raw string) Goal {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	if g, ok := goalSynonyms[key]; ok {
		return g
	}
	return GoalMaintainWeight
}

// NormalizeGender maps a raw gender label to male, female, or other.
func NormalizeGender(raw string) Gender {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "m", "man", "nam":
		return GenderMale
	case "female", "f", "woman", "nu":
		return GenderFemale
	default:
		return GenderOther
	}
}

// Profile is the biometric input every advisory computation starts from.
// It is owned by the caller and never mutated by the engine.
type Profile struct {
	Age           int      `json:"age"`
	Gender        Gender   `json:"gender"`
	HeightCm      float64  `json:"height_cm"`
	WeightKg      float64  `json:"weight_kg"`
	Goal          Goal     `json:"goal"`
	ActivityLevel string   `json:"activity_level,omitempty"`
	Allergies     []string `json:"allergies,omitempty"`
}
