// internal/engine/substitution.go
package engine

import (
	"fmt"
	"strings"

	"nutrition-advisor/internal/models"
)

// IdentifySubstitutions maps each warning back to the recipe ingredients
// that likely caused it, producing substitution candidates deduplicated by
// ingredient name (first hit wins, so allergy candidates keep their spot at
// the front of the list).
//
// Allergy warnings are resolved by re-matching their recorded ingredient
// names; nutrient warnings go through the CategoryKeywords table. Calorie
// category hits carry error priority, matching the long-standing behavior
// of the advisory flow.
func IdentifySubstitutions(warnings []models.Warning, ingredients []models.Ingredient, p models.Profile) []models.SubstitutionCandidate {
	var candidates []models.SubstitutionCandidate
	seen := make(map[string]bool)

	add := func(ing models.Ingredient, reason string, priority models.WarningType, rt models.ReasonType) {
		if seen[ing.Name] {
			return
		}
		seen[ing.Name] = true
		candidates = append(candidates, models.SubstitutionCandidate{
			Ingredient: ing,
			Reason:     reason,
			Priority:   priority,
			ReasonType: rt,
		})
	}

	for _, w := range warnings {
		if w.ReasonType == models.ReasonAllergy {
			for _, flagged := range w.AllergyIngredients {
				lowered := strings.ToLower(strings.TrimSpace(flagged))
				if lowered == "" {
					continue
				}
				for _, ing := range ingredients {
					name := strings.ToLower(strings.TrimSpace(ing.Name))
					if name == "" {
						continue
					}
					if strings.Contains(name, lowered) || strings.Contains(lowered, name) {
						add(ing, "matches an allergy on your profile", models.WarnError, models.ReasonAllergy)
					}
				}
			}
			continue
		}

		keywords := CategoryKeywords[w.ReasonType]
		priority := models.WarnWarning
		if w.ReasonType == models.ReasonCalorie {
			priority = models.WarnError
		}
		for _, ing := range ingredients {
			name := strings.ToLower(ing.Name)
			for _, kw := range keywords {
				if strings.Contains(name, kw) {
					add(ing, fmt.Sprintf("typical source of %s", w.ReasonType), priority, w.ReasonType)
					break
				}
			}
		}
	}

	return candidates
}
