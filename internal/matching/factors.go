package matching

import (
	"fmt"
	"time"
)

// FactorResult captures one factor's contribution to the overall score.
type FactorResult struct {
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	Weight    float64 `json:"weight"`
	Weighted  float64 `json:"weighted"`
	Available bool    `json:"available"`
	Reason    string  `json:"reason"`
}

// maxReasonableKm caps meaningful consideration: at or beyond this
// distance the factor scores exactly 0.
const maxReasonableKm = 50.0

// DistanceFactor scores proximity linearly within the 50 km radius.
func DistanceFactor(distanceKm float64) FactorResult {
	score := 1.0 - distanceKm/maxReasonableKm
	if score < 0 {
		score = 0
	}
	return FactorResult{
		Name:      "distance",
		Score:     score,
		Available: true,
		Reason:    fmt.Sprintf("%.1f km away", distanceKm),
	}
}

// UrgencyFactor applies the stepped expiry policy. An expiry in the past
// counts as maximally urgent; a missing or unparsable expiry degrades to
// the 0.5 default instead of failing the match.
func UrgencyFactor(food *FoodItem, now time.Time) FactorResult {
	hours, ok := hoursUntilExpiry(food.ExpiresAt, now)
	if !ok {
		return FactorResult{Name: "urgency", Score: 0.5, Available: false, Reason: "no usable expiry"}
	}
	switch {
	case hours <= 2:
		return FactorResult{Name: "urgency", Score: 1.0, Available: true, Reason: "expires within 2h"}
	case hours <= 6:
		return FactorResult{Name: "urgency", Score: 0.8, Available: true, Reason: "expires within 6h"}
	case hours <= 24:
		return FactorResult{Name: "urgency", Score: 0.6, Available: true, Reason: "expires within 24h"}
	default:
		return FactorResult{Name: "urgency", Score: 0.4, Available: true, Reason: "expiry beyond 24h"}
	}
}

func hoursUntilExpiry(expiresAt string, now time.Time) (float64, bool) {
	if expiresAt == "" {
		return 0, false
	}
	t, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		// Upstream sometimes sends zone-less timestamps; treat them as UTC.
		t, err = time.ParseInLocation("2006-01-02T15:04:05", expiresAt, time.UTC)
		if err != nil {
			return 0, false
		}
	}
	return t.Sub(now).Hours(), true
}

// CapacityFactor scores the fit between offered quantity and the
// recipient's serving capacity. A non-positive capacity skips the ratio
// math entirely and scores the 0.5 default.
func CapacityFactor(food *FoodItem, recipient *RecipientProfile) FactorResult {
	capacity := recipient.EffectiveCapacity()
	if capacity <= 0 {
		return FactorResult{Name: "capacity", Score: 0.5, Available: false, Reason: "no usable capacity"}
	}

	ratio := food.Quantity / float64(capacity)
	switch {
	case ratio >= 0.1 && ratio <= 1.5:
		return FactorResult{Name: "capacity", Score: 1.0, Available: true, Reason: "optimal quantity fit"}
	case ratio < 0.1:
		return FactorResult{Name: "capacity", Score: 0.3, Available: true, Reason: "too little for recipient scale"}
	case ratio > 3:
		return FactorResult{Name: "capacity", Score: 0.2, Available: true, Reason: "far exceeds capacity"}
	default:
		return FactorResult{Name: "capacity", Score: 0.7, Available: true, Reason: "manageable oversupply"}
	}
}

// PreferenceFactor scores dietary and category compatibility. Base 0.5,
// +0.2 per restriction the food satisfies (vegan tags satisfy a
// vegetarian restriction), +0.2 for a preferred category, clamped to 1.0.
func PreferenceFactor(food *FoodItem, recipient *RecipientProfile) FactorResult {
	score := 0.5
	for _, restriction := range recipient.DietaryRestrictions {
		if containsTag(food.DietaryInfo, restriction) {
			score += 0.2
		} else if restriction == "vegetarian" && containsTag(food.DietaryInfo, "vegan") {
			score += 0.2
		}
	}
	if food.Category != "" && containsTag(recipient.PreferredCategories, food.Category) {
		score += 0.2
	}
	if score > 1.0 {
		score = 1.0
	}
	return FactorResult{Name: "preference", Score: score, Available: true, Reason: "dietary/category compatibility"}
}

func containsTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
