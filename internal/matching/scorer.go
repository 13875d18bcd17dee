package matching

import (
	"log/slog"
	"math"
	"time"
)

const (
	kgPerMeal    = 0.4
	co2PerKgFood = 2.5
)

// Scorer computes the 4-factor weighted compatibility score for one
// food/recipient pair. It is pure: it never mutates its inputs and is
// deterministic given the inputs and the supplied timestamp.
type Scorer struct {
	weights WeightSet
	logger  *slog.Logger
}

// NewScorer creates a Scorer with the given weights.
func NewScorer(weights WeightSet, logger *slog.Logger) *Scorer {
	return &Scorer{weights: weights, logger: logger}
}

// Breakdown returns the weighted factor breakdown for a pair, scored
// against the given timestamp. Factor order is distance, urgency,
// capacity, preference.
func (s *Scorer) Breakdown(food *FoodItem, recipient *RecipientProfile, now time.Time) []FactorResult {
	return s.breakdown(food, recipient, HaversineKm(food.Location, recipient.Location), now)
}

func (s *Scorer) breakdown(food *FoodItem, recipient *RecipientProfile, distanceKm float64, now time.Time) []FactorResult {
	factors := []FactorResult{
		DistanceFactor(distanceKm),
		UrgencyFactor(food, now),
		CapacityFactor(food, recipient),
		PreferenceFactor(food, recipient),
	}
	weights := []float64{s.weights.Distance, s.weights.Urgency, s.weights.Capacity, s.weights.Preference}
	for i := range factors {
		factors[i].Weight = weights[i]
		factors[i].Weighted = factors[i].Score * weights[i]
	}
	return factors
}

// Score computes the full match result for one food/recipient pair.
func (s *Scorer) Score(food *FoodItem, recipient *RecipientProfile, now time.Time) MatchResult {
	distanceKm := HaversineKm(food.Location, recipient.Location)
	factors := s.breakdown(food, recipient, distanceKm, now)

	var total float64
	for _, f := range factors {
		total += f.Weighted
	}

	return MatchResult{
		RecipientID:     recipient.ID,
		RecipientName:   recipient.Name,
		OverallScore:    round3(total),
		DistanceKm:      round1(distanceKm),
		UrgencyScore:    round2(factors[1].Score),
		CapacityScore:   round2(factors[2].Score),
		PreferenceScore: round2(factors[3].Score),
		EstimatedImpact: estimateImpact(food, recipient),
		Reasons:         matchReasons(factors[0].Score, factors[1].Score, factors[2].Score, factors[3].Score),
		raw:             total,
	}
}

func estimateImpact(food *FoodItem, recipient *RecipientProfile) ImpactEstimate {
	meals := int(food.Quantity / kgPerMeal)
	if meals < 0 {
		meals = 0
	}
	people := recipient.EffectiveCapacity()
	if people > meals {
		people = meals
	}
	if people < 0 {
		people = 0
	}
	return ImpactEstimate{
		MealsProvided: meals,
		PeopleServed:  people,
		CO2SavedKg:    round1(food.Quantity * co2PerKgFood),
		MoneySavedUsd: round2(food.EstimatedValue),
	}
}

// matchReasons builds the human-readable justification list. The list is
// never empty: when no specific reason fires, the generic fallback is
// emitted alone.
func matchReasons(distance, urgency, capacity, preference float64) []string {
	var reasons []string

	if distance > 0.8 {
		reasons = append(reasons, "Very close location")
	} else if distance > 0.6 {
		reasons = append(reasons, "Nearby location")
	}
	if urgency > 0.8 {
		reasons = append(reasons, "Food expires soon - urgent!")
	}
	if capacity > 0.8 {
		reasons = append(reasons, "Perfect quantity match")
	}
	if preference > 0.7 {
		reasons = append(reasons, "Matches dietary preferences")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Good overall compatibility")
	}
	return reasons
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
