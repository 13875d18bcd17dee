package matching

import (
	"io"
	"log/slog"
	"math"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()
	if err := w.Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		t.Errorf("default weights sum to %f, expected 1.0", w.Sum())
	}
}

func TestWeightSetValidate(t *testing.T) {
	bad := WeightSet{Distance: 0.9, Urgency: 0.3, Capacity: 0.2, Preference: 0.1}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for weights summing past 1.0")
	}
	negative := WeightSet{Distance: 1.2, Urgency: -0.2, Capacity: 0, Preference: 0}
	if err := negative.Validate(); err == nil {
		t.Error("expected error for negative weight")
	}
}

func TestScoreSubScoresInRange(t *testing.T) {
	s := NewScorer(DefaultWeights(), discardLogger())
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	foods := []*FoodItem{
		{Location: loc(0, 0), Quantity: 20, ExpiresAt: now.Add(time.Hour).Format(time.RFC3339)},
		{Location: loc(13.4, 52.5), Quantity: 0.5, ExpiresAt: "garbage", Category: "dairy"},
		{Location: loc(-0.1, 51.5), Quantity: 500, DietaryInfo: []string{"vegan"}},
	}
	recipients := []*RecipientProfile{
		{ID: "a", Location: loc(0, 0)},
		{ID: "b", Location: loc(13.5, 52.6), ServingCapacity: intPtr(0)},
		{ID: "c", Location: loc(2.35, 48.85), DietaryRestrictions: []string{"vegetarian"}},
	}

	for _, food := range foods {
		for _, recipient := range recipients {
			r := s.Score(food, recipient, now)
			for name, v := range map[string]float64{
				"overall":    r.OverallScore,
				"urgency":    r.UrgencyScore,
				"capacity":   r.CapacityScore,
				"preference": r.PreferenceScore,
			} {
				if v < 0 || v > 1 {
					t.Errorf("%s score %f out of [0,1]", name, v)
				}
			}
			if r.DistanceKm < 0 {
				t.Errorf("negative distance %f", r.DistanceKm)
			}
			if len(r.Reasons) == 0 {
				t.Error("reasons must never be empty")
			}
		}
	}
}

func TestScorePerfectMatch(t *testing.T) {
	s := NewScorer(DefaultWeights(), discardLogger())
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	food := &FoodItem{
		Location:       loc(0, 0),
		Quantity:       20,
		ExpiresAt:      now.Add(time.Hour).Format(time.RFC3339),
		Category:       "produce",
		EstimatedValue: 10,
	}
	recipient := &RecipientProfile{
		ID:                  "rec-a",
		Name:                "Community Kitchen",
		Location:            loc(0, 0),
		ServingCapacity:     intPtr(20),
		PreferredCategories: []string{"produce"},
	}

	r := s.Score(food, recipient, now)

	if r.DistanceKm != 0 {
		t.Errorf("expected 0 km, got %f", r.DistanceKm)
	}
	if r.UrgencyScore != 1.0 {
		t.Errorf("expected urgency 1.0, got %f", r.UrgencyScore)
	}
	if r.CapacityScore != 1.0 {
		t.Errorf("expected capacity 1.0, got %f", r.CapacityScore)
	}
	if r.PreferenceScore != 0.7 {
		t.Errorf("expected preference 0.7, got %f", r.PreferenceScore)
	}
	// 0.4*1 + 0.3*1 + 0.2*1 + 0.1*0.7
	if math.Abs(r.OverallScore-0.97) > 1e-9 {
		t.Errorf("expected overall 0.970, got %f", r.OverallScore)
	}

	impact := r.EstimatedImpact
	if impact.MealsProvided != 50 {
		t.Errorf("expected 50 meals, got %d", impact.MealsProvided)
	}
	if impact.PeopleServed != 20 {
		t.Errorf("expected 20 people, got %d", impact.PeopleServed)
	}
	if impact.CO2SavedKg != 50.0 {
		t.Errorf("expected 50.0 kg CO2, got %f", impact.CO2SavedKg)
	}
	if impact.MoneySavedUsd != 10.0 {
		t.Errorf("expected $10.00, got %f", impact.MoneySavedUsd)
	}

	wantReasons := []string{"Very close location", "Food expires soon - urgent!", "Perfect quantity match"}
	if len(r.Reasons) != len(wantReasons) {
		t.Fatalf("expected %d reasons, got %v", len(wantReasons), r.Reasons)
	}
	for i, want := range wantReasons {
		if r.Reasons[i] != want {
			t.Errorf("reason %d: expected %q, got %q", i, want, r.Reasons[i])
		}
	}
}

func TestScoreDistantRecipient(t *testing.T) {
	s := NewScorer(DefaultWeights(), discardLogger())
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	food := &FoodItem{
		Location:  loc(0, 0),
		Quantity:  20,
		ExpiresAt: now.Add(time.Hour).Format(time.RFC3339),
		Category:  "produce",
	}
	// ~157 km away: distance contributes exactly 0 but the other factors
	// still carry it past the default threshold.
	recipient := &RecipientProfile{
		ID:              "rec-b",
		Location:        loc(1, 1),
		ServingCapacity: intPtr(100),
	}

	r := s.Score(food, recipient, now)

	if r.DistanceKm < 156 || r.DistanceKm > 158 {
		t.Errorf("expected ~157 km, got %f", r.DistanceKm)
	}
	// 0.4*0 + 0.3*1.0 + 0.2*1.0 + 0.1*0.5
	if math.Abs(r.OverallScore-0.55) > 1e-9 {
		t.Errorf("expected overall 0.550, got %f", r.OverallScore)
	}
	if r.RawScore() <= DefaultMinScore {
		t.Errorf("expected raw score above default threshold, got %f", r.RawScore())
	}
}

func TestScoreFallbackReason(t *testing.T) {
	s := NewScorer(DefaultWeights(), discardLogger())
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	// Far away, distant expiry, poor capacity fit, no preferences: no
	// specific reason fires.
	food := &FoodItem{
		Location:  loc(0, 0),
		Quantity:  200,
		ExpiresAt: now.Add(72 * time.Hour).Format(time.RFC3339),
	}
	recipient := &RecipientProfile{ID: "rec-c", Location: loc(1, 1), ServingCapacity: intPtr(50)}

	r := s.Score(food, recipient, now)
	if len(r.Reasons) != 1 || r.Reasons[0] != "Good overall compatibility" {
		t.Errorf("expected fallback reason only, got %v", r.Reasons)
	}
}

func TestScoreDoesNotMutateInputs(t *testing.T) {
	s := NewScorer(DefaultWeights(), discardLogger())
	now := time.Now().UTC()

	food := &FoodItem{Location: loc(0, 0), Quantity: 10, DietaryInfo: []string{"vegan"}}
	recipient := &RecipientProfile{ID: "r", Location: loc(0.1, 0.1), DietaryRestrictions: []string{"vegetarian"}}

	before := *food
	_ = s.Score(food, recipient, now)
	if food.Quantity != before.Quantity || len(food.DietaryInfo) != 1 {
		t.Error("Score mutated the food item")
	}
}
