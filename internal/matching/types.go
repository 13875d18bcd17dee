package matching

// Location is a GeoJSON-style point. Coordinates[0] is longitude,
// Coordinates[1] is latitude — the same convention the upstream clients
// send, never [lat, lng].
type Location struct {
	Type        string    `json:"type,omitempty"`
	Coordinates []float64 `json:"coordinates"`
}

// Valid reports whether the location carries a usable coordinate pair.
func (l *Location) Valid() bool {
	return l != nil && len(l.Coordinates) == 2
}

func (l *Location) Lng() float64 { return l.Coordinates[0] }
func (l *Location) Lat() float64 { return l.Coordinates[1] }

// FoodItem is one surplus-food listing offered for redistribution.
// Quantity is kilograms. ExpiresAt is an RFC 3339 timestamp; a missing or
// unparsable value degrades to the default urgency rather than failing.
type FoodItem struct {
	ID             string    `json:"id,omitempty"`
	Location       *Location `json:"location"`
	Quantity       float64   `json:"quantity"`
	ExpiresAt      string    `json:"expiresAt,omitempty"`
	Category       string    `json:"category,omitempty"`
	DietaryInfo    []string  `json:"dietaryInfo,omitempty"`
	EstimatedValue float64   `json:"estimatedValue,omitempty"`
}

// RecipientProfile describes one candidate recipient organization.
type RecipientProfile struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Location            *Location `json:"location"`
	ServingCapacity     *int      `json:"servingCapacity,omitempty"`
	DietaryRestrictions []string  `json:"dietaryRestrictions,omitempty"`
	PreferredCategories []string  `json:"preferredCategories,omitempty"`
}

const defaultServingCapacity = 50

// EffectiveCapacity returns the stated serving capacity, or the default
// when the profile omits it. An explicit non-positive value is returned
// as-is so the capacity factor can apply its division guard.
func (r *RecipientProfile) EffectiveCapacity() int {
	if r.ServingCapacity == nil {
		return defaultServingCapacity
	}
	return *r.ServingCapacity
}

// ImpactEstimate is the projected social impact of completing a match.
type ImpactEstimate struct {
	MealsProvided int     `json:"mealsProvided"`
	PeopleServed  int     `json:"peopleServed"`
	CO2SavedKg    float64 `json:"co2SavedKg"`
	MoneySavedUsd float64 `json:"moneySavedUsd"`
}

// MatchResult is the scored outcome for one food/recipient pair. Scores
// are rounded for display; the unrounded overall score is kept alongside
// so ranking is never perturbed by rounding ties.
type MatchResult struct {
	RecipientID     string         `json:"recipientId"`
	RecipientName   string         `json:"recipientName"`
	OverallScore    float64        `json:"overallScore"`
	DistanceKm      float64        `json:"distanceKm"`
	UrgencyScore    float64        `json:"urgencyScore"`
	CapacityScore   float64        `json:"capacityScore"`
	PreferenceScore float64        `json:"preferenceScore"`
	EstimatedImpact ImpactEstimate `json:"estimatedImpact"`
	Reasons         []string       `json:"reasons"`

	raw float64
}

// RawScore returns the unrounded overall score used for filtering and
// ordering.
func (m MatchResult) RawScore() float64 { return m.raw }
