package matching

import (
	"fmt"
	"math"
)

// WeightSet defines the relative importance of each match factor.
// All weights must sum to 1.0 (±0.001 tolerance); they are never
// renormalized at scoring time.
type WeightSet struct {
	Distance   float64
	Urgency    float64
	Capacity   float64
	Preference float64
}

// DefaultWeights returns the canonical weight distribution.
func DefaultWeights() WeightSet {
	return WeightSet{
		Distance:   0.40,
		Urgency:    0.30,
		Capacity:   0.20,
		Preference: 0.10,
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.Distance + w.Urgency + w.Capacity + w.Preference
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("match weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.Distance, w.Urgency, w.Capacity, w.Preference} {
		if v < 0 {
			return fmt.Errorf("negative match weight: %f", v)
		}
	}
	return nil
}
