package predict

import "math"

// AreaLocation describes a neighborhood whose daily food demand we
// want to estimate.
type AreaLocation struct {
	Name              string    `json:"name"`
	Coordinates       []float64 `json:"coordinates,omitempty"`
	PopulationDensity *float64  `json:"populationDensity"`
	PovertyRate       *float64  `json:"povertyRate"`
	FoodAccessScore   *float64  `json:"foodAccessScore"`
}

type DemandPrediction struct {
	Location         string        `json:"location"`
	Coordinates      []float64     `json:"coordinates,omitempty"`
	PredictedDailyKg float64       `json:"predictedDailyDemandKg"`
	DemandLevel      string        `json:"demandLevel"`
	Factors          DemandFactors `json:"factors"`
}

type DemandFactors struct {
	PopulationDensity float64 `json:"populationDensity"`
	PovertyRate       float64 `json:"povertyRate"`
	FoodAccessScore   float64 `json:"foodAccessScore"`
}

const baseDemandKgPerDay = 50.0

// PredictAreaDemand weighs density, poverty and existing food access
// into a daily demand figure for one area.
func PredictAreaDemand(loc *AreaLocation) *DemandPrediction {
	density := 100.0
	if loc.PopulationDensity != nil {
		density = *loc.PopulationDensity
	}
	poverty := 0.1
	if loc.PovertyRate != nil {
		poverty = *loc.PovertyRate
	}
	access := 0.5
	if loc.FoodAccessScore != nil {
		access = *loc.FoodAccessScore
	}

	multiplier := (density/1000)*0.4 + (poverty*10)*0.4 + (1-access)*0.2
	demand := baseDemandKgPerDay * multiplier

	name := loc.Name
	if name == "" {
		name = "Unknown"
	}

	return &DemandPrediction{
		Location:         name,
		Coordinates:      loc.Coordinates,
		PredictedDailyKg: math.Round(demand*10) / 10,
		DemandLevel:      demandLevel(demand),
		Factors: DemandFactors{
			PopulationDensity: density,
			PovertyRate:       poverty,
			FoodAccessScore:   access,
		},
	}
}

func demandLevel(kg float64) string {
	switch {
	case kg > 75:
		return "high"
	case kg > 25:
		return "medium"
	default:
		return "low"
	}
}

// PredictDemandBatch runs the area model over many locations at once.
func PredictDemandBatch(locations []*AreaLocation) []*DemandPrediction {
	predictions := make([]*DemandPrediction, 0, len(locations))
	for _, loc := range locations {
		if loc == nil {
			continue
		}
		predictions = append(predictions, PredictAreaDemand(loc))
	}
	return predictions
}
