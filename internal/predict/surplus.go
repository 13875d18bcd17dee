package predict

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/FoodBridge-Labs/Matchwise/internal/weather"
)

const defaultHistoricalAvgKg = 15.0

// SurplusRequest describes a donor business asking how much surplus to
// expect today.
type SurplusRequest struct {
	BusinessID           string   `json:"businessId"`
	BusinessType         string   `json:"businessType"`
	HistoricalAvgSurplus *float64 `json:"historicalAvgSurplus"`
	HasPromotion         bool     `json:"hasPromotion"`
	EventScore           float64  `json:"eventScore"`
	Lat                  *float64 `json:"lat"`
	Lng                  *float64 `json:"lng"`
}

type SurplusPrediction struct {
	BusinessID       string   `json:"businessId"`
	PredictedSurplus float64  `json:"predictedSurplus"`
	Confidence       float64  `json:"confidence"`
	Recommendation   string   `json:"recommendation"`
	Factors          []string `json:"factors"`
	WeatherImpact    string   `json:"weatherImpact,omitempty"`
}

type SurplusPredictor struct {
	weather weather.Client
	logger  *slog.Logger
	now     func() time.Time
}

// NewSurplusPredictor builds a predictor. A nil weather client skips
// the weather adjustment and caps confidence accordingly.
func NewSurplusPredictor(wc weather.Client, logger *slog.Logger) *SurplusPredictor {
	return &SurplusPredictor{weather: wc, logger: logger, now: time.Now}
}

func (p *SurplusPredictor) Predict(ctx context.Context, req *SurplusRequest) *SurplusPrediction {
	now := p.now()

	base := defaultHistoricalAvgKg
	if req.HistoricalAvgSurplus != nil {
		base = *req.HistoricalAvgSurplus
	}

	timeMultiplier := 1.0
	if isWeekend(now) || isHoliday(now) {
		timeMultiplier *= 1.2
	}
	if isRushHour(now) {
		timeMultiplier *= 0.8
	}

	weatherMultiplier := 1.0
	haveWeather := false
	weatherImpact := ""
	if obs := p.currentWeather(ctx, req); obs != nil {
		haveWeather = true
		weatherImpact = classifyWeatherImpact(obs)
		if obs.Temperature < 5 || obs.Temperature > 35 {
			weatherMultiplier *= 1.3
		}
		if obs.RainMM > 0 {
			weatherMultiplier *= 1.4
		}
	}

	businessMultiplier := 1.0
	if req.BusinessType == "restaurant" {
		businessMultiplier *= 1.1
	}

	eventMultiplier := 1.0 - req.EventScore*0.1

	predicted := base * timeMultiplier * weatherMultiplier * businessMultiplier * eventMultiplier
	if predicted < 0 {
		predicted = 0
	}

	confidence := 0.7
	if haveWeather {
		confidence += 0.1
	}
	if base > 0 {
		confidence += 0.15
	}
	if confidence > 0.95 {
		confidence = 0.95
	}

	var factors []string
	if timeMultiplier > 1.1 {
		factors = append(factors, "Weekend increase expected")
	}
	if weatherMultiplier > 1.2 {
		factors = append(factors, "Weather impact: reduced foot traffic")
	}
	if eventMultiplier < 0.9 {
		factors = append(factors, "Local events may reduce surplus")
	}

	prediction := &SurplusPrediction{
		BusinessID:       req.BusinessID,
		PredictedSurplus: math.Round(predicted*10) / 10,
		Confidence:       math.Round(confidence*100) / 100,
		Recommendation:   surplusRecommendation(predicted),
		Factors:          factors,
		WeatherImpact:    weatherImpact,
	}

	p.logger.Info("surplus predicted",
		"business_id", req.BusinessID,
		"predicted_kg", prediction.PredictedSurplus,
		"confidence", prediction.Confidence,
	)
	return prediction
}

func (p *SurplusPredictor) currentWeather(ctx context.Context, req *SurplusRequest) *weather.Observation {
	if p.weather == nil || req.Lat == nil || req.Lng == nil {
		return nil
	}
	obs, err := p.weather.Current(ctx, *req.Lat, *req.Lng)
	if err != nil {
		p.logger.Warn("weather lookup failed", "business_id", req.BusinessID, "error", err)
		return nil
	}
	return obs
}

func surplusRecommendation(kg float64) string {
	switch {
	case kg > 50:
		return "High surplus predicted! Consider posting items early and reaching out to multiple food banks."
	case kg > 25:
		return "Moderate surplus expected. Post items 2-3 hours before closing time."
	case kg > 10:
		return "Low-moderate surplus. Consider bundling items for larger recipients."
	default:
		return "Minimal surplus expected. Focus on portion control and accurate demand forecasting."
	}
}

// classifyWeatherImpact maps conditions onto expected foot traffic:
// bad weather keeps customers home, which leaves more food unsold.
func classifyWeatherImpact(obs *weather.Observation) string {
	switch {
	case obs.Temperature < 0 || obs.Temperature > 35:
		return "high_surplus"
	case obs.ConditionCode < 700:
		return "moderate_surplus"
	case obs.ConditionCode >= 800 && obs.ConditionCode <= 801:
		return "low_surplus"
	default:
		return "neutral"
	}
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func isRushHour(t time.Time) bool {
	switch t.Hour() {
	case 11, 12, 18, 19, 20:
		return true
	}
	return false
}

func isHoliday(t time.Time) bool {
	type monthDay struct {
		month time.Month
		day   int
	}
	holidays := []monthDay{
		{time.January, 1},
		{time.July, 4},
		{time.November, 11},
		{time.December, 25},
	}
	for _, h := range holidays {
		if t.Month() == h.month && t.Day() == h.day {
			return true
		}
	}
	return false
}
