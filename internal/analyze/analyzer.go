package analyze

import (
	"context"
	"log/slog"
	"strings"

	"github.com/FoodBridge-Labs/Matchwise/internal/sentiment"
)

// Analysis is what we can infer about a donation from its free-text
// description alone.
type Analysis struct {
	Sentiment    []sentiment.Label `json:"sentiment"`
	Categories   []string          `json:"categories"`
	Freshness    string            `json:"freshness"`
	QualityScore float64           `json:"qualityScore"`
}

var categoryKeywords = map[string][]string{
	"meals":     {"meal", "dinner", "lunch", "breakfast", "dish", "prepared"},
	"bakery":    {"bread", "cake", "pastry", "cookie", "muffin", "croissant"},
	"produce":   {"fruit", "vegetable", "apple", "banana", "carrot", "lettuce", "tomato"},
	"dairy":     {"milk", "cheese", "yogurt", "butter", "cream"},
	"beverages": {"juice", "soda", "water", "coffee", "tea"},
	"snacks":    {"chips", "crackers", "nuts", "candy"},
}

// categoryOrder keeps output deterministic; map iteration is not.
var categoryOrder = []string{"meals", "bakery", "produce", "dairy", "beverages", "snacks"}

var (
	freshIndicators = []string{"fresh", "new", "just made", "today", "crisp"}
	oldIndicators   = []string{"day old", "yesterday", "leftover", "excess"}

	positiveWords = []string{"fresh", "delicious", "quality", "excellent", "perfect", "good"}
	negativeWords = []string{"old", "stale", "expired", "bad", "poor"}
)

type Analyzer struct {
	sentiment sentiment.Client
	logger    *slog.Logger
}

// NewAnalyzer builds an analyzer. A nil sentiment client disables the
// remote model; descriptions then get a neutral sentiment.
func NewAnalyzer(sc sentiment.Client, logger *slog.Logger) *Analyzer {
	return &Analyzer{sentiment: sc, logger: logger}
}

func (a *Analyzer) Analyze(ctx context.Context, description string) *Analysis {
	return &Analysis{
		Sentiment:    a.analyzeSentiment(ctx, description),
		Categories:   ExtractCategories(description),
		Freshness:    EstimateFreshness(description),
		QualityScore: QualityScore(description),
	}
}

func (a *Analyzer) analyzeSentiment(ctx context.Context, text string) []sentiment.Label {
	neutral := []sentiment.Label{{Label: "NEUTRAL", Score: 0.5}}
	if a.sentiment == nil {
		return neutral
	}
	labels, err := a.sentiment.Analyze(ctx, text)
	if err != nil || len(labels) == 0 {
		a.logger.Warn("sentiment analysis unavailable", "error", err)
		return neutral
	}
	return labels
}

// ExtractCategories matches the description against known category
// keywords. Descriptions matching nothing fall into "other".
func ExtractCategories(description string) []string {
	lower := strings.ToLower(description)

	var categories []string
	for _, category := range categoryOrder {
		for _, kw := range categoryKeywords[category] {
			if strings.Contains(lower, kw) {
				categories = append(categories, category)
				break
			}
		}
	}
	if len(categories) == 0 {
		return []string{"other"}
	}
	return categories
}

func EstimateFreshness(description string) string {
	lower := strings.ToLower(description)

	fresh := countMatches(lower, freshIndicators)
	old := countMatches(lower, oldIndicators)

	switch {
	case fresh > old:
		return "high"
	case old > fresh:
		return "medium"
	default:
		return "unknown"
	}
}

// QualityScore starts at 0.7 and moves with the tone of the
// description: +0.1 per positive word, -0.2 per negative one.
func QualityScore(description string) float64 {
	lower := strings.ToLower(description)

	score := 0.7 + float64(countMatches(lower, positiveWords))*0.1 - float64(countMatches(lower, negativeWords))*0.2
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func countMatches(lower string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}
