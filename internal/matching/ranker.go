package matching

import (
	"log/slog"
	"sort"
	"time"
)

// Defaults for a ranking call when the caller does not override them.
const (
	DefaultLimit    = 5
	DefaultMinScore = 0.3
)

// Ranker scores a candidate set against one food item and returns the
// top matches.
type Ranker struct {
	scorer *Scorer
	logger *slog.Logger
}

// NewRanker creates a Ranker around the given scorer.
func NewRanker(scorer *Scorer, logger *slog.Logger) *Ranker {
	return &Ranker{scorer: scorer, logger: logger}
}

// Rank scores every recipient, keeps those strictly above minScore,
// sorts descending and truncates to limit. The second return value is
// the size of the full eligible pool before truncation.
func (rk *Ranker) Rank(food *FoodItem, recipients []*RecipientProfile, limit int, minScore float64) ([]MatchResult, int) {
	return rk.RankAt(food, recipients, limit, minScore, time.Now().UTC())
}

// RankAt is Rank with an explicit timestamp. The snapshot is shared by
// every candidate so a slow batch cannot skew urgency mid-ranking.
func (rk *Ranker) RankAt(food *FoodItem, recipients []*RecipientProfile, limit int, minScore float64, now time.Time) ([]MatchResult, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var kept []MatchResult
	for _, recipient := range recipients {
		if recipient == nil || !recipient.Location.Valid() {
			// One malformed recipient must not break the batch; it is
			// simply excluded from the pool.
			rk.logger.Debug("skipping recipient without usable location",
				"recipient_id", recipientID(recipient))
			continue
		}
		result := rk.scorer.Score(food, recipient, now)
		if result.raw > minScore {
			kept = append(kept, result)
		}
	}

	total := len(kept)

	// Stable sort: equal scores keep input order, an observable property.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].raw > kept[j].raw
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept, total
}

func recipientID(r *RecipientProfile) string {
	if r == nil {
		return ""
	}
	return r.ID
}
