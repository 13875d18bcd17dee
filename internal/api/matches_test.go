package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FoodBridge-Labs/Matchwise/internal/matching"
)

func TestMatchEndToEnd(t *testing.T) {
	s := &mockStore{}
	ev := &mockEvents{}
	router := newTestRouter(s, ev, "")

	expiresAt := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)
	body := fmt.Sprintf(`{
		"food_item": {
			"id": "food-42",
			"location": {"type": "Point", "coordinates": [0, 0]},
			"quantity": 20,
			"expiresAt": %q,
			"category": "produce",
			"estimatedValue": 10
		},
		"recipients": [
			{"id": "far", "name": "Far Pantry", "location": {"coordinates": [0.3, 0.3]}, "servingCapacity": 40},
			{"id": "near", "name": "Near Kitchen", "location": {"coordinates": [0, 0]}, "servingCapacity": 20, "preferredCategories": ["produce"]},
			{"id": "broken", "location": {"coordinates": [5]}}
		]
	}`, expiresAt)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/match/food", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Matches                  []matching.MatchResult `json:"matches"`
		TotalPotentialRecipients int                    `json:"totalPotentialRecipients"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Matches, 2, "malformed recipient must be excluded")
	assert.Equal(t, 2, resp.TotalPotentialRecipients)

	best := resp.Matches[0]
	assert.Equal(t, "near", best.RecipientID)
	assert.Equal(t, "Near Kitchen", best.RecipientName)
	assert.InDelta(t, 0.97, best.OverallScore, 1e-9)
	assert.Equal(t, 0.0, best.DistanceKm)
	assert.Equal(t, 50, best.EstimatedImpact.MealsProvided)
	assert.Equal(t, 20, best.EstimatedImpact.PeopleServed)
	assert.InDelta(t, 50.0, best.EstimatedImpact.CO2SavedKg, 1e-9)
	assert.InDelta(t, 10.0, best.EstimatedImpact.MoneySavedUsd, 1e-9)
	assert.NotEmpty(t, best.Reasons)

	assert.Greater(t, best.OverallScore, resp.Matches[1].OverallScore)

	// History is recorded in rank order with a shared batch id.
	require.Len(t, s.records, 2)
	assert.Equal(t, s.records[0].BatchID, s.records[1].BatchID)
	assert.Equal(t, "food-42", s.records[0].FoodItemID)
	assert.Equal(t, "near", s.records[0].RecipientID)
	assert.Equal(t, 1, s.records[0].Rank)
	assert.Equal(t, 2, s.records[1].Rank)

	require.Len(t, ev.published, 1)
	assert.Contains(t, ev.published[0], "foodbridge.match.")
}

func TestMatchRespectsLimitAndMinScore(t *testing.T) {
	router := newTestRouter(nil, nil, "")

	expiresAt := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)
	recipients := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		recipients = append(recipients, fmt.Sprintf(
			`{"id": "r%d", "location": {"coordinates": [0, 0]}, "servingCapacity": 40}`, i))
	}
	body := fmt.Sprintf(`{
		"food_item": {"location": {"coordinates": [0, 0]}, "quantity": 20, "expiresAt": %q},
		"recipients": [%s],
		"limit": 3
	}`, expiresAt, strings.Join(recipients, ","))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/match/food", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Matches                  []matching.MatchResult `json:"matches"`
		TotalPotentialRecipients int                    `json:"totalPotentialRecipients"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Matches, 3)
	assert.Equal(t, 8, resp.TotalPotentialRecipients, "total counts the pool before truncation")

	// A prohibitive threshold empties the list but still returns 200
	// with an empty array, not null.
	body = fmt.Sprintf(`{
		"food_item": {"location": {"coordinates": [0, 0]}, "quantity": 20, "expiresAt": %q},
		"recipients": [{"id": "r0", "location": {"coordinates": [0, 0]}, "servingCapacity": 40}],
		"min_score": 0.999
	}`, expiresAt)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/match/food", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"matches":[]`)
	assert.Contains(t, rec.Body.String(), `"totalPotentialRecipients":0`)
}
