package events

const (
	StreamName   = "FOODBRIDGE_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectMatchRanked(batchID string) string { return "foodbridge.match." + batchID + ".ranked" }

func SubjectSurplusPredicted(businessID string) string {
	return "foodbridge.surplus." + businessID + ".predicted"
}

func SubjectDemandPredicted() string { return "foodbridge.demand.batch.predicted" }
