package domain

// RecommendationKind identifies which savings rule produced a recommendation.
type RecommendationKind string

const (
	RecommendationDuplicate    RecommendationKind = "duplicate"
	RecommendationAlternative  RecommendationKind = "alternative"
	RecommendationAnnualSwitch RecommendationKind = "annual_switch"
	RecommendationFamilyPlan   RecommendationKind = "family_plan"
	RecommendationInfo         RecommendationKind = "info"
)

// Impact is the display tier of a recommendation.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Recommendation is a derived cost-saving suggestion. Recommendations are
// never persisted; they are recomputed from items and the catalog snapshot.
type Recommendation struct {
	ID             string
	Kind           RecommendationKind
	Title          string
	Description    string
	MonthlySavings float64
	Impact         Impact
	ItemIDs        []string
	Verified       bool // backed by catalog data rather than a flat heuristic
}
