package crops

import "time"

// Request carries the soil and weather readings for a recommendation.
type Request struct {
	Nitrogen    float64 `json:"nitrogen"`
	Phosphorus  float64 `json:"phosphorus"`
	Potassium   float64 `json:"potassium"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
}

// Recommendation is the model verdict plus human-readable context.
// Confidence and alternatives are nil when the model exposes no class
// probabilities.
type Recommendation struct {
	RecommendedCrop  string   `json:"recommended_crop"`
	Confidence       *float64 `json:"confidence"`
	AlternativeCrops []string `json:"alternative_crops"`
	Reasoning        string   `json:"reasoning"`
}

// Record is a persisted recommendation tied to the requesting user.
type Record struct {
	ID             string         `json:"id"`
	Username       string         `json:"username"`
	Request        Request        `json:"request"`
	Recommendation Recommendation `json:"recommendation"`
	CreatedAt      time.Time      `json:"created_at"`
}
