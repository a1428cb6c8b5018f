package diseases

import "time"

// Detection is the outcome of scoring a leaf image.
type Detection struct {
	Disease       string  `json:"disease"`
	Confidence    float64 `json:"confidence"`
	Severity      string  `json:"severity"`
	AffectedPlant string  `json:"affected_plant"`
}

// Record is a persisted detection tied to the requesting user. ImageObject
// points at the archived upload when an object store is configured; ImageURL
// is a presigned download link filled in at listing time, never persisted.
type Record struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Detection   Detection `json:"detection"`
	ImageObject string    `json:"image_object,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
