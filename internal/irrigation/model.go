package irrigation

import "time"

// Request carries the field conditions for a scheduling run.
type Request struct {
	CropType     string  `json:"crop_type"`
	SoilMoisture float64 `json:"soil_moisture"`
	Temperature  float64 `json:"temperature"`
	Humidity     float64 `json:"humidity"`
	Rainfall     float64 `json:"rainfall"`
	CropStage    string  `json:"crop_stage"`
}

// Plan is the irrigation recommendation for the given conditions.
type Plan struct {
	IrrigationNeeded bool     `json:"irrigation_needed"`
	WaterAmount      float64  `json:"water_amount"`
	Schedule         string   `json:"schedule"`
	NextIrrigation   string   `json:"next_irrigation"`
	Reasoning        string   `json:"reasoning"`
	Tips             []string `json:"tips"`
}

// Record is a persisted scheduling run tied to the requesting user.
type Record struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Request   Request   `json:"request"`
	Plan      Plan      `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}
