package irrigation

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	rainfallEfficiency = 0.8
	nextTimeLayout     = "2006-01-02 15:04"
)

// BuildPlan computes the irrigation recommendation for the given conditions.
// Inputs are assumed validated; now is the reference time for the next
// irrigation date.
func BuildPlan(req Request, now time.Time) Plan {
	cropType := strings.ToLower(strings.TrimSpace(req.CropType))
	stage := strings.ToLower(strings.TrimSpace(req.CropStage))

	baseReq := waterRequirement(cropType, stage)
	adjusted := baseReq * etFactor(req.Temperature, req.Humidity)

	effectiveRainfall := req.Rainfall * rainfallEfficiency
	netWater := math.Max(0, adjusted-effectiveRainfall)

	optimal := optimalMoisture(cropType, stage)
	needed := req.SoilMoisture < optimal

	waterAmount := 0.0
	if needed {
		waterAmount = netWater
	}

	return Plan{
		IrrigationNeeded: needed,
		WaterAmount:      math.Round(waterAmount*100) / 100,
		Schedule:         schedule(needed, stage, req.Temperature, req.SoilMoisture),
		NextIrrigation:   nextIrrigation(req.SoilMoisture, optimal, req.Rainfall, now),
		Reasoning:        reasoning(needed, req.SoilMoisture, optimal, req.Temperature, req.Rainfall, stage),
		Tips:             tips(cropType, stage, req.Temperature),
	}
}

// etFactor adjusts water demand for evapotranspiration. Hot, dry air pushes
// the factor up; the result is clamped to [0.5, 2.0].
func etFactor(temperature, humidity float64) float64 {
	tempFactor := 1 + (temperature-25)*0.02
	humidityFactor := 1 + (75-humidity)*0.005
	return math.Max(0.5, math.Min(2.0, tempFactor*humidityFactor))
}

// optimalMoisture returns the target soil moisture percentage. Rice runs
// wetter than everything else.
func optimalMoisture(cropType, stage string) float64 {
	if cropType == "rice" {
		if stage == StageVegetative || stage == StageFlowering {
			return 80
		}
		return 70
	}
	if stage == StageFlowering || stage == StageFruiting {
		return 60
	}
	return 50
}

func schedule(needed bool, stage string, temperature, soilMoisture float64) string {
	if !needed {
		return "No irrigation needed currently. Monitor soil moisture levels."
	}
	switch {
	case temperature > 35:
		return "Irrigate early morning (5-7 AM) or late evening (6-8 PM) to minimize evaporation"
	case stage == StageFlowering || stage == StageFruiting:
		return "Irrigate every 2-3 days during flowering/fruiting stage"
	case soilMoisture < 30:
		return "Immediate irrigation required. Soil moisture critically low."
	default:
		return "Irrigate every 3-4 days based on weather conditions"
	}
}

func nextIrrigation(soilMoisture, optimal, rainfall float64, now time.Time) string {
	var days int
	switch {
	case soilMoisture >= optimal:
		days = 3
		if rainfall > 10 {
			days = 4
		}
	case soilMoisture < 40:
		days = 1
	default:
		days = 2
	}
	return now.Add(time.Duration(days) * 24 * time.Hour).Format(nextTimeLayout)
}

func reasoning(needed bool, soilMoisture, optimal, temperature, rainfall float64, stage string) string {
	var reasons []string

	if needed {
		reasons = append(reasons, fmt.Sprintf("Current soil moisture (%g%%) is below optimal level (%g%%)", soilMoisture, optimal))
	} else {
		reasons = append(reasons, fmt.Sprintf("Soil moisture (%g%%) is adequate", soilMoisture))
	}
	if rainfall > 0 {
		reasons = append(reasons, fmt.Sprintf("Recent rainfall: %gmm", rainfall))
	}
	if temperature > 32 {
		reasons = append(reasons, "High temperature increases water requirement")
	}
	if stage == StageFlowering || stage == StageFruiting {
		reasons = append(reasons, fmt.Sprintf("Critical %s stage requires consistent moisture", stage))
	}
	return strings.Join(reasons, ". ")
}

func tips(cropType, stage string, temperature float64) []string {
	var out []string

	if temperature > 35 {
		out = append(out,
			"Use mulching to reduce water evaporation",
			"Consider drip irrigation for water efficiency",
		)
	}
	if stage == StageFlowering || stage == StageFruiting {
		out = append(out,
			"Maintain consistent moisture during flowering/fruiting",
			"Avoid water stress during this critical stage",
		)
	}
	if cropType == "rice" {
		out = append(out, "Maintain standing water of 2-3 inches during vegetative stage")
	}
	out = append(out,
		"Check soil moisture regularly using a soil moisture meter",
		"Irrigate based on crop need, not on a fixed schedule",
	)
	return out
}

// GeneralTips are the crop-agnostic watering guidelines served as insights.
func GeneralTips() []string {
	return []string{
		"Best time to irrigate: Early morning (5-7 AM) or late evening (6-8 PM)",
		"Use drip or sprinkler irrigation for water efficiency",
		"Apply mulch to reduce evaporation and maintain soil moisture",
		"Monitor weather forecasts to adjust irrigation schedules",
		"Avoid over-irrigation which can lead to waterlogging and diseases",
	}
}
