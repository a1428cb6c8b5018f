// Package insights serves the static advisory content that complements the
// prediction engines: cropping patterns, seasonal picks, disease calendars
// and pest alerts.
package insights

import "agroadvisor-backend/internal/irrigation"

// CropPattern summarizes what historically grows well in a season.
type CropPattern struct {
	Season       string   `json:"season"`
	PopularCrops []string `json:"popular_crops"`
	SuccessRate  int      `json:"success_rate"`
}

// SeasonalRecommendation is the current season's planting guidance.
type SeasonalRecommendation struct {
	CurrentSeason    string            `json:"current_season"`
	RecommendedCrops []string          `json:"recommended_crops"`
	MarketPrices     map[string]string `json:"market_prices"`
}

// SeasonalDiseases lists the diseases a season tends to bring.
type SeasonalDiseases struct {
	Season        string   `json:"season"`
	Diseases      []string `json:"diseases"`
	AffectedCrops []string `json:"affected_crops"`
}

// PestAlert is an active regional warning.
type PestAlert struct {
	AlertType      string   `json:"alert_type"`
	PestDisease    string   `json:"pest_disease"`
	AffectedCrops  []string `json:"affected_crops"`
	Regions        []string `json:"regions"`
	Severity       string   `json:"severity"`
	Recommendation string   `json:"recommendation"`
}

// Overview bundles everything for a single dashboard call.
type Overview struct {
	SeasonalRecommendations SeasonalRecommendation `json:"seasonal_recommendations"`
	CropPatterns            []CropPattern          `json:"crop_patterns"`
	CommonDiseases          []SeasonalDiseases     `json:"common_diseases"`
	IrrigationTips          []string               `json:"irrigation_tips"`
	PestAlerts              []PestAlert            `json:"pest_alerts"`
}

func CropPatterns() []CropPattern {
	return []CropPattern{
		{Season: "Kharif", PopularCrops: []string{"rice", "maize", "cotton"}, SuccessRate: 85},
		{Season: "Rabi", PopularCrops: []string{"wheat", "mustard", "chickpea"}, SuccessRate: 88},
		{Season: "Zaid", PopularCrops: []string{"watermelon", "cucumber", "muskmelon"}, SuccessRate: 80},
	}
}

func SeasonalRecommendations() SeasonalRecommendation {
	return SeasonalRecommendation{
		CurrentSeason:    "Kharif",
		RecommendedCrops: []string{"rice", "maize", "soybean", "cotton"},
		MarketPrices: map[string]string{
			"rice":    "₹2000-2500/quintal",
			"maize":   "₹1800-2200/quintal",
			"soybean": "₹4000-4500/quintal",
		},
	}
}

func CommonDiseases() []SeasonalDiseases {
	return []SeasonalDiseases{
		{
			Season:        "Monsoon",
			Diseases:      []string{"Late Blight", "Leaf Blast", "Brown Spot", "Bacterial Spot"},
			AffectedCrops: []string{"Potato", "Tomato", "Rice", "Pepper"},
		},
		{
			Season:        "Winter",
			Diseases:      []string{"Powdery Mildew", "Rust", "Apple Scab"},
			AffectedCrops: []string{"Wheat", "Squash", "Apple", "Cherry"},
		},
		{
			Season:        "Summer",
			Diseases:      []string{"Early Blight", "Leaf Curl", "Spider Mites", "Leaf Scorch"},
			AffectedCrops: []string{"Tomato", "Cucumber", "Beans", "Strawberry"},
		},
	}
}

func ActiveAlerts() []PestAlert {
	return []PestAlert{
		{
			AlertType:      "Disease Alert",
			PestDisease:    "Late Blight",
			AffectedCrops:  []string{"Potato", "Tomato"},
			Regions:        []string{"Punjab", "Haryana", "UP"},
			Severity:       "High",
			Recommendation: "Apply preventive fungicides immediately",
		},
		{
			AlertType:      "Pest Alert",
			PestDisease:    "Fall Armyworm",
			AffectedCrops:  []string{"Maize", "Sorghum"},
			Regions:        []string{"Karnataka", "Maharashtra"},
			Severity:       "Medium",
			Recommendation: "Monitor fields regularly and apply IPM practices",
		},
		{
			AlertType:      "Weather Alert",
			PestDisease:    "Fungal Diseases",
			AffectedCrops:  []string{"All crops"},
			Regions:        []string{"Coastal regions"},
			Severity:       "Medium",
			Recommendation: "High humidity conditions favor fungal diseases",
		},
	}
}

func BuildOverview() Overview {
	return Overview{
		SeasonalRecommendations: SeasonalRecommendations(),
		CropPatterns:            CropPatterns(),
		CommonDiseases:          CommonDiseases(),
		IrrigationTips:          irrigation.GeneralTips(),
		PestAlerts:              ActiveAlerts(),
	}
}
