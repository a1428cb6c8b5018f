package pests

const defaultKey = "default"

// Measures is the treatment guidance for one disease.
type Measures struct {
	Organic      []string
	Chemical     []string
	Preventive   []string
	Severity     string
	RecoveryTime string
}

var controlMeasures = map[string]Measures{
	"Early_blight": {
		Organic: []string{
			"Remove and destroy infected leaves",
			"Apply copper-based fungicides",
			"Use Trichoderma as biological control",
			"Spray neem oil solution (5ml/liter)",
		},
		Chemical: []string{
			"Mancozeb 75% WP @ 2.5g/liter",
			"Chlorothalonil 75% WP @ 2g/liter",
			"Azoxystrobin 23% SC @ 1ml/liter",
		},
		Preventive: []string{
			"Practice crop rotation with non-solanaceous crops",
			"Maintain proper plant spacing for air circulation",
			"Use disease-resistant varieties",
			"Apply mulch to prevent soil splash",
		},
		Severity:     "Medium to High",
		RecoveryTime: "2-3 weeks with proper treatment",
	},
	"Late_blight": {
		Organic: []string{
			"Remove infected plants immediately",
			"Apply copper fungicide preventively",
			"Use Bacillus subtilis as biocontrol",
			"Ensure good drainage",
		},
		Chemical: []string{
			"Metalaxyl + Mancozeb 72% WP @ 2.5g/liter",
			"Cymoxanil + Mancozeb 72% WP @ 2g/liter",
			"Dimethomorph 50% WP @ 1.5g/liter",
		},
		Preventive: []string{
			"Plant resistant varieties",
			"Avoid overhead irrigation",
			"Monitor weather for blight-favorable conditions",
			"Destroy volunteer plants and cull piles",
		},
		Severity:     "Very High",
		RecoveryTime: "Difficult to recover; prevention is key",
	},
	"Leaf_Blast": {
		Organic: []string{
			"Remove infected leaves",
			"Apply Pseudomonas fluorescens @ 10g/liter",
			"Use silicon-based fertilizers to strengthen plants",
			"Spray cow urine solution (1:10 ratio)",
		},
		Chemical: []string{
			"Tricyclazole 75% WP @ 0.6g/liter",
			"Carbendazim 50% WP @ 1g/liter",
			"Isoprothiolane 40% EC @ 1.5ml/liter",
		},
		Preventive: []string{
			"Use resistant rice varieties",
			"Avoid excessive nitrogen application",
			"Maintain optimal water levels",
			"Clean field bunds and remove alternate hosts",
		},
		Severity:     "High",
		RecoveryTime: "3-4 weeks",
	},
	"Brown_Spot": {
		Organic: []string{
			"Improve soil fertility with organic matter",
			"Apply potash to increase resistance",
			"Remove infected leaves",
			"Spray Trichoderma suspension",
		},
		Chemical: []string{
			"Mancozeb 75% WP @ 2g/liter",
			"Edifenphos 50% EC @ 1ml/liter",
			"Propiconazole 25% EC @ 1ml/liter",
		},
		Preventive: []string{
			"Use certified disease-free seeds",
			"Apply balanced fertilizers",
			"Maintain proper drainage",
			"Avoid water stress",
		},
		Severity:     "Medium",
		RecoveryTime: "2-3 weeks",
	},
	"Bacterial_spot": {
		Organic: []string{
			"Remove and destroy infected plant parts",
			"Apply copper-based bactericides",
			"Use Pseudomonas fluorescens",
			"Spray garlic extract solution",
		},
		Chemical: []string{
			"Streptomycin sulfate @ 0.5g/liter",
			"Copper oxychloride 50% WP @ 3g/liter",
			"Kasugamycin 3% SL @ 2ml/liter",
		},
		Preventive: []string{
			"Use disease-free seeds",
			"Practice 2-3 year crop rotation",
			"Avoid overhead irrigation",
			"Disinfect tools between plants",
		},
		Severity:     "Medium",
		RecoveryTime: "2-3 weeks",
	},
	"healthy": {
		Organic:  []string{},
		Chemical: []string{},
		Preventive: []string{
			"Continue regular monitoring",
			"Maintain good agricultural practices",
			"Ensure balanced nutrition",
			"Practice preventive spraying during disease-prone seasons",
		},
		Severity:     "None",
		RecoveryTime: "N/A - Plant is healthy",
	},
	defaultKey: {
		Organic: []string{
			"Remove and destroy infected plant parts",
			"Improve air circulation around plants",
			"Apply neem oil or other organic fungicides",
			"Maintain proper plant nutrition",
		},
		Chemical: []string{
			"Consult local agricultural extension for appropriate fungicides",
			"Follow label instructions carefully",
			"Apply preventive sprays during disease-prone periods",
		},
		Preventive: []string{
			"Practice crop rotation",
			"Use disease-resistant varieties",
			"Maintain field sanitation",
			"Monitor plants regularly for early detection",
		},
		Severity:     "Medium",
		RecoveryTime: "2-4 weeks with proper management",
	},
}

// MeasuresFor returns the treatment guidance for a normalized disease key.
func MeasuresFor(key string) Measures {
	if m, ok := controlMeasures[key]; ok {
		return m
	}
	return controlMeasures[defaultKey]
}
