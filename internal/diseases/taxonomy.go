package diseases

import (
	"fmt"
	"strings"

	"agroadvisor-backend/internal/shared/telemetry"
)

// DefaultClasses is the PlantVillage taxonomy the disease model was trained
// on. Class index must match the model's output order.
var DefaultClasses = []string{
	"Apple___Apple_scab",
	"Apple___Black_rot",
	"Apple___Cedar_apple_rust",
	"Apple___healthy",
	"Blueberry___healthy",
	"Cherry_(including_sour)___Powdery_mildew",
	"Cherry_(including_sour)___healthy",
	"Corn_(maize)___Cercospora_leaf_spot Gray_leaf_spot",
	"Corn_(maize)___Common_rust_",
	"Corn_(maize)___Northern_Leaf_Blight",
	"Corn_(maize)___healthy",
	"Grape___Black_rot",
	"Grape___Esca_(Black_Measles)",
	"Grape___Leaf_blight_(Isariopsis_Leaf_Spot)",
	"Grape___healthy",
	"Orange___Haunglongbing_(Citrus_greening)",
	"Peach___Bacterial_spot",
	"Peach___healthy",
	"Pepper,_bell___Bacterial_spot",
	"Pepper,_bell___healthy",
	"Potato___Early_blight",
	"Potato___Late_blight",
	"Potato___healthy",
	"Raspberry___healthy",
	"Soybean___healthy",
	"Squash___Powdery_mildew",
	"Strawberry___Leaf_scorch",
	"Strawberry___healthy",
	"Tomato___Bacterial_spot",
	"Tomato___Early_blight",
	"Tomato___Late_blight",
	"Tomato___Leaf_Mold",
	"Tomato___Septoria_leaf_spot",
	"Tomato___Spider_mites Two-spotted_spider_mite",
	"Tomato___Target_Spot",
	"Tomato___Tomato_Yellow_Leaf_Curl_Virus",
	"Tomato___Tomato_mosaic_virus",
	"Tomato___healthy",
}

// AlignTaxonomy reconciles the class list with the model's reported class
// count. A mismatch is logged and repaired by truncating or padding with
// generic names so every model index resolves to a label.
func AlignTaxonomy(classes []string, modelClasses int) []string {
	if modelClasses <= 0 || modelClasses == len(classes) {
		return classes
	}
	telemetry.Warn("diseases.taxonomy_mismatch", map[string]any{
		"model_classes": modelClasses,
		"known_classes": len(classes),
	})
	if modelClasses < len(classes) {
		return classes[:modelClasses]
	}
	out := make([]string, len(classes), modelClasses)
	copy(out, classes)
	for i := len(classes); i < modelClasses; i++ {
		out = append(out, fmt.Sprintf("Disease_Class_%d", i))
	}
	return out
}

// ParseClassName splits a taxonomy entry into the affected plant and the
// disease, with underscores turned back into spaces. Generic padded entries
// keep their raw name under a "Plant" host.
func ParseClassName(name string) (plant, disease string) {
	if strings.Contains(name, "___") {
		parts := strings.SplitN(name, "___", 2)
		plant = strings.ReplaceAll(parts[0], "_", " ")
		disease = strings.ReplaceAll(parts[1], "_", " ")
		return plant, disease
	}
	if strings.Contains(name, "_") && strings.Contains(name, "Class") {
		return "Plant", name
	}
	return "Plant", strings.ReplaceAll(name, "_", " ")
}

// Severity grades a detection. Healthy leaves carry no severity; confident
// detections of aggressive diseases are flagged High.
func Severity(disease string, confidence float64) string {
	lower := strings.ToLower(disease)
	if strings.Contains(lower, "healthy") {
		return "None"
	}
	if confidence > 0.8 {
		for _, keyword := range []string{"blight", "rot", "blast", "scab"} {
			if strings.Contains(lower, keyword) {
				return "High"
			}
		}
		return "Medium"
	}
	return "Low"
}
