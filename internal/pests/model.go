package pests

// Advice bundles a disease detection with treatment guidance.
type Advice struct {
	Disease               string   `json:"disease"`
	Confidence            float64  `json:"confidence"`
	Severity              string   `json:"severity"`
	ControlMeasures       []string `json:"control_measures"`
	OrganicSolutions      []string `json:"organic_solutions"`
	ChemicalSolutions     []string `json:"chemical_solutions"`
	PreventiveMeasures    []string `json:"preventive_measures"`
	EstimatedRecoveryTime string   `json:"estimated_recovery_time"`
}
