package irrigation

// Growth stages accepted by the scheduler.
const (
	StageSeedling   = "seedling"
	StageVegetative = "vegetative"
	StageFlowering  = "flowering"
	StageFruiting   = "fruiting"
	StageMaturity   = "maturity"
)

// cropWaterRequirements holds daily water needs in mm per growth stage.
var cropWaterRequirements = map[string]map[string]float64{
	"rice": {
		StageSeedling:   8,
		StageVegetative: 10,
		StageFlowering:  12,
		StageFruiting:   10,
		StageMaturity:   6,
	},
	"wheat": {
		StageSeedling:   4,
		StageVegetative: 6,
		StageFlowering:  8,
		StageFruiting:   6,
		StageMaturity:   3,
	},
	"maize": {
		StageSeedling:   5,
		StageVegetative: 7,
		StageFlowering:  9,
		StageFruiting:   8,
		StageMaturity:   4,
	},
	"cotton": {
		StageSeedling:   4,
		StageVegetative: 6,
		StageFlowering:  8,
		StageFruiting:   9,
		StageMaturity:   5,
	},
	"tomato": {
		StageSeedling:   3,
		StageVegetative: 5,
		StageFlowering:  7,
		StageFruiting:   8,
		StageMaturity:   5,
	},
	"potato": {
		StageSeedling:   4,
		StageVegetative: 6,
		StageFlowering:  7,
		StageFruiting:   8,
		StageMaturity:   4,
	},
}

// defaultWaterRequirement covers crops without a dedicated table.
var defaultWaterRequirement = map[string]float64{
	StageSeedling:   4,
	StageVegetative: 6,
	StageFlowering:  7,
	StageFruiting:   7,
	StageMaturity:   4,
}

func validStage(stage string) bool {
	_, ok := defaultWaterRequirement[stage]
	return ok
}

func waterRequirement(cropType, stage string) float64 {
	if table, ok := cropWaterRequirements[cropType]; ok {
		return table[stage]
	}
	return defaultWaterRequirement[stage]
}
