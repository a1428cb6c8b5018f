package pests

import "strings"

// normalizationRules map a free-form disease name onto a treatment key. Order
// matters: "early blight" and "late blight" must win over a plain "blight"
// keyword, so the rules are checked first to last.
var normalizationRules = []struct {
	keywords []string
	key      string
}{
	{[]string{"early", "blight"}, "Early_blight"},
	{[]string{"late", "blight"}, "Late_blight"},
	{[]string{"blast"}, "Leaf_Blast"},
	{[]string{"brown", "spot"}, "Brown_Spot"},
	{[]string{"bacterial", "spot"}, "Bacterial_spot"},
	{[]string{"healthy"}, "healthy"},
}

// NormalizeDiseaseName resolves a detected disease to a treatment key,
// falling back to generic guidance for unknown diseases.
func NormalizeDiseaseName(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range normalizationRules {
		matched := true
		for _, keyword := range rule.keywords {
			if !strings.Contains(lower, keyword) {
				matched = false
				break
			}
		}
		if matched {
			return rule.key
		}
	}
	return defaultKey
}
