package analyze

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Thresholds is the hard-coded domain policy behind the analyzer and the
// recommendation rules. Values are currency-unit-dependent percentages
// (CPA excepted) and compare strictly as documented on each field.
type Thresholds struct {
	// HighCostToolROI: a tool is flagged when its summed ROI% is < this.
	HighCostToolROI float64 `yaml:"high_cost_tool_roi"`
	// LowPerformingROI: a record's date is flagged when its ROI% is < this.
	LowPerformingROI float64 `yaml:"low_performing_roi"`
	// InefficientCPA: lead generation is flagged when aggregate CPA is > this.
	InefficientCPA float64 `yaml:"inefficient_cpa"`
	// LowAverageROI: the revenue-increase rule fires when average ROI% is < this.
	LowAverageROI float64 `yaml:"low_average_roi"`
	// LowCostEfficiency: the efficiency rule fires when cost efficiency is < this.
	LowCostEfficiency float64 `yaml:"low_cost_efficiency"`
	// LowConsistency: the consistency rule fires when revenue consistency is < this.
	LowConsistency float64 `yaml:"low_consistency"`
	// ScaleROI: the automation-expansion rule fires when average ROI% is > this.
	ScaleROI float64 `yaml:"scale_roi"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		HighCostToolROI:   50,
		LowPerformingROI:  30,
		InefficientCPA:    100,
		LowAverageROI:     100,
		LowCostEfficiency: 150,
		LowConsistency:    70,
		ScaleROI:          150,
	}
}

// LoadThresholds reads overrides from a YAML file. A missing file is not an
// error; the defaults are returned as-is.
func LoadThresholds(path string) (Thresholds, error) {
	th := DefaultThresholds()
	if path == "" {
		return th, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return th, nil
		}
		return th, fmt.Errorf("read thresholds: %w", err)
	}
	if err := yaml.Unmarshal(b, &th); err != nil {
		return DefaultThresholds(), fmt.Errorf("parse thresholds: %w", err)
	}
	return th, nil
}
