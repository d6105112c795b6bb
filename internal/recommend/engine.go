// Package recommend turns analyzer output into a prioritized list of
// optimization suggestions. The rule table is fixed: rules are independent,
// every rule whose condition holds fires exactly once, and the result is
// stable-sorted high, medium, low while keeping table order within a tier.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"roipulse/internal/analyze"
	"roipulse/internal/models"
)

// Generate runs the full analysis over the records and evaluates the rule
// table. Empty input yields an empty list.
func Generate(records []models.ROIRecord, th analyze.Thresholds) []models.OptimizationRecommendation {
	if len(records) == 0 {
		return []models.OptimizationRecommendation{}
	}
	eff := analyze.AnalyzeEfficiency(records)
	bt := analyze.IdentifyBottlenecks(records, th)
	return FromAnalysis(eff, bt, th)
}

// FromAnalysis evaluates the rule table against pre-computed analyzer
// output. The transport layer uses this variant with totals-based input
// instead of re-deriving everything from records.
func FromAnalysis(eff analyze.Efficiency, bt analyze.Bottlenecks, th analyze.Thresholds) []models.OptimizationRecommendation {
	recs := []models.OptimizationRecommendation{}

	if len(bt.HighCostTools) > 0 {
		recs = append(recs, models.OptimizationRecommendation{
			ID:    newID(),
			Title: "Optimize High-Cost Automation Tools",
			Description: fmt.Sprintf(
				"Tools with low ROI detected: %s. Consider renegotiating contracts or switching to more cost-effective alternatives.",
				strings.Join(bt.HighCostTools, ", ")),
			Priority:        models.PriorityHigh,
			Category:        models.CategoryCostReduction,
			EstimatedImpact: 25,
			ActionItems: []string{
				"Review current tool subscriptions and usage",
				"Compare with alternative solutions",
				"Negotiate better pricing with vendors",
				"Consider consolidating tools",
			},
			ImplementationDifficulty: models.DifficultyMedium,
		})
	}

	if eff.AverageROI < th.LowAverageROI {
		recs = append(recs, models.OptimizationRecommendation{
			ID:              newID(),
			Title:           "Improve Lead Conversion Strategy",
			Description:     "Current ROI is below optimal levels. Focus on improving lead quality and conversion rates.",
			Priority:        models.PriorityHigh,
			Category:        models.CategoryRevenueIncrease,
			EstimatedImpact: 35,
			ActionItems: []string{
				"Implement lead scoring system",
				"Optimize sales funnel",
				"Enhance follow-up processes",
				"Train sales team on automation tools",
			},
			ImplementationDifficulty: models.DifficultyMedium,
		})
	}

	if eff.CostEfficiency < th.LowCostEfficiency {
		recs = append(recs, models.OptimizationRecommendation{
			ID:              newID(),
			Title:           "Enhance Automation Efficiency",
			Description:     "Cost efficiency can be improved. Automate more manual processes and optimize workflows.",
			Priority:        models.PriorityMedium,
			Category:        models.CategoryEfficiency,
			EstimatedImpact: 20,
			ActionItems: []string{
				"Identify manual bottlenecks",
				"Implement workflow automation",
				"Set up automated reporting",
				"Integrate systems for better data flow",
			},
			ImplementationDifficulty: models.DifficultyEasy,
		})
	}

	if bt.InefficientLeadGeneration {
		recs = append(recs, models.OptimizationRecommendation{
			ID:              newID(),
			Title:           "Reduce Cost Per Acquisition",
			Description:     "CPA is higher than industry benchmarks. Optimize lead generation channels and targeting.",
			Priority:        models.PriorityHigh,
			Category:        models.CategoryCostReduction,
			EstimatedImpact: 30,
			ActionItems: []string{
				"Analyze lead sources by CPA",
				"Focus budget on high-performing channels",
				"Improve targeting and segmentation",
				"A/B test lead generation campaigns",
			},
			ImplementationDifficulty: models.DifficultyMedium,
		})
	}

	if eff.RevenueConsistency < th.LowConsistency {
		recs = append(recs, models.OptimizationRecommendation{
			ID:              newID(),
			Title:           "Stabilize Revenue Streams",
			Description:     "Revenue shows high variability. Implement strategies for more consistent performance.",
			Priority:        models.PriorityMedium,
			Category:        models.CategoryRevenueIncrease,
			EstimatedImpact: 15,
			ActionItems: []string{
				"Develop recurring revenue models",
				"Implement customer retention programs",
				"Create predictable sales pipeline",
				"Balance seasonal fluctuations",
			},
			ImplementationDifficulty: models.DifficultyHard,
		})
	}

	if eff.AverageROI > th.ScaleROI {
		recs = append(recs, models.OptimizationRecommendation{
			ID:              newID(),
			Title:           "Scale Successful Automation",
			Description:     "Strong ROI indicates successful automation. Consider expanding to additional processes.",
			Priority:        models.PriorityLow,
			Category:        models.CategoryAutomation,
			EstimatedImpact: 40,
			ActionItems: []string{
				"Identify additional automation opportunities",
				"Replicate successful workflows",
				"Expand to new markets or segments",
				"Invest in advanced AI capabilities",
			},
			ImplementationDifficulty: models.DifficultyMedium,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return priorityRank(recs[i].Priority) < priorityRank(recs[j].Priority)
	})
	return recs
}

func priorityRank(p models.Priority) int {
	switch p {
	case models.PriorityHigh:
		return 0
	case models.PriorityMedium:
		return 1
	default:
		return 2
	}
}

func newID() string { return "rec_" + uuid.NewString() }
