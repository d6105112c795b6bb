// Package analyze derives efficiency ratios and flags underperforming
// tools and periods from a record set. It does no time filtering of its
// own; callers pass whatever subset they care about.
package analyze

import (
	"math"
	"sort"

	"roipulse/internal/models"
	"roipulse/internal/roi"
)

// Efficiency summarizes how well the automation spend is performing.
type Efficiency struct {
	AverageROI         float64 `json:"averageROI"`
	AverageCPA         float64 `json:"averageCPA"`
	CostEfficiency     float64 `json:"costEfficiency"`
	RevenueConsistency float64 `json:"revenueConsistency"`
}

// Bottlenecks flags the weak spots found in a record set.
type Bottlenecks struct {
	HighCostTools             []string `json:"highCostTools"`
	LowPerformingPeriods      []string `json:"lowPerformingPeriods"`
	InefficientLeadGeneration bool     `json:"inefficientLeadGeneration"`
}

// AnalyzeEfficiency computes aggregate ratios over the whole input.
// RevenueConsistency is 100 minus the coefficient of variation of revenue
// as a percentage, floored at 0. Empty input yields all zeros.
func AnalyzeEfficiency(records []models.ROIRecord) Efficiency {
	if len(records) == 0 {
		return Efficiency{}
	}

	var totalCosts, totalRevenue float64
	var totalLeads int
	for _, r := range records {
		totalCosts += r.Costs
		totalRevenue += r.Revenue
		totalLeads += r.LeadsGenerated
	}

	var costEfficiency float64
	if totalCosts > 0 {
		costEfficiency = (totalRevenue / totalCosts) * 100
	}

	mean := totalRevenue / float64(len(records))
	var variance float64
	for _, r := range records {
		variance += (r.Revenue - mean) * (r.Revenue - mean)
	}
	variance /= float64(len(records))
	stdDev := math.Sqrt(variance)

	var consistency float64
	if mean > 0 {
		consistency = math.Max(0, 100-(stdDev/mean)*100)
	}

	return Efficiency{
		AverageROI:         roi.CalculateROIPercentage(totalCosts, totalRevenue),
		AverageCPA:         roi.CalculateCostPerAcquisition(totalCosts, totalLeads),
		CostEfficiency:     costEfficiency,
		RevenueConsistency: consistency,
	}
}

// EfficiencyFromTotals builds the same summary from pre-aggregated totals,
// as posted by the transport layer. A single aggregate has no variance, so
// consistency is 100 whenever there is any revenue.
func EfficiencyFromTotals(costs, revenue float64, leads int) Efficiency {
	var costEfficiency float64
	if costs > 0 {
		costEfficiency = (revenue / costs) * 100
	}
	var consistency float64
	if revenue > 0 {
		consistency = 100
	}
	return Efficiency{
		AverageROI:         roi.CalculateROIPercentage(costs, revenue),
		AverageCPA:         roi.CalculateCostPerAcquisition(costs, leads),
		CostEfficiency:     costEfficiency,
		RevenueConsistency: consistency,
	}
}

// IdentifyBottlenecks flags tools whose summed ROI percentage is below the
// high-cost threshold (first-seen tool order), the first five dates whose
// per-record ROI percentage is below the low-performing threshold in
// chronological order, and whether the aggregate CPA exceeds the
// inefficiency threshold. Empty input yields empty/false defaults.
func IdentifyBottlenecks(records []models.ROIRecord, th Thresholds) Bottlenecks {
	if len(records) == 0 {
		return Bottlenecks{HighCostTools: []string{}, LowPerformingPeriods: []string{}}
	}

	type toolTotals struct{ costs, revenue float64 }
	totalsByTool := make(map[string]*toolTotals)
	toolOrder := make([]string, 0)
	for _, r := range records {
		tt, ok := totalsByTool[r.AutomationTool]
		if !ok {
			tt = &toolTotals{}
			totalsByTool[r.AutomationTool] = tt
			toolOrder = append(toolOrder, r.AutomationTool)
		}
		tt.costs += r.Costs
		tt.revenue += r.Revenue
	}

	highCostTools := []string{}
	for _, tool := range toolOrder {
		tt := totalsByTool[tool]
		if roi.CalculateROIPercentage(tt.costs, tt.revenue) < th.HighCostToolROI {
			highCostTools = append(highCostTools, tool)
		}
	}

	sorted := make([]models.ROIRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date.Time)
	})

	lowPeriods := []string{}
	for _, r := range sorted {
		if len(lowPeriods) == maxLowPerformingPeriods {
			break
		}
		if roi.CalculateROIPercentage(r.Costs, r.Revenue) < th.LowPerformingROI {
			lowPeriods = append(lowPeriods, r.Date.String())
		}
	}

	var totalCosts float64
	var totalLeads int
	for _, r := range records {
		totalCosts += r.Costs
		totalLeads += r.LeadsGenerated
	}
	avgCPA := roi.CalculateCostPerAcquisition(totalCosts, totalLeads)

	return Bottlenecks{
		HighCostTools:             highCostTools,
		LowPerformingPeriods:      lowPeriods,
		InefficientLeadGeneration: avgCPA > th.InefficientCPA,
	}
}

const maxLowPerformingPeriods = 5
