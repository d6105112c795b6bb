// Package roi holds the pure calculation core: a handful of stateless
// formulas over cost/revenue/lead numbers plus the report generator that
// orchestrates them over a time-filtered record set.
package roi

import (
	"math"
	"sort"
	"time"

	"roipulse/internal/models"
)

// CalculateROI returns revenue - costs. A zero cost basis yields 0: with no
// spend there is no meaningful ROI figure.
func CalculateROI(costs, revenue float64) float64 {
	if costs == 0 {
		return 0
	}
	return revenue - costs
}

// CalculateROIPercentage returns ((revenue - costs) / costs) * 100, or 0
// when costs is 0.
func CalculateROIPercentage(costs, revenue float64) float64 {
	if costs == 0 {
		return 0
	}
	return ((revenue - costs) / costs) * 100
}

// CalculatePaybackPeriod returns the whole days needed to recover totalCosts
// at the given daily revenue rate, or 0 when dailyRevenue is 0.
func CalculatePaybackPeriod(totalCosts, dailyRevenue float64) float64 {
	if dailyRevenue == 0 {
		return 0
	}
	return math.Ceil(totalCosts / dailyRevenue)
}

// CalculateCostPerAcquisition returns totalCosts / leadsGenerated, or 0 when
// there are no leads.
func CalculateCostPerAcquisition(totalCosts float64, leadsGenerated int) float64 {
	if leadsGenerated == 0 {
		return 0
	}
	return totalCosts / float64(leadsGenerated)
}

// CalculateRevenueGrowthRate returns the percentage change from previous to
// current, or 0 when previous is 0.
func CalculateRevenueGrowthRate(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return ((current - previous) / previous) * 100
}

// FilterByTime keeps records whose date falls inside the trailing window
// implied by the filter, anchored at now. The all filter keeps everything.
func FilterByTime(records []models.ROIRecord, filter models.TimeFilter, now time.Time) []models.ROIRecord {
	if filter == models.FilterAll {
		return records
	}
	start := now.AddDate(0, 0, -filter.Days())
	out := make([]models.ROIRecord, 0, len(records))
	for _, r := range records {
		if !r.Date.Before(start) {
			out = append(out, r)
		}
	}
	return out
}

// GenerateReport computes a full ROI snapshot over the records that fall
// inside the filter window. An empty filtered set yields an all-zero report;
// that is a defined terminal case, not an error.
func GenerateReport(records []models.ROIRecord, filter models.TimeFilter, now time.Time) models.ROIReport {
	filtered := FilterByTime(records, filter, now)
	if len(filtered) == 0 {
		return models.ROIReport{Period: filter, GeneratedAt: now}
	}

	var totalCosts, totalRevenue float64
	var totalLeads int
	for _, r := range filtered {
		totalCosts += r.Costs
		totalRevenue += r.Revenue
		totalLeads += r.LeadsGenerated
	}

	sorted := make([]models.ROIRecord, len(filtered))
	copy(sorted, filtered)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date.Time)
	})

	// Revenue growth compares the two date-ordered halves; on odd counts the
	// first half gets the smaller share.
	mid := len(sorted) / 2
	var firstHalfRevenue, secondHalfRevenue float64
	for _, r := range sorted[:mid] {
		firstHalfRevenue += r.Revenue
	}
	for _, r := range sorted[mid:] {
		secondHalfRevenue += r.Revenue
	}

	spanDays := daysBetween(sorted[0].Date, sorted[len(sorted)-1].Date)
	if spanDays == 0 {
		spanDays = 1
	}
	dailyRevenue := totalRevenue / float64(spanDays)

	return models.ROIReport{
		TotalROI:           CalculateROI(totalCosts, totalRevenue),
		ROIPercentage:      CalculateROIPercentage(totalCosts, totalRevenue),
		PaybackPeriod:      CalculatePaybackPeriod(totalCosts, dailyRevenue),
		TotalCosts:         totalCosts,
		TotalRevenue:       totalRevenue,
		NetProfit:          totalRevenue - totalCosts,
		CostPerAcquisition: CalculateCostPerAcquisition(totalCosts, totalLeads),
		RevenueGrowthRate:  CalculateRevenueGrowthRate(secondHalfRevenue, firstHalfRevenue),
		Period:             filter,
		GeneratedAt:        now,
	}
}

func daysBetween(from, to models.Date) int {
	return int(to.Sub(from.Time).Hours() / 24)
}
