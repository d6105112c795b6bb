package roi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roipulse/internal/models"
)

func TestCalculateROI(t *testing.T) {
	assert.Equal(t, 0.0, CalculateROI(0, 500), "zero cost basis yields no ROI figure")
	assert.Equal(t, 200.0, CalculateROI(100, 300))
	assert.Equal(t, -50.0, CalculateROI(100, 50))
}

func TestCalculateROIPercentage(t *testing.T) {
	assert.Equal(t, 0.0, CalculateROIPercentage(0, 500))
	assert.Equal(t, 200.0, CalculateROIPercentage(100, 300))
	assert.Equal(t, ((250.0-80.0)/80.0)*100, CalculateROIPercentage(80, 250))
	assert.Equal(t, -100.0, CalculateROIPercentage(100, 0))
}

func TestCalculatePaybackPeriod(t *testing.T) {
	assert.Equal(t, 20.0, CalculatePaybackPeriod(1000, 50))
	assert.Equal(t, 0.0, CalculatePaybackPeriod(1000, 0))
	assert.Equal(t, 21.0, CalculatePaybackPeriod(1001, 50), "partial days round up")
}

func TestCalculateCostPerAcquisition(t *testing.T) {
	assert.Equal(t, 0.0, CalculateCostPerAcquisition(500, 0))
	assert.Equal(t, 20.0, CalculateCostPerAcquisition(500, 25))
}

func TestCalculateRevenueGrowthRate(t *testing.T) {
	assert.Equal(t, 0.0, CalculateRevenueGrowthRate(100, 0))
	assert.Equal(t, 100.0, CalculateRevenueGrowthRate(200, 100))
	assert.InDelta(t, -66.6667, CalculateRevenueGrowthRate(100, 300), 0.001)
}

func TestGenerateReportEmpty(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	report := GenerateReport(nil, models.Filter30d, now)

	assert.Equal(t, models.Filter30d, report.Period)
	assert.Equal(t, now, report.GeneratedAt)
	assert.Zero(t, report.TotalROI)
	assert.Zero(t, report.ROIPercentage)
	assert.Zero(t, report.PaybackPeriod)
	assert.Zero(t, report.TotalCosts)
	assert.Zero(t, report.TotalRevenue)
	assert.Zero(t, report.NetProfit)
	assert.Zero(t, report.CostPerAcquisition)
	assert.Zero(t, report.RevenueGrowthRate)
}

func TestGenerateReportTwoRecords(t *testing.T) {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	records := []models.ROIRecord{
		{Date: models.NewDate(2024, 1, 1), Costs: 100, Revenue: 300, LeadsGenerated: 10, AutomationTool: "A"},
		{Date: models.NewDate(2024, 1, 2), Costs: 200, Revenue: 100, LeadsGenerated: 5, AutomationTool: "A"},
	}

	report := GenerateReport(records, models.FilterAll, now)

	assert.Equal(t, 300.0, report.TotalCosts)
	assert.Equal(t, 400.0, report.TotalRevenue)
	assert.Equal(t, 100.0, report.NetProfit)
	assert.InDelta(t, (100.0/300.0)*100, report.ROIPercentage, 0.001)
	assert.Equal(t, 100.0, report.TotalROI)
	assert.Equal(t, 20.0, report.CostPerAcquisition)
	// Halves: [300] then [100]; span one day, daily revenue 400.
	assert.InDelta(t, -66.6667, report.RevenueGrowthRate, 0.001)
	assert.Equal(t, 1.0, report.PaybackPeriod)
	assert.Equal(t, models.FilterAll, report.Period)
}

func TestGenerateReportSameDaySpanFloor(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	records := []models.ROIRecord{
		{Date: models.NewDate(2024, 3, 10), Costs: 100, Revenue: 200},
		{Date: models.NewDate(2024, 3, 10), Costs: 100, Revenue: 200},
	}

	report := GenerateReport(records, models.FilterAll, now)

	// Zero-day span substitutes 1: daily revenue 400, payback ceil(200/400).
	assert.Equal(t, 1.0, report.PaybackPeriod)
}

func TestFilterByTime(t *testing.T) {
	now := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	records := []models.ROIRecord{
		{ID: "in", Date: models.NewDate(2024, 6, 15)},
		{ID: "edge", Date: models.NewDate(2024, 5, 31)},
		{ID: "out", Date: models.NewDate(2024, 5, 1)},
	}

	got := FilterByTime(records, models.Filter30d, now)
	require.Len(t, got, 2)
	assert.Equal(t, "in", got[0].ID)
	assert.Equal(t, "edge", got[1].ID, "window lower bound is inclusive")

	assert.Len(t, FilterByTime(records, models.FilterAll, now), 3)
	assert.Empty(t, FilterByTime(records, models.Filter7d, now))
}
