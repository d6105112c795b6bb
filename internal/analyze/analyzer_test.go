package analyze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roipulse/internal/models"
)

func rec(date models.Date, tool string, costs, revenue float64, leads int) models.ROIRecord {
	return models.ROIRecord{Date: date, AutomationTool: tool, Costs: costs, Revenue: revenue, LeadsGenerated: leads}
}

func TestAnalyzeEfficiencyEmpty(t *testing.T) {
	eff := AnalyzeEfficiency(nil)
	assert.Equal(t, Efficiency{}, eff)
}

func TestAnalyzeEfficiencyTotals(t *testing.T) {
	records := []models.ROIRecord{
		rec(models.NewDate(2024, 1, 1), "A", 100, 200, 10),
		rec(models.NewDate(2024, 1, 2), "A", 100, 200, 10),
	}

	eff := AnalyzeEfficiency(records)

	assert.Equal(t, 100.0, eff.AverageROI)
	assert.Equal(t, 10.0, eff.AverageCPA)
	assert.Equal(t, 200.0, eff.CostEfficiency)
	assert.Equal(t, 100.0, eff.RevenueConsistency, "identical revenues have zero variation")
}

func TestAnalyzeEfficiencyConsistencyFloor(t *testing.T) {
	// Wildly varying revenue: coefficient of variation above 100% floors at 0.
	records := []models.ROIRecord{
		rec(models.NewDate(2024, 1, 1), "A", 10, 1, 1),
		rec(models.NewDate(2024, 1, 2), "A", 10, 1, 1),
		rec(models.NewDate(2024, 1, 3), "A", 10, 1000, 1),
	}
	eff := AnalyzeEfficiency(records)
	assert.Equal(t, 0.0, eff.RevenueConsistency)
}

func TestAnalyzeEfficiencyZeroRevenue(t *testing.T) {
	records := []models.ROIRecord{rec(models.NewDate(2024, 1, 1), "A", 100, 0, 0)}
	eff := AnalyzeEfficiency(records)
	assert.Equal(t, 0.0, eff.RevenueConsistency)
	assert.Equal(t, 0.0, eff.AverageCPA)
}

func TestEfficiencyFromTotals(t *testing.T) {
	eff := EfficiencyFromTotals(100, 300, 10)
	assert.Equal(t, 200.0, eff.AverageROI)
	assert.Equal(t, 10.0, eff.AverageCPA)
	assert.Equal(t, 300.0, eff.CostEfficiency)
	assert.Equal(t, 100.0, eff.RevenueConsistency)

	zero := EfficiencyFromTotals(0, 0, 0)
	assert.Equal(t, Efficiency{}, zero)
}

func TestIdentifyBottlenecksEmpty(t *testing.T) {
	bt := IdentifyBottlenecks(nil, DefaultThresholds())
	assert.Empty(t, bt.HighCostTools)
	assert.Empty(t, bt.LowPerformingPeriods)
	assert.False(t, bt.InefficientLeadGeneration)
}

func TestIdentifyBottlenecksHighCostToolBoundary(t *testing.T) {
	th := DefaultThresholds()

	// Tool ROI exactly 49% is flagged.
	flagged := IdentifyBottlenecks([]models.ROIRecord{
		rec(models.NewDate(2024, 1, 1), "zapflow", 100, 149, 1),
	}, th)
	assert.Equal(t, []string{"zapflow"}, flagged.HighCostTools)

	// Exactly 50% is not (strict less-than).
	clean := IdentifyBottlenecks([]models.ROIRecord{
		rec(models.NewDate(2024, 1, 1), "zapflow", 100, 150, 1),
	}, th)
	assert.Empty(t, clean.HighCostTools)
}

func TestIdentifyBottlenecksToolOrder(t *testing.T) {
	records := []models.ROIRecord{
		rec(models.NewDate(2024, 1, 3), "beta", 100, 100, 1),
		rec(models.NewDate(2024, 1, 1), "alpha", 100, 100, 1),
	}
	bt := IdentifyBottlenecks(records, DefaultThresholds())
	assert.Equal(t, []string{"beta", "alpha"}, bt.HighCostTools, "first-seen order, not date order")
}

func TestIdentifyBottlenecksLowPeriodsCap(t *testing.T) {
	var records []models.ROIRecord
	// Seven low-ROI days, appended newest first.
	for day := 7; day >= 1; day-- {
		records = append(records, rec(models.NewDate(2024, 3, day), "A", 100, 100, 100))
	}

	bt := IdentifyBottlenecks(records, DefaultThresholds())

	require.Len(t, bt.LowPerformingPeriods, 5)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05"}, bt.LowPerformingPeriods)
}

func TestIdentifyBottlenecksCPA(t *testing.T) {
	th := DefaultThresholds()

	over := IdentifyBottlenecks([]models.ROIRecord{
		rec(models.NewDate(2024, 1, 1), "A", 101, 500, 1),
	}, th)
	assert.True(t, over.InefficientLeadGeneration)

	at := IdentifyBottlenecks([]models.ROIRecord{
		rec(models.NewDate(2024, 1, 1), "A", 100, 500, 1),
	}, th)
	assert.False(t, at.InefficientLeadGeneration, "threshold is strictly greater-than")
}

func TestLoadThresholds(t *testing.T) {
	th, err := LoadThresholds("")
	require.NoError(t, err)
	assert.Equal(t, DefaultThresholds(), th)

	th, err = LoadThresholds("does/not/exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultThresholds(), th)
}

func TestLoadThresholdsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("high_cost_tool_roi: 60\ninefficient_cpa: 250\n"), 0o644))

	th, err := LoadThresholds(path)
	require.NoError(t, err)
	assert.Equal(t, 60.0, th.HighCostToolROI)
	assert.Equal(t, 250.0, th.InefficientCPA)
	assert.Equal(t, 30.0, th.LowPerformingROI, "unset keys keep defaults")
}
