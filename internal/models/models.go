package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar day with no time-of-day component. It marshals as
// "2006-01-02" and is always anchored at UTC midnight.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("bad date %q: %w", s, err)
	}
	return Date{t}, nil
}

func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

func (d Date) String() string { return d.Format("2006-01-02") }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeFilter selects the trailing window for reports and charts.
type TimeFilter string

const (
	Filter7d  TimeFilter = "7d"
	Filter30d TimeFilter = "30d"
	Filter90d TimeFilter = "90d"
	Filter1y  TimeFilter = "1y"
	FilterAll TimeFilter = "all"
)

// ParseTimeFilter falls back to 30d for anything it does not recognize.
func ParseTimeFilter(s string) TimeFilter {
	switch TimeFilter(s) {
	case Filter7d, Filter30d, Filter90d, Filter1y, FilterAll:
		return TimeFilter(s)
	}
	return Filter30d
}

// Days returns the trailing window length, or 0 for the all filter.
func (f TimeFilter) Days() int {
	switch f {
	case Filter7d:
		return 7
	case Filter30d:
		return 30
	case Filter90d:
		return 90
	case Filter1y:
		return 365
	}
	return 0
}

// ROIRecord is one logged cost/revenue/leads entry. Records are immutable
// once created; the only destructive operation is a bulk clear.
type ROIRecord struct {
	ID             string    `json:"id"`
	Date           Date      `json:"date"`
	Costs          float64   `json:"costs"`
	Revenue        float64   `json:"revenue"`
	AutomationTool string    `json:"automationTool"`
	LeadsGenerated int       `json:"leadsGenerated"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ROIReport is a derived snapshot, recomputed on demand and never stored.
type ROIReport struct {
	TotalROI           float64    `json:"totalROI"`
	ROIPercentage      float64    `json:"roiPercentage"`
	PaybackPeriod      float64    `json:"paybackPeriod"`
	TotalCosts         float64    `json:"totalCosts"`
	TotalRevenue       float64    `json:"totalRevenue"`
	NetProfit          float64    `json:"netProfit"`
	CostPerAcquisition float64    `json:"costPerAcquisition"`
	RevenueGrowthRate  float64    `json:"revenueGrowthRate"`
	Period             TimeFilter `json:"period"`
	GeneratedAt        time.Time  `json:"generatedAt"`
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Category string

const (
	CategoryCostReduction   Category = "cost_reduction"
	CategoryRevenueIncrease Category = "revenue_increase"
	CategoryEfficiency      Category = "efficiency"
	CategoryAutomation      Category = "automation"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type OptimizationRecommendation struct {
	ID                       string     `json:"id"`
	Title                    string     `json:"title"`
	Description              string     `json:"description"`
	Priority                 Priority   `json:"priority"`
	Category                 Category   `json:"category"`
	EstimatedImpact          float64    `json:"estimatedImpact"`
	ActionItems              []string   `json:"actionItems"`
	ImplementationDifficulty Difficulty `json:"implementationDifficulty"`
}

type ChartDataPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Label string  `json:"label,omitempty"`
}

type ToolSummary struct {
	Tool           string  `json:"tool"`
	TotalCosts     float64 `json:"totalCosts"`
	TotalRevenue   float64 `json:"totalRevenue"`
	ROI            float64 `json:"roi"`
	LeadsGenerated int     `json:"leadsGenerated"`
}
