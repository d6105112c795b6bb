// Package timeseries buckets records into day/week/month intervals for
// charting and aggregates per-tool totals.
package timeseries

import (
	"math"
	"sort"
	"time"

	"roipulse/internal/models"
)

// ValueKey selects which per-record number feeds the chart.
type ValueKey string

const (
	ValueRevenue ValueKey = "revenue"
	ValueCosts   ValueKey = "costs"
	ValueROI     ValueKey = "roi"
)

func ParseValueKey(s string) (ValueKey, bool) {
	switch ValueKey(s) {
	case ValueRevenue, ValueCosts, ValueROI:
		return ValueKey(s), true
	}
	return "", false
}

type granularity int

const (
	byDay granularity = iota
	byWeek
	byMonth
)

const (
	dayLabel   = "Jan 02"
	monthLabel = "Jan 2006"
)

// buckets keeps label -> values with stable insertion order, so chart output
// follows the order the intervals were built in.
type buckets struct {
	order  []string
	values map[string][]float64
}

func newBuckets() *buckets {
	return &buckets{values: make(map[string][]float64)}
}

func (b *buckets) ensure(label string) {
	if _, ok := b.values[label]; !ok {
		b.order = append(b.order, label)
		b.values[label] = nil
	}
}

func (b *buckets) add(label string, v float64) {
	b.ensure(label)
	b.values[label] = append(b.values[label], v)
}

// Prepare builds chart points for the window implied by the filter, anchored
// at now. Day buckets for 7d/30d, week buckets for 90d, month buckets for
// 1y; the all filter starts at the earliest record and picks day, week, or
// month by the actual span (<=60d, <=180d, else month). Buckets with no
// records are emitted with value 0; bucket means are rounded to 2 decimals.
func Prepare(records []models.ROIRecord, filter models.TimeFilter, key ValueKey, now time.Time) []models.ChartDataPoint {
	if len(records) == 0 {
		return []models.ChartDataPoint{}
	}

	var start time.Time
	var group granularity

	switch filter {
	case models.Filter7d:
		start, group = now.AddDate(0, 0, -7), byDay
	case models.Filter30d:
		start, group = now.AddDate(0, 0, -30), byDay
	case models.Filter90d:
		start, group = now.AddDate(0, 0, -90), byWeek
	case models.Filter1y:
		start, group = now.AddDate(0, 0, -365), byMonth
	case models.FilterAll:
		earliest := records[0].Date.Time
		for _, r := range records[1:] {
			if r.Date.Before(earliest) {
				earliest = r.Date.Time
			}
		}
		start = earliest
		switch span := int(now.Sub(start).Hours() / 24); {
		case span > 180:
			group = byMonth
		case span > 60:
			group = byWeek
		default:
			group = byDay
		}
	default:
		start, group = now.AddDate(0, 0, -30), byDay
	}

	filtered := make([]models.ROIRecord, 0, len(records))
	for _, r := range records {
		if !r.Date.Before(start) && !r.Date.After(now) {
			filtered = append(filtered, r)
		}
	}

	var intervals []time.Time
	first := truncateDay(start)
	switch group {
	case byWeek:
		// Week boundaries anchor on the Sunday on or before the window start.
		first = first.AddDate(0, 0, -int(first.Weekday()))
	case byMonth:
		first = time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	step := func(t time.Time) time.Time {
		switch group {
		case byWeek:
			return t.AddDate(0, 0, 7)
		case byMonth:
			return t.AddDate(0, 1, 0)
		default:
			return t.AddDate(0, 0, 1)
		}
	}
	for t := first; !t.After(now); t = step(t) {
		intervals = append(intervals, t)
	}

	bks := newBuckets()
	for _, iv := range intervals {
		bks.ensure(label(iv, group))
	}

	for _, r := range filtered {
		var lbl string
		switch group {
		case byMonth:
			lbl = r.Date.Format(monthLabel)
		case byWeek:
			// First 7-day interval containing the record, by linear scan.
			lbl = r.Date.Format(dayLabel)
			for _, iv := range intervals {
				if !r.Date.Before(iv) && r.Date.Before(iv.AddDate(0, 0, 7)) {
					lbl = iv.Format(dayLabel)
					break
				}
			}
		default:
			lbl = r.Date.Format(dayLabel)
		}

		switch key {
		case ValueROI:
			bks.add(lbl, r.Revenue-r.Costs)
		case ValueCosts:
			bks.add(lbl, r.Costs)
		default:
			bks.add(lbl, r.Revenue)
		}
	}

	points := make([]models.ChartDataPoint, 0, len(bks.order))
	for _, lbl := range bks.order {
		vals := bks.values[lbl]
		var avg float64
		if len(vals) > 0 {
			for _, v := range vals {
				avg += v
			}
			avg /= float64(len(vals))
		}
		points = append(points, models.ChartDataPoint{
			Date:  lbl,
			Value: round2(avg),
			Label: lbl,
		})
	}
	return points
}

// AggregateByTool group-sums per distinct tool, sorted descending by roi
// with ties kept in first-seen order.
func AggregateByTool(records []models.ROIRecord) []models.ToolSummary {
	index := make(map[string]int)
	out := []models.ToolSummary{}
	for _, r := range records {
		i, ok := index[r.AutomationTool]
		if !ok {
			i = len(out)
			index[r.AutomationTool] = i
			out = append(out, models.ToolSummary{Tool: r.AutomationTool})
		}
		out[i].TotalCosts += r.Costs
		out[i].TotalRevenue += r.Revenue
		out[i].LeadsGenerated += r.LeadsGenerated
	}
	for i := range out {
		out[i].ROI = out[i].TotalRevenue - out[i].TotalCosts
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ROI > out[j].ROI })
	return out
}

func label(t time.Time, g granularity) string {
	if g == byMonth {
		return t.Format(monthLabel)
	}
	return t.Format(dayLabel)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
