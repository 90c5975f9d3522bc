/*
stats.go - Aggregate sales statistics

PURPOSE:
  Groups selling-rate totals for the supervisor dashboard: by region, by
  agent, by month, and by service, over an optionally filtered report set.
  Pure data-shuffling over the in-memory slice; no invariants here beyond
  lenient amount parsing.
*/
package booking

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Date-range presets accepted by StatsFilter.
const (
	RangeAll       = "all"
	RangeThisMonth = "thisMonth"
	RangeLastMonth = "lastMonth"
	RangeThisYear  = "thisYear"
)

// StatsFilter narrows the report set before aggregation.
type StatsFilter struct {
	DateRange string // one of the Range* presets; empty means all
	Region    string
	Agent     string
	Service   string
}

// StatPoint is one bar/slice of a grouped total.
type StatPoint struct {
	Name  string
	Value decimal.Decimal
}

// Statistics holds the dashboard aggregates. SalesByMonth is chronological;
// the other groupings are sorted by name for stable output.
type Statistics struct {
	SalesByRegion  []StatPoint
	SalesByAgent   []StatPoint
	SalesByMonth   []StatPoint
	SalesByService []StatPoint
}

// CalculateStatistics aggregates selling-rate totals over the reports
// passing the filter, evaluated relative to now.
func CalculateStatistics(reports []Report, f StatsFilter, now time.Time) Statistics {
	byRegion := map[string]decimal.Decimal{}
	byAgent := map[string]decimal.Decimal{}
	byMonth := map[string]decimal.Decimal{}
	byService := map[string]decimal.Decimal{}

	for _, r := range reports {
		if !f.matches(&r, now) {
			continue
		}
		rate := r.SellingRateAmount()
		byRegion[r.Region] = byRegion[r.Region].Add(rate)
		byAgent[r.AgentName] = byAgent[r.AgentName].Add(rate)
		byService[r.Service] = byService[r.Service].Add(rate)
		byMonth[monthKey(r.Timestamp)] = byMonth[monthKey(r.Timestamp)].Add(rate)
	}

	return Statistics{
		SalesByRegion:  sortedPoints(byRegion),
		SalesByAgent:   sortedPoints(byAgent),
		SalesByMonth:   chronologicalPoints(byMonth),
		SalesByService: sortedPoints(byService),
	}
}

func (f StatsFilter) matches(r *Report, now time.Time) bool {
	switch f.DateRange {
	case RangeThisMonth:
		if r.Timestamp.Month() != now.Month() || r.Timestamp.Year() != now.Year() {
			return false
		}
	case RangeLastMonth:
		last := now.AddDate(0, -1, -now.Day()+1) // first day of previous month
		if r.Timestamp.Month() != last.Month() || r.Timestamp.Year() != last.Year() {
			return false
		}
	case RangeThisYear:
		if r.Timestamp.Year() != now.Year() {
			return false
		}
	}
	if f.Region != "" && r.Region != f.Region {
		return false
	}
	if f.Agent != "" && r.AgentName != f.Agent {
		return false
	}
	if f.Service != "" && r.Service != f.Service {
		return false
	}
	return true
}

// monthKey renders a timestamp's month bucket as M/YYYY.
func monthKey(t time.Time) string {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format("1/2006")
}

func sortedPoints(m map[string]decimal.Decimal) []StatPoint {
	points := make([]StatPoint, 0, len(m))
	for name, value := range m {
		points = append(points, StatPoint{Name: name, Value: value})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Name < points[j].Name })
	return points
}

func chronologicalPoints(m map[string]decimal.Decimal) []StatPoint {
	points := make([]StatPoint, 0, len(m))
	for name, value := range m {
		points = append(points, StatPoint{Name: name, Value: value})
	}
	sort.Slice(points, func(i, j int) bool {
		ti, _ := time.Parse("1/2006", points[i].Name)
		tj, _ := time.Parse("1/2006", points[j].Name)
		return ti.Before(tj)
	})
	return points
}
