/*
filter.go - Report set filtering

PURPOSE:
  Narrows a report set by the criteria the advanced-filter and export
  screens offer. All filters are conjunctive; an unset field never excludes
  anything.

MATCH RULES:
  - Dates bound the record's creation timestamp; the end date is inclusive
    through its last instant.
  - Customer name is a case-insensitive substring match; every other string
    field is an exact match.
  - Amount bounds apply to SellingRate. Records whose selling rate does not
    parse are excluded whenever an amount bound is set.
*/
package booking

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Filter is a conjunctive set of report criteria. Zero values mean "any".
type Filter struct {
	StartDate string // YYYY-MM-DD, inclusive
	EndDate   string // YYYY-MM-DD, inclusive through end of day

	BookingType   string
	Region        string
	AgentName     string
	Service       string
	Provider      string
	Destination   string
	CustomerName  string // substring, case-insensitive
	PaymentMethod string
	Installment   string // "Yes" / "No"

	MinAmount string // selling-rate lower bound
	MaxAmount string // selling-rate upper bound
}

// Apply returns the records matching every set criterion, preserving order.
func (f Filter) Apply(reports []Report) []Report {
	start, hasStart := parseDay(f.StartDate)
	end, hasEnd := parseDay(f.EndDate)
	if hasEnd {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}

	minAmt, hasMin := parseBound(f.MinAmount)
	maxAmt, hasMax := parseBound(f.MaxAmount)

	matched := make([]Report, 0, len(reports))
	for _, r := range reports {
		if hasStart && r.Timestamp.Before(start) {
			continue
		}
		if hasEnd && r.Timestamp.After(end) {
			continue
		}
		if f.BookingType != "" && r.BookingType != f.BookingType {
			continue
		}
		if f.Region != "" && r.Region != f.Region {
			continue
		}
		if f.AgentName != "" && r.AgentName != f.AgentName {
			continue
		}
		if f.Service != "" && r.Service != f.Service {
			continue
		}
		if f.Provider != "" && r.Provider != f.Provider {
			continue
		}
		if f.Destination != "" && r.Destination != f.Destination {
			continue
		}
		if f.CustomerName != "" &&
			!strings.Contains(strings.ToLower(r.CustomerName), strings.ToLower(f.CustomerName)) {
			continue
		}
		if f.PaymentMethod != "" && r.PaymentMethod != f.PaymentMethod {
			continue
		}
		if f.Installment != "" && r.Installment != f.Installment {
			continue
		}
		if hasMin || hasMax {
			rate, err := decimal.NewFromString(r.SellingRate)
			if err != nil {
				continue
			}
			if hasMin && rate.LessThan(minAmt) {
				continue
			}
			if hasMax && rate.GreaterThan(maxAmt) {
				continue
			}
		}
		matched = append(matched, r)
	}
	return matched
}

func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func parseBound(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
