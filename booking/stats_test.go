package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveldesk/sales-engine/booking"
)

func statsRecord(agent, region, service, selling string, ts time.Time) booking.Report {
	r := saleRecord("BK-"+agent+ts.Format("20060102"), selling, ts)
	r.AgentName = agent
	r.Region = region
	r.Service = service
	return r
}

func TestCalculateStatistics_GroupsSellingRateTotals(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	reports := []booking.Report{
		statsRecord("Remon", "Egypt", "Hotel", "1000", now),
		statsRecord("Remon", "Egypt", "Flight", "500", now),
		statsRecord("Sarah Johnson", "UAE", "Hotel", "2000", now),
	}

	stats := booking.CalculateStatistics(reports, booking.StatsFilter{}, now)

	require.Len(t, stats.SalesByRegion, 2)
	assert.Equal(t, "Egypt", stats.SalesByRegion[0].Name)
	assert.Equal(t, "1500", stats.SalesByRegion[0].Value.String())
	assert.Equal(t, "UAE", stats.SalesByRegion[1].Name)
	assert.Equal(t, "2000", stats.SalesByRegion[1].Value.String())

	require.Len(t, stats.SalesByAgent, 2)
	assert.Equal(t, "1500", stats.SalesByAgent[0].Value.String())

	require.Len(t, stats.SalesByService, 2)
	assert.Equal(t, "Flight", stats.SalesByService[0].Name)
	assert.Equal(t, "500", stats.SalesByService[0].Value.String())
}

func TestCalculateStatistics_MonthsChronological(t *testing.T) {
	// GIVEN: Sales in March, January, and December of the prior year
	// WHEN: Aggregating by month
	// THEN: Buckets come back in calendar order, keyed M/YYYY

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	reports := []booking.Report{
		statsRecord("Remon", "Egypt", "Hotel", "300", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)),
		statsRecord("Remon", "Egypt", "Hotel", "100", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)),
		statsRecord("Remon", "Egypt", "Hotel", "200", time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)),
	}

	stats := booking.CalculateStatistics(reports, booking.StatsFilter{}, now)

	require.Len(t, stats.SalesByMonth, 3)
	assert.Equal(t, "12/2025", stats.SalesByMonth[0].Name)
	assert.Equal(t, "1/2026", stats.SalesByMonth[1].Name)
	assert.Equal(t, "3/2026", stats.SalesByMonth[2].Name)
}

func TestCalculateStatistics_DatePresets(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	thisMonth := statsRecord("Remon", "Egypt", "Hotel", "100", time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC))
	lastMonth := statsRecord("Remon", "Egypt", "Hotel", "200", time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC))
	lastYear := statsRecord("Remon", "Egypt", "Hotel", "400", time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC))
	reports := []booking.Report{thisMonth, lastMonth, lastYear}

	cases := []struct {
		preset string
		total  string
	}{
		{booking.RangeThisMonth, "100"},
		{booking.RangeLastMonth, "200"},
		{booking.RangeThisYear, "300"},
		{booking.RangeAll, "700"},
	}

	for _, tc := range cases {
		stats := booking.CalculateStatistics(reports, booking.StatsFilter{DateRange: tc.preset}, now)
		require.Len(t, stats.SalesByRegion, 1, tc.preset)
		assert.Equal(t, tc.total, stats.SalesByRegion[0].Value.String(), tc.preset)
	}
}

func TestCalculateStatistics_DimensionFilters(t *testing.T) {
	now := time.Now()
	reports := []booking.Report{
		statsRecord("Remon", "Egypt", "Hotel", "100", now),
		statsRecord("Sarah Johnson", "UAE", "Hotel", "200", now),
	}

	stats := booking.CalculateStatistics(reports, booking.StatsFilter{Region: "Egypt"}, now)

	require.Len(t, stats.SalesByAgent, 1)
	assert.Equal(t, "Remon", stats.SalesByAgent[0].Name)
}

func TestCalculateStatistics_UnparsableRateCountsAsZero(t *testing.T) {
	now := time.Now()
	clean := statsRecord("Remon", "Egypt", "Hotel", "100", now)
	garbage := statsRecord("Remon", "Egypt", "Hotel", "n/a", now)

	stats := booking.CalculateStatistics([]booking.Report{clean, garbage}, booking.StatsFilter{}, now)

	require.Len(t, stats.SalesByRegion, 1)
	assert.Equal(t, "100", stats.SalesByRegion[0].Value.String())
}
