package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sms-campaign-analysis/internal/aggregate"
	"sms-campaign-analysis/internal/dataset"
	"sms-campaign-analysis/internal/decompose"
	"sms-campaign-analysis/internal/describe"
	"sms-campaign-analysis/internal/regress"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComparisonTable(t *testing.T) {
	table := ComparisonTable([]describe.Comparison{
		{
			Metric:    "Revenue",
			PreMean:   dataset.Ratio{Float64: 150, Valid: true},
			PostMean:  dataset.Ratio{Float64: 75, Valid: true},
			PctChange: dataset.Ratio{Float64: -50, Valid: true},
		},
		{Metric: "CTR"}, // everything undefined
	})

	assert.Equal(t, "descriptive_comparison", table.Name)
	assert.Equal(t, []string{"Metric", "Pre_Mean", "Post_Mean", "Pct_Change"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Revenue", "150.0000", "75.0000", "-50.0%"}, table.Rows[0])
	// Undefined values render as the marker, never as Inf or NaN.
	assert.Equal(t, []string{"CTR", Undefined, Undefined, Undefined}, table.Rows[1])
}

func TestDecompositionTable(t *testing.T) {
	r := decompose.Result{
		PreAvgRevenue:  200,
		PostAvgRevenue: 120,
		TotalChange:    -80,
		PctChange:      dataset.Ratio{Float64: -40, Valid: true},
		Volume:         decompose.Effect{Name: "Volume", PerDay: -60, Share: dataset.Ratio{Float64: 75, Valid: true}},
		Efficiency:     decompose.Effect{Name: "Efficiency", PerDay: -20, Share: dataset.Ratio{Float64: 25, Valid: true}},
		Retired:        decompose.Effect{Name: "Retired", PerDay: -70, Share: dataset.Ratio{Float64: 87.5, Valid: true}},
		Active:         decompose.Effect{Name: "Active", PerDay: -10, Share: dataset.Ratio{Float64: 12.5, Valid: true}},
	}

	table := DecompositionTable(r)
	assert.Equal(t, "decomposition_summary", table.Name)
	require.Len(t, table.Rows, 11)
	assert.Equal(t, []string{"Total change per day", "-80.0000", "-40.0%"}, table.Rows[2])
	assert.Equal(t, []string{"Volume effect", "-60.0000", "+75.0%"}, table.Rows[7])
	assert.Equal(t, []string{"Active effect", "-10.0000", "+12.5%"}, table.Rows[10])
}

func TestModelTable(t *testing.T) {
	m := &regress.Model{
		Name: "daily_revenue_trend",
		Coefficients: []regress.Coefficient{
			{Name: "const", Estimate: 101.5, StdErr: 2.1, TStat: 48.33, PValue: 0.00001, Sig: "***"},
			{Name: "Post_Decline", Estimate: -42.5, StdErr: 3.4, TStat: -12.5, PValue: 0.0003, Sig: "***"},
		},
	}

	table := ModelTable(m)
	assert.Equal(t, "model_daily_revenue_trend", table.Name)
	assert.Equal(t, []string{"Variable", "Coefficient", "Std_Error", "t_stat", "p_value", "Sig"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Post_Decline", table.Rows[1][0])
	assert.Equal(t, "***", table.Rows[1][5])
}

func TestDailyAndCrossTabTables(t *testing.T) {
	daily := []aggregate.Daily{{
		Date:         day("2026-01-27"),
		Revenue:      dataset.MoneyFromFloat(12.5),
		Sent:         1000,
		Delivered:    950,
		DeliveryRate: dataset.NewRatio(950, 1000),
		CTR:          dataset.NewRatio(40, 1000),
		RevPerSent:   dataset.NewRatio(12.5, 1000),
		RevPerClick:  0.3125,
	}}

	dt := DailyTable(daily)
	assert.Equal(t, "daily_totals", dt.Name)
	require.Len(t, dt.Rows, 1)
	assert.Equal(t, "2026-01-27", dt.Rows[0][0])
	assert.Equal(t, "12.50", dt.Rows[0][1])
	assert.Equal(t, "0.9500", dt.Rows[0][8])

	ct := aggregate.CrossTab{
		Dimension: dataset.ByCarrier,
		Dates:     []time.Time{day("2026-01-27")},
		Groups:    []string{"AT&T", "T-Mobile"},
		Revenue:   [][]dataset.Money{{dataset.MoneyFromFloat(1), dataset.MoneyFromFloat(2.5)}},
	}
	ctt := CrossTabTable(ct)
	assert.Equal(t, "revenue_by_carrier", ctt.Name)
	assert.Equal(t, []string{"Date", "AT&T", "T-Mobile"}, ctt.Columns)
	require.Len(t, ctt.Rows, 1)
	assert.Equal(t, []string{"2026-01-27", "1.00", "2.50"}, ctt.Rows[0])
}
