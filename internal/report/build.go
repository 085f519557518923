package report

import (
	"fmt"

	"sms-campaign-analysis/internal/aggregate"
	"sms-campaign-analysis/internal/decompose"
	"sms-campaign-analysis/internal/describe"
	"sms-campaign-analysis/internal/regress"
)

const dateLayout = "2006-01-02"

// DailyTable exports the daily aggregate; the renderer builds its
// time-series charts from this.
func DailyTable(daily []aggregate.Daily) Table {
	t := Table{
		Name: "daily_totals",
		Columns: []string{
			"Date", "Revenue", "Sent", "Delivered", "Clicks", "Unique_Clicks",
			"Bounces", "Refusals", "Delivery_Rate", "CTR", "Rev_per_Sent",
			"Rev_per_Click", "DayNum",
		},
	}
	for _, d := range daily {
		t.AddRow(
			d.Date.Format(dateLayout),
			d.Revenue.String(),
			formatInt(d.Sent),
			formatInt(d.Delivered),
			formatInt(d.Clicks),
			formatInt(d.UniqueClicks),
			formatInt(d.Bounces),
			formatInt(d.Refusals),
			formatRatio(d.DeliveryRate),
			formatRatio(d.CTR),
			formatRatio(d.RevPerSent),
			formatFloat(d.RevPerClick),
			fmt.Sprintf("%d", d.DayNum),
		)
	}
	return t
}

// ComparisonTable exports the pre/post descriptive comparison.
func ComparisonTable(rows []describe.Comparison) Table {
	t := Table{
		Name:    "descriptive_comparison",
		Columns: []string{"Metric", "Pre_Mean", "Post_Mean", "Pct_Change"},
	}
	for _, row := range rows {
		t.AddRow(row.Metric, formatRatio(row.PreMean), formatRatio(row.PostMean), formatPct(row.PctChange))
	}
	return t
}

// DecompositionTable exports both decompositions of the revenue change.
func DecompositionTable(r decompose.Result) Table {
	t := Table{
		Name:    "decomposition_summary",
		Columns: []string{"Quantity", "Value", "Share_of_Change"},
	}
	t.AddRow("Pre avg daily revenue", formatFloat(r.PreAvgRevenue), "")
	t.AddRow("Post avg daily revenue", formatFloat(r.PostAvgRevenue), "")
	t.AddRow("Total change per day", formatFloat(r.TotalChange), formatPct(r.PctChange))
	t.AddRow("Pre avg daily sent", formatFloat(r.PreAvgSent), "")
	t.AddRow("Post avg daily sent", formatFloat(r.PostAvgSent), "")
	t.AddRow("Pre RPS", formatFloat(r.PreRPS), "")
	t.AddRow("Post RPS", formatFloat(r.PostRPS), "")
	for _, e := range []decompose.Effect{r.Volume, r.Efficiency, r.Retired, r.Active} {
		t.AddRow(e.Name+" effect", formatFloat(e.PerDay), formatPct(e.Share))
	}
	return t
}

// ModelTable exports one fitted model's coefficient table.
func ModelTable(m *regress.Model) Table {
	t := Table{
		Name:    "model_" + m.Name,
		Columns: []string{"Variable", "Coefficient", "Std_Error", "t_stat", "p_value", "Sig"},
	}
	for _, c := range m.Coefficients {
		t.AddRow(c.Name, formatFloat(c.Estimate), formatFloat(c.StdErr),
			formatFloat(c.TStat), formatFloat(c.PValue), c.Sig)
	}
	return t
}

// CrossTabTable exports a date x dimension revenue breakdown.
func CrossTabTable(ct aggregate.CrossTab) Table {
	t := Table{
		Name:    "revenue_by_" + string(ct.Dimension),
		Columns: append([]string{"Date"}, ct.Groups...),
	}
	for i, date := range ct.Dates {
		row := make([]string, 0, len(ct.Groups)+1)
		row = append(row, date.Format(dateLayout))
		for _, m := range ct.Revenue[i] {
			row = append(row, m.String())
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
