package regress

import (
	"sort"
	"time"

	"sms-campaign-analysis/internal/aggregate"
	"sms-campaign-analysis/internal/dataset"
)

const (
	DailyModelName = "daily_revenue_trend"
	RowModelName   = "row_level_revenue"
)

// DailyModel fits daily revenue against the linear time trend and the
// post-cutoff indicator.
func DailyModel(daily []aggregate.Daily, cutoff time.Time) (*Model, error) {
	n := len(daily)
	y := make([]float64, n)
	dayNum := make([]float64, n)
	post := make([]float64, n)
	for i, d := range daily {
		y[i] = d.Revenue.Float64()
		dayNum[i] = float64(d.DayNum)
		post[i] = indicator(!d.Date.Before(cutoff))
	}
	return Fit(DailyModelName, y, []Column{
		{Name: "DayNum", Data: dayNum},
		{Name: "Post_Decline", Data: post},
	})
}

// RowModel fits row-level revenue against operational counts, the time
// trend, the post-cutoff indicator, and one-hot-encoded carrier, segment and
// phone-group factors. Delivered is excluded on purpose: it tracks Sent
// almost one-for-one and would make the design matrix near-singular. Each
// categorical drops its first sorted level as the reference.
func RowModel(records []dataset.EnrichedRecord, cutoff time.Time) (*Model, error) {
	n := len(records)
	y := make([]float64, n)
	sent := make([]float64, n)
	clicks := make([]float64, n)
	bounces := make([]float64, n)
	refusals := make([]float64, n)
	dayNum := make([]float64, n)
	post := make([]float64, n)
	carriers := make([]string, n)
	segments := make([]string, n)
	phoneGroups := make([]string, n)

	for i, rec := range records {
		y[i] = rec.Revenue.Float64()
		sent[i] = float64(rec.Sent)
		clicks[i] = float64(rec.Clicks)
		bounces[i] = float64(rec.Bounces)
		refusals[i] = float64(rec.Refusals)
		dayNum[i] = float64(rec.DayNum)
		post[i] = indicator(!rec.Date.Before(cutoff))
		carriers[i] = rec.CarrierGroup
		segments[i] = rec.Segment
		phoneGroups[i] = rec.PhoneGroup
	}

	cols := []Column{
		{Name: "Sent", Data: sent},
		{Name: "Clicks", Data: clicks},
		{Name: "Bounces", Data: bounces},
		{Name: "Refusals", Data: refusals},
		{Name: "DayNum", Data: dayNum},
		{Name: "Post_Decline", Data: post},
	}
	cols = append(cols, OneHot(carriers, "Carrier")...)
	cols = append(cols, OneHot(segments, "Seg")...)
	cols = append(cols, OneHot(phoneGroups, "PG")...)

	return Fit(RowModelName, y, cols)
}

// OneHot encodes a categorical as indicator columns named prefix_level. The
// first sorted level is dropped as the reference so the encoding does not
// collide with the intercept.
func OneHot(values []string, prefix string) []Column {
	seen := make(map[string]bool)
	var levels []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}
	sort.Strings(levels)
	if len(levels) == 0 {
		return nil
	}

	var cols []Column
	for _, level := range levels[1:] {
		data := make([]float64, len(values))
		for i, v := range values {
			data[i] = indicator(v == level)
		}
		cols = append(cols, Column{Name: prefix + "_" + level, Data: data})
	}
	return cols
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
