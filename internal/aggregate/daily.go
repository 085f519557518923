package aggregate

import (
	"sort"
	"time"

	"sms-campaign-analysis/internal/dataset"
)

// Daily is one row per distinct date with counters summed across all records
// for that date. Rates are computed from the sums, not by averaging per-row
// rates, so high-volume rows carry their proper weight.
type Daily struct {
	Date         time.Time
	Revenue      dataset.Money
	Sent         int64
	Delivered    int64
	Clicks       int64
	UniqueClicks int64
	Bounces      int64
	Refusals     int64
	DeliveryRate dataset.Ratio
	CTR          dataset.Ratio
	RevPerSent   dataset.Ratio
	RevPerClick  float64
	DayNum       int
}

// BuildDaily aggregates enriched records into the daily table, ordered by
// date ascending. Date is the unique key.
//
// RevPerClick substitutes a divisor of one on zero-click days, so it reads as
// raw revenue there. That is a documented approximation carried over from the
// source analysis, deliberately different from the undefined-marker handling
// of the sent-based rates.
func BuildDaily(records []dataset.EnrichedRecord) []Daily {
	byDate := make(map[time.Time]*Daily)
	for _, rec := range records {
		d, ok := byDate[rec.Date]
		if !ok {
			d = &Daily{Date: rec.Date}
			byDate[rec.Date] = d
		}
		d.Revenue = d.Revenue.Add(rec.Revenue)
		d.Sent += rec.Sent
		d.Delivered += rec.Delivered
		d.Clicks += rec.Clicks
		d.UniqueClicks += rec.UniqueClicks
		d.Bounces += rec.Bounces
		d.Refusals += rec.Refusals
	}

	daily := make([]Daily, 0, len(byDate))
	for _, d := range byDate {
		daily = append(daily, *d)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date.Before(daily[j].Date) })
	if len(daily) == 0 {
		return daily
	}

	min := daily[0].Date
	for i := range daily {
		d := &daily[i]
		revenue := d.Revenue.Float64()
		d.DeliveryRate = dataset.NewRatio(float64(d.Delivered), float64(d.Sent))
		d.CTR = dataset.NewRatio(float64(d.Clicks), float64(d.Sent))
		d.RevPerSent = dataset.NewRatio(revenue, float64(d.Sent))
		clicks := d.Clicks
		if clicks == 0 {
			clicks = 1
		}
		d.RevPerClick = revenue / float64(clicks)
		d.DayNum = dataset.DayIndex(d.Date, min)
	}
	return daily
}
