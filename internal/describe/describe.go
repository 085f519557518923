package describe

import (
	"time"

	"github.com/montanaflynn/stats"

	"sms-campaign-analysis/internal/aggregate"
	"sms-campaign-analysis/internal/dataset"
)

// Split partitions the daily table at the cutoff: pre holds days strictly
// before it, post holds the cutoff day and everything after.
func Split(daily []aggregate.Daily, cutoff time.Time) (pre, post []aggregate.Daily) {
	for _, d := range daily {
		if d.Date.Before(cutoff) {
			pre = append(pre, d)
		} else {
			post = append(post, d)
		}
	}
	return pre, post
}

// Comparison is one row of the pre/post comparison table. Means of rate
// metrics average only the days on which the rate is defined; a mean over no
// qualifying days is undefined, as is the percent change when the pre-period
// mean is exactly zero.
type Comparison struct {
	Metric    string        `json:"metric"`
	PreMean   dataset.Ratio `json:"pre_mean"`
	PostMean  dataset.Ratio `json:"post_mean"`
	PctChange dataset.Ratio `json:"pct_change"`
}

type metric struct {
	name  string
	value func(aggregate.Daily) dataset.Ratio
}

var metrics = []metric{
	{"Revenue", func(d aggregate.Daily) dataset.Ratio {
		return dataset.Ratio{Float64: d.Revenue.Float64(), Valid: true}
	}},
	{"Sent", countMetric(func(d aggregate.Daily) int64 { return d.Sent })},
	{"Delivered", countMetric(func(d aggregate.Daily) int64 { return d.Delivered })},
	{"Clicks", countMetric(func(d aggregate.Daily) int64 { return d.Clicks })},
	{"Delivery_Rate", func(d aggregate.Daily) dataset.Ratio { return d.DeliveryRate }},
	{"CTR", func(d aggregate.Daily) dataset.Ratio { return d.CTR }},
	{"Rev_per_Sent", func(d aggregate.Daily) dataset.Ratio { return d.RevPerSent }},
}

func countMetric(get func(aggregate.Daily) int64) func(aggregate.Daily) dataset.Ratio {
	return func(d aggregate.Daily) dataset.Ratio {
		return dataset.Ratio{Float64: float64(get(d)), Valid: true}
	}
}

// Compare builds the pre-mean / post-mean / percent-change table for the
// metrics surfaced in the report.
func Compare(pre, post []aggregate.Daily) []Comparison {
	out := make([]Comparison, 0, len(metrics))
	for _, m := range metrics {
		preMean := meanOf(pre, m.value)
		postMean := meanOf(post, m.value)
		out = append(out, Comparison{
			Metric:    m.name,
			PreMean:   preMean,
			PostMean:  postMean,
			PctChange: pctChange(preMean, postMean),
		})
	}
	return out
}

func meanOf(days []aggregate.Daily, value func(aggregate.Daily) dataset.Ratio) dataset.Ratio {
	var vals []float64
	for _, d := range days {
		if v := value(d); v.Valid {
			vals = append(vals, v.Float64)
		}
	}
	if len(vals) == 0 {
		return dataset.Ratio{}
	}
	mean, err := stats.Mean(vals)
	if err != nil {
		return dataset.Ratio{}
	}
	return dataset.Ratio{Float64: mean, Valid: true}
}

func pctChange(pre, post dataset.Ratio) dataset.Ratio {
	if !pre.Valid || !post.Valid || pre.Float64 == 0 {
		return dataset.Ratio{}
	}
	return dataset.Ratio{Float64: (post.Float64 - pre.Float64) / pre.Float64 * 100, Valid: true}
}
