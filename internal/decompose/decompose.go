package decompose

import (
	"errors"
	"fmt"
	"time"

	"sms-campaign-analysis/internal/dataset"
)

var ErrEmptyPeriod = errors.New("period contains no records")

// Effect is one named contribution to the pre-to-post change in average
// daily revenue, with its share of the total change. The share is undefined
// when the total change is exactly zero.
type Effect struct {
	Name   string        `json:"name"`
	PerDay float64       `json:"per_day"`
	Share  dataset.Ratio `json:"share_pct"`
}

// Result carries two independent decompositions of the same total change:
// volume vs efficiency, and retired vs active phone groups. Each pair sums
// to TotalChange exactly.
type Result struct {
	PreAvgRevenue  float64       `json:"pre_avg_revenue"`
	PostAvgRevenue float64       `json:"post_avg_revenue"`
	TotalChange    float64       `json:"total_change"`
	PctChange      dataset.Ratio `json:"pct_change"`
	PreAvgSent     float64       `json:"pre_avg_sent"`
	PostAvgSent    float64       `json:"post_avg_sent"`
	PreRPS         float64       `json:"pre_rps"`
	PostRPS        float64       `json:"post_rps"`
	Volume         Effect        `json:"volume"`
	Efficiency     Effect        `json:"efficiency"`
	Retired        Effect        `json:"retired"`
	Active         Effect        `json:"active"`
}

// Decompose attributes the change in average daily revenue across the cutoff.
//
// The volume/efficiency split weights the send-volume delta by the
// pre-period RPS and the RPS delta by the post-period volume. The asymmetry
// is deliberate and carried over from the source analysis; it makes the two
// effects sum to the total change by construction:
//
//	post*postRPS - pre*preRPS = (post-pre)*preRPS + (postRPS-preRPS)*post
//
// The phone-group split partitions the same total along the retired/active
// axis instead.
func Decompose(records []dataset.EnrichedRecord, cutoff time.Time, retired map[int64]bool) (Result, error) {
	var pre, post periodTotals
	for _, rec := range records {
		if rec.Date.Before(cutoff) {
			pre.add(rec, retired)
		} else {
			post.add(rec, retired)
		}
	}

	if pre.days() == 0 {
		return Result{}, fmt.Errorf("pre period: %w", ErrEmptyPeriod)
	}
	if post.days() == 0 {
		return Result{}, fmt.Errorf("post period: %w", ErrEmptyPeriod)
	}
	if pre.sent == 0 {
		return Result{}, errors.New("pre period has zero send volume, RPS undefined")
	}
	if post.sent == 0 {
		return Result{}, errors.New("post period has zero send volume, RPS undefined")
	}

	r := Result{
		PreAvgRevenue:  pre.avgRevenue(),
		PostAvgRevenue: post.avgRevenue(),
		PreAvgSent:     pre.avgSent(),
		PostAvgSent:    post.avgSent(),
	}
	r.TotalChange = r.PostAvgRevenue - r.PreAvgRevenue
	r.PctChange = dataset.NewRatio(r.TotalChange*100, r.PreAvgRevenue)
	r.PreRPS = r.PreAvgRevenue / r.PreAvgSent
	r.PostRPS = r.PostAvgRevenue / r.PostAvgSent

	r.Volume = effect("Volume", (r.PostAvgSent-r.PreAvgSent)*r.PreRPS, r.TotalChange)
	r.Efficiency = effect("Efficiency", (r.PostRPS-r.PreRPS)*r.PostAvgSent, r.TotalChange)

	retiredChange := post.avgRetiredRevenue() - pre.avgRetiredRevenue()
	activeChange := post.avgActiveRevenue() - pre.avgActiveRevenue()
	r.Retired = effect("Retired", retiredChange, r.TotalChange)
	r.Active = effect("Active", activeChange, r.TotalChange)

	return r, nil
}

func effect(name string, perDay, total float64) Effect {
	return Effect{Name: name, PerDay: perDay, Share: dataset.NewRatio(perDay*100, total)}
}

// periodTotals accumulates one period's sums. Revenue is summed exactly and
// converted to float once, at the averaging step.
type periodTotals struct {
	revenue        dataset.Money
	retiredRevenue dataset.Money
	activeRevenue  dataset.Money
	sent           int64
	dates          map[time.Time]bool
}

func (p *periodTotals) add(rec dataset.EnrichedRecord, retired map[int64]bool) {
	if p.dates == nil {
		p.dates = make(map[time.Time]bool)
	}
	p.dates[rec.Date] = true
	p.revenue = p.revenue.Add(rec.Revenue)
	p.sent += rec.Sent
	if retired[rec.Phone] {
		p.retiredRevenue = p.retiredRevenue.Add(rec.Revenue)
	} else {
		p.activeRevenue = p.activeRevenue.Add(rec.Revenue)
	}
}

func (p *periodTotals) days() int { return len(p.dates) }

func (p *periodTotals) avgRevenue() float64 {
	return p.revenue.Float64() / float64(p.days())
}

func (p *periodTotals) avgSent() float64 {
	return float64(p.sent) / float64(p.days())
}

func (p *periodTotals) avgRetiredRevenue() float64 {
	return p.retiredRevenue.Float64() / float64(p.days())
}

func (p *periodTotals) avgActiveRevenue() float64 {
	return p.activeRevenue.Float64() / float64(p.days())
}
