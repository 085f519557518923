package dataset

import (
	"fmt"
	"sort"
	"time"
)

// Params configures filtering and enrichment. The retired phone set is
// incident-specific configuration, so it is passed in rather than baked into
// the logic.
type Params struct {
	ExcludedPhone    int64
	RetiredPhones    []int64
	RetiredGroupName string
	ActiveGroupName  string
}

// Info summarizes the dataset that survived filtering.
type Info struct {
	Rows         int       `json:"rows"`
	DateMin      time.Time `json:"date_min"`
	DateMax      time.Time `json:"date_max"`
	Phones       int       `json:"phones"`
	TotalRevenue Money     `json:"total_revenue"`
}

// Enrich drops rows for the excluded phone and computes every derived field:
// guarded ratios, day index from the minimum surviving date, deterministic
// phone labels, and the retired/active group tag.
func Enrich(records []Record, p Params) ([]EnrichedRecord, Info, error) {
	retiredName := p.RetiredGroupName
	if retiredName == "" {
		retiredName = "Retired"
	}
	activeName := p.ActiveGroupName
	if activeName == "" {
		activeName = "Active"
	}

	kept := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Phone == p.ExcludedPhone {
			continue
		}
		kept = append(kept, rec)
	}
	if len(kept) == 0 {
		return nil, Info{}, fmt.Errorf("no rows remain after excluding phone %d", p.ExcludedPhone)
	}

	labels := phoneLabels(kept)

	retired := make(map[int64]bool, len(p.RetiredPhones))
	for _, phone := range p.RetiredPhones {
		retired[phone] = true
	}

	info := Info{Rows: len(kept), DateMin: kept[0].Date, DateMax: kept[0].Date, Phones: len(labels)}
	for _, rec := range kept {
		if rec.Date.Before(info.DateMin) {
			info.DateMin = rec.Date
		}
		if rec.Date.After(info.DateMax) {
			info.DateMax = rec.Date
		}
		info.TotalRevenue = info.TotalRevenue.Add(rec.Revenue)
	}

	enriched := make([]EnrichedRecord, len(kept))
	for i, rec := range kept {
		group := activeName
		if retired[rec.Phone] {
			group = retiredName
		}
		enriched[i] = EnrichedRecord{
			Record:       rec,
			DeliveryRate: NewRatio(float64(rec.Delivered), float64(rec.Sent)),
			CTR:          NewRatio(float64(rec.Clicks), float64(rec.Sent)),
			RevPerSent:   NewRatio(rec.Revenue.Float64(), float64(rec.Sent)),
			DayNum:       DayIndex(rec.Date, info.DateMin),
			PhoneLabel:   labels[rec.Phone],
			PhoneGroup:   group,
		}
	}
	return enriched, info, nil
}

// DayIndex is the whole-day offset of date from the dataset's first date.
func DayIndex(date, min time.Time) int {
	return int(date.Sub(min).Hours() / 24)
}

// phoneLabels maps each distinct phone identifier to "Phone_N", assigned in
// ascending numeric order. The mapping is a bijection and stable across runs
// on the same input.
func phoneLabels(records []Record) map[int64]string {
	seen := make(map[int64]bool)
	var phones []int64
	for _, rec := range records {
		if !seen[rec.Phone] {
			seen[rec.Phone] = true
			phones = append(phones, rec.Phone)
		}
	}
	sort.Slice(phones, func(i, j int) bool { return phones[i] < phones[j] })

	labels := make(map[int64]string, len(phones))
	for i, phone := range phones {
		labels[phone] = fmt.Sprintf("Phone_%d", i+1)
	}
	return labels
}
