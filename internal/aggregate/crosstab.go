package aggregate

import (
	"sort"
	"time"

	"sms-campaign-analysis/internal/dataset"
)

// CrossTab is a date x dimension revenue matrix. Every (date, group) cell is
// present; combinations with no records hold an exact zero rather than being
// omitted, so downstream consumers never see ragged rows.
type CrossTab struct {
	Dimension dataset.Dimension
	Dates     []time.Time
	Groups    []string
	Revenue   [][]dataset.Money // indexed [date][group]
}

// BuildCrossTab cross-tabulates revenue by date and the given dimension.
func BuildCrossTab(records []dataset.EnrichedRecord, dim dataset.Dimension) CrossTab {
	type cell struct {
		date  time.Time
		group string
	}

	sums := make(map[cell]dataset.Money)
	dateSeen := make(map[time.Time]bool)
	groupSeen := make(map[string]bool)
	for _, rec := range records {
		c := cell{date: rec.Date, group: rec.DimensionValue(dim)}
		sums[c] = sums[c].Add(rec.Revenue)
		dateSeen[c.date] = true
		groupSeen[c.group] = true
	}

	ct := CrossTab{Dimension: dim}
	for date := range dateSeen {
		ct.Dates = append(ct.Dates, date)
	}
	sort.Slice(ct.Dates, func(i, j int) bool { return ct.Dates[i].Before(ct.Dates[j]) })
	for group := range groupSeen {
		ct.Groups = append(ct.Groups, group)
	}
	sort.Strings(ct.Groups)

	ct.Revenue = make([][]dataset.Money, len(ct.Dates))
	for i, date := range ct.Dates {
		row := make([]dataset.Money, len(ct.Groups))
		for j, group := range ct.Groups {
			row[j] = sums[cell{date: date, group: group}]
		}
		ct.Revenue[i] = row
	}
	return ct
}
