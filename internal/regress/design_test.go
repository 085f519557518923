package regress

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sms-campaign-analysis/internal/aggregate"
	"sms-campaign-analysis/internal/dataset"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDailyModel(t *testing.T) {
	cutoff := day("2026-02-05")
	var daily []aggregate.Daily
	base := day("2026-02-01")
	revenues := []float64{100, 104, 99, 103, 60, 58, 63, 55}
	for i, rev := range revenues {
		daily = append(daily, aggregate.Daily{
			Date:    base.AddDate(0, 0, i),
			Revenue: dataset.MoneyFromFloat(rev),
			DayNum:  i,
		})
	}

	m, err := DailyModel(daily, cutoff)
	require.NoError(t, err)

	require.Len(t, m.Coefficients, 3)
	assert.Equal(t, "const", m.Coefficients[0].Name)
	assert.Equal(t, "DayNum", m.Coefficients[1].Name)
	assert.Equal(t, "Post_Decline", m.Coefficients[2].Name)
	assert.Equal(t, 8, m.N)
	// The level shift dominates this series.
	assert.Greater(t, m.R2, 0.8)
	assert.Less(t, m.Coefficients[2].Estimate, 0.0)
}

func rowFixture(n int) []dataset.EnrichedRecord {
	rng := rand.New(rand.NewSource(42))
	base := day("2026-02-01")
	carriers := []string{"AT&T", "T-Mobile", "Verizon"}
	segments := []string{"Dormant", "Engaged"}
	groups := []string{"Active", "Retired"}

	records := make([]dataset.EnrichedRecord, n)
	for i := range records {
		dayNum := i % 10
		sent := 100 + rng.Int63n(900)
		records[i] = dataset.EnrichedRecord{
			Record: dataset.Record{
				Date:         base.AddDate(0, 0, dayNum),
				CarrierGroup: carriers[rng.Intn(len(carriers))],
				Segment:      segments[rng.Intn(len(segments))],
				Sent:         sent,
				Delivered:    sent - rng.Int63n(50),
				Clicks:       rng.Int63n(50),
				Bounces:      rng.Int63n(30),
				Refusals:     rng.Int63n(20),
				Revenue:      dataset.MoneyFromFloat(float64(sent)*0.01 + rng.Float64()*5),
			},
			DayNum:     dayNum,
			PhoneGroup: groups[rng.Intn(len(groups))],
		}
	}
	return records
}

func TestRowModel(t *testing.T) {
	cutoff := day("2026-02-06")
	records := rowFixture(60)

	m, err := RowModel(records, cutoff)
	require.NoError(t, err)
	assert.Equal(t, 60, m.N)

	var names []string
	for _, c := range m.Coefficients {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"const", "Sent", "Clicks", "Bounces", "Refusals", "DayNum", "Post_Decline",
		"Carrier_T-Mobile", "Carrier_Verizon", "Seg_Engaged", "PG_Retired",
	}, names)
	// Delivered stays out of the design on purpose.
	assert.NotContains(t, names, "Delivered")
}

func TestRowModelRecoversKnownEffects(t *testing.T) {
	cutoff := day("2026-02-06")
	records := rowFixture(60)
	// Rebuild revenue as an exact function of the design so the fit must
	// recover the coefficients.
	for i := range records {
		rec := &records[i]
		retired := 0.0
		if rec.PhoneGroup == "Retired" {
			retired = 1
		}
		rec.Revenue = dataset.MoneyFromFloat(3 + 0.02*float64(rec.Sent) + 0.5*float64(rec.Clicks) - 4*retired)
	}

	m, err := RowModel(records, cutoff)
	require.NoError(t, err)

	got := map[string]float64{}
	for _, c := range m.Coefficients {
		got[c.Name] = c.Estimate
	}
	assert.InDelta(t, 3, got["const"], 1e-6)
	assert.InDelta(t, 0.02, got["Sent"], 1e-6)
	assert.InDelta(t, 0.5, got["Clicks"], 1e-6)
	assert.InDelta(t, -4, got["PG_Retired"], 1e-6)
	assert.InDelta(t, 0, got["Bounces"], 1e-6)
	assert.InDelta(t, 1, m.R2, 1e-9)
}
