package dataset

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Date,Sms Phone Number,Carrier Group,Segment,Sent,Delivered,Clicks,Unique Clicks,Bounces,Refusals,Revenue
2026-01-27,15122546961,AT&T,Engaged,1000,950,40,35,30,20,12.50
2026-01-27,15122546962,T-Mobile,Dormant,500,480,10,9,15,5,3.75
2026-01-28,15122546961,AT&T,Engaged,0,0,0,0,0,0,0
`

func TestLoad(t *testing.T) {
	t.Run("parses well-formed report", func(t *testing.T) {
		records, err := Load(strings.NewReader(sampleCSV))
		require.NoError(t, err)
		require.Len(t, records, 3)

		first := records[0]
		assert.Equal(t, time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC), first.Date)
		assert.Equal(t, int64(15122546961), first.Phone)
		assert.Equal(t, "AT&T", first.CarrierGroup)
		assert.Equal(t, "Engaged", first.Segment)
		assert.Equal(t, int64(1000), first.Sent)
		assert.Equal(t, int64(950), first.Delivered)
		assert.Equal(t, int64(40), first.Clicks)
		assert.Equal(t, int64(35), first.UniqueClicks)
		assert.Equal(t, int64(30), first.Bounces)
		assert.Equal(t, int64(20), first.Refusals)
		assert.Equal(t, "12.50", first.Revenue.String())
	})

	t.Run("locates columns by header name", func(t *testing.T) {
		shuffled := `Revenue,Date,Segment,Carrier Group,Sms Phone Number,Refusals,Bounces,Unique Clicks,Clicks,Delivered,Sent
9.99,2026-02-01,Engaged,Verizon,15122546966,1,2,3,4,90,100
`
		records, err := Load(strings.NewReader(shuffled))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, int64(100), records[0].Sent)
		assert.Equal(t, "Verizon", records[0].CarrierGroup)
		assert.Equal(t, "9.99", records[0].Revenue.String())
	})

	t.Run("missing column is an error", func(t *testing.T) {
		_, err := Load(strings.NewReader("Date,Sms Phone Number\n2026-01-27,1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Carrier Group")
	})

	t.Run("unparseable date is fatal with row context", func(t *testing.T) {
		bad := strings.Replace(sampleCSV, "2026-01-28", "not-a-date", 1)
		_, err := Load(strings.NewReader(bad))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 4")
		assert.Contains(t, err.Error(), "not-a-date")
	})

	t.Run("negative count is fatal", func(t *testing.T) {
		bad := strings.Replace(sampleCSV, ",500,", ",-500,", 1)
		_, err := Load(strings.NewReader(bad))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Sent")
	})

	t.Run("malformed revenue is fatal", func(t *testing.T) {
		bad := strings.Replace(sampleCSV, "3.75", "three", 1)
		_, err := Load(strings.NewReader(bad))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "three")
	})

	t.Run("negative revenue is fatal", func(t *testing.T) {
		bad := strings.Replace(sampleCSV, "3.75", "-3.75", 1)
		_, err := Load(strings.NewReader(bad))
		require.Error(t, err)
	})
}

func TestMoneyExactness(t *testing.T) {
	a, err := ParseMoney("0.10")
	require.NoError(t, err)
	b, err := ParseMoney("0.20")
	require.NoError(t, err)

	// Decimal addition carries no binary-float drift.
	assert.Equal(t, "0.30", a.Add(b).String())
	assert.InDelta(t, 0.3, a.Add(b).Float64(), 1e-12)
}
