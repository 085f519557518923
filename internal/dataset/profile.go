package dataset

import (
	"github.com/HdrHistogram/hdrhistogram-go"
)

const maxTrackableSent = 100_000_000

// VolumeProfile summarizes the per-row send volume distribution. It is a
// data-quality check surfaced in the run summary: a sudden change in the
// shape of per-row volume usually means the upstream export changed.
type VolumeProfile struct {
	Rows         int   `json:"rows"`
	ZeroSendRows int   `json:"zero_send_rows"`
	MinSent      int64 `json:"min_sent"`
	P50Sent      int64 `json:"p50_sent"`
	P90Sent      int64 `json:"p90_sent"`
	P99Sent      int64 `json:"p99_sent"`
	MaxSent      int64 `json:"max_sent"`
}

// ProfileVolume builds the send-volume profile. Zero-send rows cannot be
// recorded in the histogram and are counted separately.
func ProfileVolume(records []EnrichedRecord) VolumeProfile {
	h := hdrhistogram.New(1, maxTrackableSent, 3)
	profile := VolumeProfile{Rows: len(records)}

	for _, rec := range records {
		if rec.Sent == 0 {
			profile.ZeroSendRows++
			continue
		}
		v := rec.Sent
		if v > maxTrackableSent {
			v = maxTrackableSent
		}
		_ = h.RecordValue(v)
	}

	if h.TotalCount() > 0 {
		profile.MinSent = h.Min()
		profile.P50Sent = h.ValueAtQuantile(50)
		profile.P90Sent = h.ValueAtQuantile(90)
		profile.P99Sent = h.ValueAtQuantile(99)
		profile.MaxSent = h.Max()
	}
	return profile
}
