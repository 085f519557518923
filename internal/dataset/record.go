package dataset

import (
	"encoding/json"
	"time"
)

// Record is one observation from the delivery report: a single
// (date, carrier, segment, phone) combination with its counters.
type Record struct {
	Date         time.Time
	Phone        int64
	CarrierGroup string
	Segment      string
	Sent         int64
	Delivered    int64
	Clicks       int64
	UniqueClicks int64
	Bounces      int64
	Refusals     int64
	Revenue      Money
}

// EnrichedRecord is a Record with the derived per-row fields populated.
type EnrichedRecord struct {
	Record
	DeliveryRate Ratio
	CTR          Ratio
	RevPerSent   Ratio
	DayNum       int
	PhoneLabel   string
	PhoneGroup   string
}

// Ratio is a division result whose denominator may have been zero.
// Mirrors sql.NullFloat64: Valid is false when the ratio is undefined.
// Undefined ratios must stay undefined downstream, never NaN or Inf.
type Ratio struct {
	Float64 float64
	Valid   bool
}

// NewRatio divides num by den, returning an undefined Ratio when den is zero.
func NewRatio(num, den float64) Ratio {
	if den == 0 {
		return Ratio{}
	}
	return Ratio{Float64: num / den, Valid: true}
}

// MarshalJSON renders an undefined Ratio as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Float64)
}

// Dimension selects the secondary grouping axis for cross-tabulations.
type Dimension string

const (
	ByCarrier    Dimension = "carrier"
	BySegment    Dimension = "segment"
	ByPhoneLabel Dimension = "phone"
	ByPhoneGroup Dimension = "phone_group"
)

// DimensionValue returns the record's value on the given grouping axis.
func (r EnrichedRecord) DimensionValue(d Dimension) string {
	switch d {
	case ByCarrier:
		return r.CarrierGroup
	case BySegment:
		return r.Segment
	case ByPhoneLabel:
		return r.PhoneLabel
	case ByPhoneGroup:
		return r.PhoneGroup
	}
	return ""
}
