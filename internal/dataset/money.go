package dataset

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

var moneyCtx = apd.BaseContext.WithPrecision(34)

// Money is a currency amount. Amounts are parsed and summed exactly so
// exported revenue totals carry no binary-float drift; analysis code takes
// Float64 snapshots for modeling.
type Money struct {
	d apd.Decimal
}

// ParseMoney parses a non-negative currency amount.
func ParseMoney(s string) (Money, error) {
	var m Money
	if _, _, err := m.d.SetString(strings.TrimSpace(s)); err != nil {
		return Money{}, fmt.Errorf("invalid currency amount %q", s)
	}
	if m.d.Negative {
		return Money{}, fmt.Errorf("negative currency amount %q", s)
	}
	return m, nil
}

// MoneyFromFloat is a test and fixture helper; real amounts come from ParseMoney.
func MoneyFromFloat(f float64) Money {
	var m Money
	_, _ = m.d.SetFloat64(f)
	return m
}

func (m Money) Add(o Money) Money {
	var out Money
	_, _ = moneyCtx.Add(&out.d, &m.d, &o.d)
	return out
}

func (m Money) Float64() float64 {
	f, _ := m.d.Float64()
	return f
}

func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// String renders the amount quantized to cents.
func (m Money) String() string {
	var q apd.Decimal
	_, _ = moneyCtx.Quantize(&q, &m.d, -2)
	return q.Text('f')
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}
