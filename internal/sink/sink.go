package sink

import (
	"context"

	"sms-campaign-analysis/internal/report"
)

// Sink receives the exported tables of one analysis run. Implementations
// must be safe to call once per run; nothing retries a failed sink.
type Sink interface {
	Name() string
	Write(ctx context.Context, runID string, tables []report.Table) error
}
