package runner

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"sms-campaign-analysis/internal/aggregate"
	"sms-campaign-analysis/internal/config"
	"sms-campaign-analysis/internal/dataset"
	"sms-campaign-analysis/internal/decompose"
	"sms-campaign-analysis/internal/describe"
	"sms-campaign-analysis/internal/regress"
	"sms-campaign-analysis/internal/report"
)

// Outcome is everything one analysis run produces: the summary scalars, the
// fitted models, and the tables handed to the export sinks.
type Outcome struct {
	RunID         string                `json:"run_id"`
	GeneratedAt   time.Time             `json:"generated_at"`
	Dataset       dataset.Info          `json:"dataset"`
	VolumeProfile dataset.VolumeProfile `json:"volume_profile"`
	PreDays       int                   `json:"pre_days"`
	PostDays      int                   `json:"post_days"`
	Comparison    []describe.Comparison `json:"comparison"`
	Decomposition decompose.Result      `json:"decomposition"`
	Models        []*regress.Model      `json:"models"`
	ModelErrors   map[string]string     `json:"model_errors,omitempty"`
	Tables        []report.Table        `json:"-"`
}

// Run executes the whole pipeline once: load, filter and enrich, aggregate,
// describe, decompose, regress, assemble tables. Any stage error aborts the
// run, except regression failures, which are recorded per model so the other
// analyses still complete.
func Run(cfg *config.Config, logger *log.Logger) (*Outcome, error) {
	cutoff := cfg.Cutoff()

	records, err := dataset.LoadFile(cfg.Input.ReportCSV)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	logger.Printf("loaded %d rows from %s", len(records), cfg.Input.ReportCSV)

	enriched, info, err := dataset.Enrich(records, dataset.Params{
		ExcludedPhone:    cfg.Analysis.ExcludedPhone,
		RetiredPhones:    cfg.Analysis.RetiredPhones,
		RetiredGroupName: cfg.Analysis.RetiredGroupName,
		ActiveGroupName:  cfg.Analysis.ActiveGroupName,
	})
	if err != nil {
		return nil, fmt.Errorf("enrich: %w", err)
	}
	logger.Printf("rows after filtering: %d, date range %s to %s, %d phone numbers",
		info.Rows, info.DateMin.Format("2006-01-02"), info.DateMax.Format("2006-01-02"), info.Phones)

	daily := aggregate.BuildDaily(enriched)
	pre, post := describe.Split(daily, cutoff)
	if len(pre) == 0 {
		return nil, fmt.Errorf("no days before cutoff %s", cutoff.Format("2006-01-02"))
	}
	if len(post) == 0 {
		return nil, fmt.Errorf("no days on or after cutoff %s", cutoff.Format("2006-01-02"))
	}

	retired := make(map[int64]bool, len(cfg.Analysis.RetiredPhones))
	for _, phone := range cfg.Analysis.RetiredPhones {
		retired[phone] = true
	}
	decomposition, err := decompose.Decompose(enriched, cutoff, retired)
	if err != nil {
		return nil, fmt.Errorf("decompose: %w", err)
	}

	outcome := &Outcome{
		RunID:         uuid.New().String(),
		GeneratedAt:   time.Now().UTC(),
		Dataset:       info,
		VolumeProfile: dataset.ProfileVolume(enriched),
		PreDays:       len(pre),
		PostDays:      len(post),
		Comparison:    describe.Compare(pre, post),
		Decomposition: decomposition,
	}

	// Model failures are reported, not fatal: a rank-deficient design in one
	// model must not take down the descriptive results.
	fits := []struct {
		name string
		fit  func() (*regress.Model, error)
	}{
		{regress.DailyModelName, func() (*regress.Model, error) { return regress.DailyModel(daily, cutoff) }},
		{regress.RowModelName, func() (*regress.Model, error) { return regress.RowModel(enriched, cutoff) }},
	}
	for _, f := range fits {
		model, err := f.fit()
		if err != nil {
			logger.Printf("model %s failed: %v", f.name, err)
			if outcome.ModelErrors == nil {
				outcome.ModelErrors = make(map[string]string)
			}
			outcome.ModelErrors[f.name] = err.Error()
			continue
		}
		logger.Printf("model %s: R2=%.3f adj R2=%.3f N=%d", model.Name, model.R2, model.AdjR2, model.N)
		outcome.Models = append(outcome.Models, model)
	}

	outcome.Tables = buildTables(daily, enriched, outcome)
	return outcome, nil
}

func buildTables(daily []aggregate.Daily, enriched []dataset.EnrichedRecord, o *Outcome) []report.Table {
	tables := []report.Table{
		report.DailyTable(daily),
		report.ComparisonTable(o.Comparison),
		report.DecompositionTable(o.Decomposition),
	}
	for _, m := range o.Models {
		tables = append(tables, report.ModelTable(m))
	}
	for _, dim := range []dataset.Dimension{dataset.ByCarrier, dataset.BySegment, dataset.ByPhoneLabel, dataset.ByPhoneGroup} {
		tables = append(tables, report.CrossTabTable(aggregate.BuildCrossTab(enriched, dim)))
	}
	return tables
}
