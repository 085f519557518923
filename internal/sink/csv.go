package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"sms-campaign-analysis/internal/report"
)

// CSVSink writes one <table name>.csv file per table into Dir.
type CSVSink struct {
	Dir string
}

func (s *CSVSink) Name() string { return "csv:" + s.Dir }

func (s *CSVSink) Write(ctx context.Context, runID string, tables []report.Table) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, t := range tables {
		if err := s.writeTable(t); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
	}
	return nil
}

func (s *CSVSink) writeTable(t report.Table) error {
	f, err := os.Create(filepath.Join(s.Dir, t.Name+".csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
