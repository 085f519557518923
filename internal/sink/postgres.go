package sink

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"sms-campaign-analysis/internal/report"
)

// PostgresSink appends every exported table cell to the warehouse in long
// format. The whole export runs in one transaction: either the run's tables
// land completely or not at all.
type PostgresSink struct {
	DSN string
}

func (s *PostgresSink) Name() string { return "postgres" }

func (s *PostgresSink) Write(ctx context.Context, runID string, tables []report.Table) error {
	conn, err := pgx.Connect(ctx, s.DSN)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(ctx)

	return s.executeTx(ctx, conn, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, GetCellsSchema()); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		for _, t := range tables {
			if err := insertTable(ctx, tx, runID, t); err != nil {
				return fmt.Errorf("table %s: %w", t.Name, err)
			}
		}
		return nil
	})
}

func (s *PostgresSink) executeTx(ctx context.Context, conn *pgx.Conn, txFunc func(pgx.Tx) error) (err error) {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback(ctx)
			panic(p) // re-panic after rollback
		} else if err != nil {
			tx.Rollback(ctx) // err is non-nil; don't change it
		} else {
			err = tx.Commit(ctx) // err is nil; if Commit returns error, update err
		}
	}()

	err = txFunc(tx)
	return err
}

func insertTable(ctx context.Context, tx pgx.Tx, runID string, t report.Table) error {
	const stmt = `INSERT INTO sms_analysis_cells (run_id, table_name, row_num, column_name, cell_value) VALUES ($1, $2, $3, $4, $5)`
	for rowNum, row := range t.Rows {
		for colIdx, value := range row {
			if colIdx >= len(t.Columns) {
				return fmt.Errorf("row %d has more cells than columns", rowNum)
			}
			if _, err := tx.Exec(ctx, stmt, runID, t.Name, rowNum, t.Columns[colIdx], value); err != nil {
				return err
			}
		}
	}
	return nil
}
