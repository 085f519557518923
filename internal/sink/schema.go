package sink

// GetCellsSchema returns the DDL for the long-format export table. Each cell
// of each exported table becomes one row, keyed by the run id, so repeated
// runs append rather than overwrite.
func GetCellsSchema() string {
	return `
		CREATE TABLE IF NOT EXISTS sms_analysis_cells (
			run_id VARCHAR(36) NOT NULL,
			table_name VARCHAR(255) NOT NULL,
			row_num INT NOT NULL,
			column_name VARCHAR(255) NOT NULL,
			cell_value TEXT,
			PRIMARY KEY (run_id, table_name, row_num, column_name)
		);
	`
}
