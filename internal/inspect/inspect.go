// Package inspect reads a saved search response (the output of
// `search --json`) through DuckDB so a page that fails to decode can be
// examined row by row.
package inspect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Row is one photo of the saved page
type Row struct {
	ID          string
	Description string
	Author      string
	URL         string
	Width       int64
	Height      int64
}

// Summary describes a saved search page
type Summary struct {
	Total      int64
	TotalPages int64
	Rows       []Row
}

// pageColumns pins the schema so fields absent from every record still
// resolve to NULL instead of failing the bind.
const pageColumns = `{
	total: 'BIGINT',
	total_pages: 'BIGINT',
	results: 'STRUCT(id VARCHAR, description VARCHAR, alt_description VARCHAR, width BIGINT, height BIGINT, urls STRUCT(regular VARCHAR, small VARCHAR), "user" STRUCT(name VARCHAR))[]'
}`

// ResponseFile loads the page stored at path
func ResponseFile(ctx context.Context, database *sql.DB, path string) (*Summary, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat response file: %w", err)
	}
	source := fmt.Sprintf("read_json('%s', format = 'auto', columns = %s)",
		strings.ReplaceAll(path, "'", "''"), pageColumns)

	summary := &Summary{}
	totalsQuery := fmt.Sprintf(`
		SELECT COALESCE(total, 0), COALESCE(total_pages, 0)
		FROM %s
		LIMIT 1
	`, source)
	err := database.QueryRowContext(ctx, totalsQuery).Scan(&summary.Total, &summary.TotalPages)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("response file %s is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read response totals: %w", err)
	}

	rowsQuery := fmt.Sprintf(`
		SELECT
			COALESCE(struct_extract(r, 'id'), ''),
			COALESCE(struct_extract(r, 'description'), struct_extract(r, 'alt_description'), ''),
			COALESCE(struct_extract(struct_extract(r, 'user'), 'name'), ''),
			COALESCE(struct_extract(struct_extract(r, 'urls'), 'regular'), ''),
			COALESCE(struct_extract(r, 'width'), 0),
			COALESCE(struct_extract(r, 'height'), 0)
		FROM (SELECT unnest(results) AS r FROM %s)
	`, source)
	rows, err := database.QueryContext(ctx, rowsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to read response rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.Description, &row.Author, &row.URL, &row.Width, &row.Height); err != nil {
			return nil, fmt.Errorf("failed to scan response row: %w", err)
		}
		summary.Rows = append(summary.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate response rows: %w", err)
	}
	return summary, nil
}
