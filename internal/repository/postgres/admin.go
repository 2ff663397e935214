package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/medidesk-api/internal/repository"
	"github.com/jwalitptl/medidesk-api/pkg/metrics"
)

type adminRepository struct {
	BaseRepository
}

func NewAdminRepository(db *sqlx.DB, m *metrics.Metrics) repository.AdminRepository {
	return &adminRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *adminRepository) ListTables(ctx context.Context) (_ []string, err error) {
	defer r.observe("admin.list_tables", time.Now(), &err)

	query := `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`
	tables := []string{}
	if err = r.db.SelectContext(ctx, &tables, query); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

// SelectRows interpolates table into the query. Callers must have matched it
// against ListTables first; quoting is a second line, not the guard.
func (r *adminRepository) SelectRows(ctx context.Context, table string, limit int) (_ []map[string]interface{}, err error) {
	defer r.observe("admin.select_rows", time.Now(), &err)

	query := fmt.Sprintf(`SELECT * FROM %s LIMIT $1`, pq.QuoteIdentifier(table))
	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to browse %s: %w", table, err)
	}
	defer rows.Close()

	result := []map[string]interface{}{}
	for rows.Next() {
		row := make(map[string]interface{})
		if err = rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		for k, v := range row {
			// pq returns text and numeric columns as []byte; render them as strings.
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", table, err)
	}
	return result, nil
}
