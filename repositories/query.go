package repositories

import (
	"context"
	"fmt"

	"github.com/anprojects-core/database"
)

// QueryRepository runs caller-supplied parameterized SQL against Postgres
type QueryRepository struct {
	provider *database.Provider
}

// NewQueryRepository creates a new query repository instance
func NewQueryRepository(provider *database.Provider) *QueryRepository {
	return &QueryRepository{provider: provider}
}

// Query executes query with positional ($1, $2, ...) params and returns every
// row as a column-name keyed map. Statements without a result set yield no rows.
func (r *QueryRepository) Query(ctx context.Context, query string, params []any) ([]map[string]any, error) {
	conn, err := r.provider.Get()
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB.DB()
	if err != nil {
		return nil, err
	}

	rows, err := sqlDB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
				continue
			}
			row[column] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
