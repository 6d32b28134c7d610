package postgres

import (
	"context"
	"database/sql"
)

// rowsAdapter narrows *sql.Rows to RowScanner so the repository can be tested
// without a database.
type rowsAdapter struct {
	*sql.Rows
}

type sqlDB struct {
	db *sql.DB
}

func NewSQLDB(db *sql.DB) DB {
	return &sqlDB{db: db}
}

func (s *sqlDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rowsAdapter{Rows: rows}, nil
}
