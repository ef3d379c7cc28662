package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"expensebot/internal/model"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// TimeLayout is the fixed datetime format stored in the expenses table.
// Range queries compare these strings lexicographically, which is
// time-order-correct only because every value is written in local time
// with this exact layout and no offset suffix.
const TimeLayout = "2006-01-02 15:04:05"

const schema = `CREATE TABLE IF NOT EXISTS expenses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER,
	username TEXT,
	category TEXT,
	amount REAL,
	datetime DATETIME
)`

// Store persists expense records in a local SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens the database at path and ensures the schema exists.
// Schema creation is idempotent: reopening an existing database keeps
// its records intact.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create expenses table: %w", err)
	}

	return &Store{db: db}, nil
}

// Insert appends a new expense record and returns its assigned id.
func (s *Store) Insert(ctx context.Context, userID int64, username, category string, amount float64, ts time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses (user_id, username, category, amount, datetime) VALUES (?, ?, ?, ?, ?)",
		userID, username, category, amount, ts.Format(TimeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	return id, nil
}

// AggregateByCategory returns one row per category the user spent in
// within [start, end], both bounds inclusive. Categories with no matching
// records are omitted. Rows come back in category order; callers should
// not depend on that beyond determinism.
func (s *Store) AggregateByCategory(ctx context.Context, userID int64, start, end time.Time) ([]model.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, SUM(amount), COUNT(*)
		 FROM expenses
		 WHERE user_id = ? AND datetime BETWEEN ? AND ?
		 GROUP BY category
		 ORDER BY category`,
		userID, start.Format(TimeLayout), end.Format(TimeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("query aggregates: %w", err)
	}
	defer rows.Close()

	var totals []model.CategoryTotal
	for rows.Next() {
		var t model.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("scan aggregate row: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// All returns every record across all users in insertion order. Export
// path only; the dataset is family-scale so there is no pagination.
func (s *Store) All(ctx context.Context) ([]model.ExpenseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, username, category, amount, datetime FROM expenses ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var records []model.ExpenseRecord
	for rows.Next() {
		var (
			r  model.ExpenseRecord
			ts string
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.Username, &r.Category, &r.Amount, &ts); err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		r.Timestamp, err = time.ParseInLocation(TimeLayout, ts, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse expense datetime %q: %w", ts, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
