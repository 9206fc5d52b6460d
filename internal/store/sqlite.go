package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"option-pricer/internal/errors"
	"option-pricer/internal/models"
)

// SQLiteStore implements Journal using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed journal.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(err, "opening journal database")
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "initializing journal schema")
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS valuations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		kind TEXT NOT NULL,
		option_type TEXT NOT NULL,
		spot REAL NOT NULL,
		strike REAL NOT NULL,
		maturity REAL NOT NULL,
		volatility REAL NOT NULL,
		rate REAL NOT NULL,
		price REAL NOT NULL,
		delta REAL NOT NULL DEFAULT 0,
		gamma REAL NOT NULL DEFAULT 0,
		theta REAL NOT NULL DEFAULT 0,
		vega REAL NOT NULL DEFAULT 0,
		rho REAL NOT NULL DEFAULT 0,
		market_price REAL NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_valuations_created ON valuations(created_at);
	CREATE INDEX IF NOT EXISTS idx_valuations_kind ON valuations(kind);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveValuation inserts one journal row and fills in v.ID and v.CreatedAt.
func (s *SQLiteStore) SaveValuation(ctx context.Context, v *models.Valuation) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO valuations (
			created_at, kind, option_type,
			spot, strike, maturity, volatility, rate,
			price, delta, gamma, theta, vega, rho,
			market_price
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.CreatedAt, string(v.Kind), v.OptionType,
		v.Spot, v.Strike, v.Maturity, v.Volatility, v.Rate,
		v.Price, v.Delta, v.Gamma, v.Theta, v.Vega, v.Rho,
		v.MarketPrice,
	)
	if err != nil {
		return errors.Wrap(err, "saving valuation")
	}

	if id, err := res.LastInsertId(); err == nil {
		v.ID = id
	}
	return nil
}

// ListValuations returns journal rows matching the filter, newest first.
func (s *SQLiteStore) ListValuations(ctx context.Context, filter ValuationFilter) ([]models.Valuation, error) {
	query := `
		SELECT id, created_at, kind, option_type,
		       spot, strike, maturity, volatility, rate,
		       price, delta, gamma, theta, vega, rho,
		       market_price
		FROM valuations`

	var conds []string
	var args []interface{}
	if filter.Kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if filter.OptionType != "" {
		conds = append(conds, "option_type = ?")
		args = append(args, filter.OptionType)
	}
	if !filter.Since.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, filter.Since)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying valuations")
	}
	defer rows.Close()

	var result []models.Valuation
	for rows.Next() {
		var v models.Valuation
		var kind string
		if err := rows.Scan(
			&v.ID, &v.CreatedAt, &kind, &v.OptionType,
			&v.Spot, &v.Strike, &v.Maturity, &v.Volatility, &v.Rate,
			&v.Price, &v.Delta, &v.Gamma, &v.Theta, &v.Vega, &v.Rho,
			&v.MarketPrice,
		); err != nil {
			return nil, errors.Wrap(err, "scanning valuation")
		}
		v.Kind = models.ValuationKind(kind)
		result = append(result, v)
	}

	return result, rows.Err()
}

// CountValuations returns the total number of journal rows.
func (s *SQLiteStore) CountValuations(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM valuations").Scan(&count)
	return count, err
}

// Prune deletes journal rows created before the given time and reports how
// many were removed.
func (s *SQLiteStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM valuations WHERE created_at < ?", before)
	if err != nil {
		return 0, errors.Wrap(err, "pruning valuations")
	}
	return res.RowsAffected()
}
