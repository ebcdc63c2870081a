package internal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps subscriptions in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	log *logrus.Logger
}

// NewSQLiteStore opens (creating if needed) the database at path and migrates
// the schema. ":memory:" gives a throwaway database.
func NewSQLiteStore(path string, log *logrus.Logger) (*SQLiteStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("creating directory %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases alive and serializes writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}
	s := &SQLiteStore{db: db, log: log}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS subscriptions (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    cost REAL NOT NULL,
    billing_cycle TEXT NOT NULL,
    start_date TEXT NOT NULL,
    category TEXT NOT NULL,
    icon_key TEXT NOT NULL DEFAULT 'custom',
    color TEXT NOT NULL DEFAULT '',
    payment_method TEXT NOT NULL DEFAULT '',
    active INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_subscriptions_active_start
    ON subscriptions (active, start_date);
`)
	return err
}

const subscriptionColumns = `id, name, cost, billing_cycle, start_date, category, icon_key, color, payment_method, active, created_at, updated_at`

func (s *SQLiteStore) List(ctx context.Context, includeInactive bool) ([]Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY start_date ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	return subs, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Subscription, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = ?`, id)
	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sub, err
}

func (s *SQLiteStore) Create(ctx context.Context, sub *Subscription) error {
	if err := prepareCreate(sub); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO subscriptions (`+subscriptionColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.Cost, sub.Cycle.String(), sub.StartDate.String(), string(sub.Category),
		sub.IconKey, sub.Color, sub.PaymentMethod, sub.Active,
		sub.CreatedAt.UnixMilli(), sub.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("inserting subscription: %w", err)
	}
	s.log.WithField("id", sub.ID).Debug("subscription inserted")
	return nil
}

func (s *SQLiteStore) Update(ctx context.Context, sub *Subscription) error {
	sub.UpdatedAt = time.Now().UTC()
	if err := sub.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
UPDATE subscriptions SET
    name = ?, cost = ?, billing_cycle = ?, start_date = ?, category = ?,
    icon_key = ?, color = ?, payment_method = ?, active = ?, updated_at = ?
WHERE id = ?`,
		sub.Name, sub.Cost, sub.Cycle.String(), sub.StartDate.String(), string(sub.Category),
		sub.IconKey, sub.Color, sub.PaymentMethod, sub.Active, sub.UpdatedAt.UnixMilli(),
		sub.ID,
	)
	if err != nil {
		return fmt.Errorf("updating subscription: %w", err)
	}
	return expectOneRow(res, sub.ID)
}

func (s *SQLiteStore) Deactivate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE subscriptions SET active = 0, updated_at = ? WHERE id = ?`,
		time.Now().UTC().UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("deactivating subscription: %w", err)
	}
	return expectOneRow(res, id)
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (*Subscription, error) {
	var (
		sub                  Subscription
		cycle, start, cat    string
		createdAt, updatedAt int64
	)
	err := row.Scan(&sub.ID, &sub.Name, &sub.Cost, &cycle, &start, &cat,
		&sub.IconKey, &sub.Color, &sub.PaymentMethod, &sub.Active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if sub.Cycle, err = ParseBillingCycle(cycle); err != nil {
		return nil, fmt.Errorf("subscription %s: %w", sub.ID, err)
	}
	if sub.StartDate, err = ParseDate(start); err != nil {
		return nil, fmt.Errorf("subscription %s: %w", sub.ID, err)
	}
	sub.Category = Category(cat)
	sub.CreatedAt = time.UnixMilli(createdAt).UTC()
	sub.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	if err := sub.Validate(); err != nil {
		return nil, fmt.Errorf("subscription %s: %w", sub.ID, err)
	}
	return &sub, nil
}
