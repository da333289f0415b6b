package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/croppilot/croppilot/internal/domain"
)

const dateLayout = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	phone TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS farm_logs (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	crop_name TEXT NOT NULL,
	sowing_date TEXT NOT NULL,
	expected_harvest_date TEXT,
	money_spent REAL NOT NULL DEFAULT 0,
	money_earned REAL NOT NULL DEFAULT 0,
	notes TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_farm_logs_user ON farm_logs(user_id, created_at DESC);
`

// SQLiteStore implements UserStore and LogStore on a single SQLite file via
// the pure-Go driver, so the binary stays CGO-free.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies the
// schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// The driver serializes access per connection; a single connection avoids
	// SQLITE_BUSY on concurrent writes.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Create(ctx context.Context, user domain.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, phone, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Phone, user.PasswordHash, user.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return ErrDuplicatePhone
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindByPhone(ctx context.Context, phone string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone, password_hash, created_at FROM users WHERE phone = ?`, phone)
	return scanUser(row)
}

func (s *SQLiteStore) FindByID(ctx context.Context, id string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone, password_hash, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (domain.User, error) {
	var user domain.User
	var createdAt string
	err := row.Scan(&user.ID, &user.Name, &user.Phone, &user.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("scan user: %w", err)
	}
	user.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return domain.User{}, fmt.Errorf("parse user created_at: %w", err)
	}
	return user, nil
}

func (s *SQLiteStore) Append(ctx context.Context, entry domain.FarmLog) error {
	harvest := ""
	if !entry.ExpectedHarvestDate.IsZero() {
		harvest = entry.ExpectedHarvestDate.Format(dateLayout)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO farm_logs (id, user_id, crop_name, sowing_date, expected_harvest_date, money_spent, money_earned, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.CropName,
		entry.SowingDate.Format(dateLayout), harvest,
		entry.MoneySpent, entry.MoneyEarned, entry.Notes,
		entry.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert farm log: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]domain.FarmLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, crop_name, sowing_date, expected_harvest_date, money_spent, money_earned, notes, created_at
		 FROM farm_logs WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list farm logs: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.FarmLog, 0)
	for rows.Next() {
		var entry domain.FarmLog
		var sowing, harvest, createdAt string
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.CropName, &sowing, &harvest,
			&entry.MoneySpent, &entry.MoneyEarned, &entry.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan farm log: %w", err)
		}
		if entry.SowingDate, err = time.Parse(dateLayout, sowing); err != nil {
			return nil, fmt.Errorf("parse sowing date: %w", err)
		}
		if harvest != "" {
			if entry.ExpectedHarvestDate, err = time.Parse(dateLayout, harvest); err != nil {
				return nil, fmt.Errorf("parse harvest date: %w", err)
			}
		}
		if entry.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse farm log created_at: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM farm_logs WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete farm log: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete farm log: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
