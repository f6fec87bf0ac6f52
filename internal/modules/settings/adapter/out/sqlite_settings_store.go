package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lernova/internal/modules/settings/domain"
	settingsout "lernova/internal/modules/settings/port/out"
	apperrors "lernova/internal/platform/errors"
	"lernova/internal/platform/sqlitedb"
)

type SQLiteSettingsStore struct {
	db *sql.DB
}

func NewSQLiteSettingsStore(db *sql.DB) (settingsout.Store, error) {
	store := &SQLiteSettingsStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSettingsStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS settings (
  user_id TEXT PRIMARY KEY,
  focus_mode_enabled INTEGER NOT NULL DEFAULT 0,
  focus_mode_strict INTEGER NOT NULL DEFAULT 0,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create settings table: %w", err)
	}
	return nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteSettingsStore) Load(ctx context.Context, userID string) (domain.Settings, error) {
	return load(ctx, s.db, userID)
}

func load(ctx context.Context, q querier, userID string) (domain.Settings, error) {
	var (
		settings        domain.Settings
		enabled, strict int
		updatedAt       string
	)
	err := q.QueryRowContext(ctx,
		`SELECT user_id, focus_mode_enabled, focus_mode_strict, updated_at FROM settings WHERE user_id = ?`, userID,
	).Scan(&settings.UserID, &enabled, &strict, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Settings{}, fmt.Errorf("settings for %s: %w", userID, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	settings.FocusModeEnabled = enabled == 1
	settings.FocusModeStrict = strict == 1
	if settings.UpdatedAt, err = sqlitedb.ParseTime(updatedAt); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

const insertDefaults = `
INSERT INTO settings (user_id, focus_mode_enabled, focus_mode_strict, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(user_id) DO NOTHING;
`

func (s *SQLiteSettingsStore) Create(ctx context.Context, settings domain.Settings) error {
	_, err := s.db.ExecContext(ctx, insertDefaults,
		settings.UserID,
		boolInt(settings.FocusModeEnabled),
		boolInt(settings.FocusModeStrict),
		sqlitedb.FormatTime(settings.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert settings: %w", err)
	}
	return nil
}

// Patch updates the set columns in place so concurrent patches of different
// fields never overwrite each other.
func (s *SQLiteSettingsStore) Patch(ctx context.Context, userID string, patch domain.Patch, now time.Time) (domain.Settings, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("begin settings patch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	defaults := domain.Defaults(userID, now)
	if _, err := tx.ExecContext(ctx, insertDefaults,
		defaults.UserID,
		boolInt(defaults.FocusModeEnabled),
		boolInt(defaults.FocusModeStrict),
		sqlitedb.FormatTime(defaults.UpdatedAt),
	); err != nil {
		return domain.Settings{}, fmt.Errorf("insert settings: %w", err)
	}
	const stmt = `
UPDATE settings SET
  focus_mode_enabled = COALESCE(?, focus_mode_enabled),
  focus_mode_strict = COALESCE(?, focus_mode_strict),
  updated_at = ?
WHERE user_id = ?;
`
	if _, err := tx.ExecContext(ctx, stmt,
		nullableBool(patch.FocusModeEnabled),
		nullableBool(patch.FocusModeStrict),
		sqlitedb.FormatTime(now),
		userID,
	); err != nil {
		return domain.Settings{}, fmt.Errorf("patch settings: %w", err)
	}
	settings, err := load(ctx, tx, userID)
	if err != nil {
		return domain.Settings{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Settings{}, fmt.Errorf("commit settings patch: %w", err)
	}
	return settings, nil
}

func nullableBool(v *bool) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(boolInt(*v)), Valid: true}
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
