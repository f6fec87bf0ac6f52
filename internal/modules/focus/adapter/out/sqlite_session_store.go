package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"lernova/internal/modules/focus/domain"
	focusout "lernova/internal/modules/focus/port/out"
	apperrors "lernova/internal/platform/errors"
	"lernova/internal/platform/sqlitedb"
)

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(db *sql.DB) (focusout.SessionStore, error) {
	store := &SQLiteSessionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	ddl := []string{`
CREATE TABLE IF NOT EXISTS focus_sessions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  topic TEXT NOT NULL,
  description TEXT,
  keywords TEXT NOT NULL DEFAULT '[]',
  allowed_domains TEXT NOT NULL DEFAULT '[]',
  blocked_urls TEXT NOT NULL DEFAULT '[]',
  active INTEGER NOT NULL,
  created_at TEXT NOT NULL,
  ended_at TEXT,
  urls_checked INTEGER NOT NULL DEFAULT 0,
  urls_allowed INTEGER NOT NULL DEFAULT 0,
  urls_blocked INTEGER NOT NULL DEFAULT 0,
  schema_version INTEGER NOT NULL
);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS focus_sessions_one_active ON focus_sessions(user_id) WHERE active = 1;`,
		`CREATE INDEX IF NOT EXISTS focus_sessions_by_user ON focus_sessions(user_id, created_at);`,
	}
	for _, stmt := range ddl {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create focus_sessions schema: %w", err)
		}
	}
	return nil
}

const sessionColumns = `id, user_id, topic, description, keywords, allowed_domains, blocked_urls, active, created_at, ended_at, urls_checked, urls_allowed, urls_blocked`

func (s *SQLiteSessionStore) Start(ctx context.Context, session domain.Session, now time.Time) error {
	keywords, err := encodeList(session.Keywords)
	if err != nil {
		return err
	}
	allowed, err := encodeList(session.AllowedDomains)
	if err != nil {
		return err
	}
	blocked, err := encodeList(session.BlockedURLs)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin start session: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE focus_sessions SET active = 0, ended_at = ? WHERE user_id = ? AND active = 1`,
		sqlitedb.FormatTime(now), session.UserID,
	); err != nil {
		return fmt.Errorf("deactivate sessions: %w", err)
	}

	const insert = `
INSERT INTO focus_sessions (id, user_id, topic, description, keywords, allowed_domains, blocked_urls, active, created_at, ended_at, urls_checked, urls_allowed, urls_blocked, schema_version)
VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, NULL, 0, 0, 0, ?);
`
	if _, err := tx.ExecContext(ctx, insert,
		session.ID,
		session.UserID,
		session.Topic,
		nullString(session.Description),
		keywords,
		allowed,
		blocked,
		sqlitedb.FormatTime(session.CreatedAt),
		domain.SchemaVersion,
	); err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("insert session: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("insert session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("commit session: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Active(ctx context.Context, userID string) (domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM focus_sessions WHERE user_id = ? AND active = 1`, userID)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, apperrors.ErrNoActiveSession
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load active session: %w", err)
	}
	return session, nil
}

func (s *SQLiteSessionStore) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM focus_sessions WHERE id = ?`, sessionID)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	return session, nil
}

func (s *SQLiteSessionStore) RecordCheck(ctx context.Context, sessionID, url string, allowed bool) error {
	const stmt = `
UPDATE focus_sessions SET
  urls_checked = urls_checked + 1,
  urls_allowed = urls_allowed + ?,
  urls_blocked = urls_blocked + ?,
  blocked_urls = CASE WHEN ? = 1 THEN json_insert(blocked_urls, '$[#]', ?) ELSE blocked_urls END
WHERE id = ?;
`
	allowedInc, blockedInc := 0, 1
	if allowed {
		allowedInc, blockedInc = 1, 0
	}
	res, err := s.db.ExecContext(ctx, stmt, allowedInc, blockedInc, blockedInc, url, sessionID)
	if err != nil {
		return fmt.Errorf("record check: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record check: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
	}
	return nil
}

func (s *SQLiteSessionStore) End(ctx context.Context, sessionID string, now time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE focus_sessions SET active = 0, ended_at = ? WHERE id = ? AND ended_at IS NULL`,
		sqlitedb.FormatTime(now), sessionID,
	)
	if err != nil {
		return false, fmt.Errorf("end session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("end session: %w", err)
	}
	if n > 0 {
		return true, nil
	}
	var exists int
	err = s.db.QueryRowContext(ctx, `SELECT 1 FROM focus_sessions WHERE id = ?`, sessionID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("end session: %w", err)
	}
	return false, nil
}

func (s *SQLiteSessionStore) History(ctx context.Context, userID string, limit int) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM focus_sessions WHERE user_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	out := []domain.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		out = append(out, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (domain.Session, error) {
	var (
		session                    domain.Session
		description, endedAt       sql.NullString
		keywords, allowed, blocked string
		active                     int
		createdAt                  string
	)
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Topic,
		&description,
		&keywords,
		&allowed,
		&blocked,
		&active,
		&createdAt,
		&endedAt,
		&session.Stats.URLsChecked,
		&session.Stats.URLsAllowed,
		&session.Stats.URLsBlocked,
	)
	if err != nil {
		return domain.Session{}, err
	}
	session.Description = description.String
	session.Active = active == 1
	if session.Keywords, err = decodeList(keywords); err != nil {
		return domain.Session{}, err
	}
	if session.AllowedDomains, err = decodeList(allowed); err != nil {
		return domain.Session{}, err
	}
	if session.BlockedURLs, err = decodeList(blocked); err != nil {
		return domain.Session{}, err
	}
	if session.CreatedAt, err = sqlitedb.ParseTime(createdAt); err != nil {
		return domain.Session{}, err
	}
	if endedAt.Valid {
		t, err := sqlitedb.ParseTime(endedAt.String)
		if err != nil {
			return domain.Session{}, err
		}
		session.EndedAt = &t
	}
	return session, nil
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(raw), nil
}

func decodeList(raw string) ([]string, error) {
	values := []string{}
	if raw == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return values, nil
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func isConstraintViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	// Extended codes such as SQLITE_CONSTRAINT_UNIQUE share the primary code in the low byte.
	return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
