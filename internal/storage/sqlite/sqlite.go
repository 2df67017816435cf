// sqlite — файловая реализация storage.TokenStore поверх SQLite.
// Одна строка (id = 1) на процесс: приложение держит ровно одну сессию.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/schetovod/webclient/internal/models"
	"github.com/schetovod/webclient/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_tokens (
	id            INTEGER PRIMARY KEY CHECK (id = 1),
	access_token  TEXT NOT NULL,
	refresh_token TEXT NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);`

// Store — SQLite-хранилище токенов.
type Store struct {
	db *sql.DB
}

// New открывает (или создаёт) файл хранилища и инициализирует схему.
// Путь ":memory:" даёт эфемерное хранилище без файла.
func New(path string) (*Store, error) {
	const op = "storage.sqlite.New"

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: init schema: %w", op, err)
	}

	return &Store{db: db}, nil
}

// Close закрывает соединение с базой.
func (s *Store) Close() error {
	return s.db.Close()
}

// Tokens возвращает сохранённую пару токенов или storage.ErrNotFound.
func (s *Store) Tokens(ctx context.Context) (models.StoredTokens, error) {
	const op = "storage.sqlite.Tokens"

	row := s.db.QueryRowContext(ctx,
		`SELECT access_token, refresh_token FROM session_tokens WHERE id = 1`)

	var tokens models.StoredTokens
	if err := row.Scan(&tokens.Access, &tokens.Refresh); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StoredTokens{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return models.StoredTokens{}, fmt.Errorf("%s: %w", op, err)
	}

	return tokens, nil
}

// Save сохраняет пару целиком (upsert единственной строки).
func (s *Store) Save(ctx context.Context, access, refresh string) error {
	const op = "storage.sqlite.Save"

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_tokens (id, access_token, refresh_token, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token  = excluded.access_token,
			refresh_token = excluded.refresh_token,
			updated_at    = excluded.updated_at`,
		access, refresh, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SetAccess заменяет только access-токен существующей сессии.
func (s *Store) SetAccess(ctx context.Context, access string) error {
	const op = "storage.sqlite.SetAccess"

	res, err := s.db.ExecContext(ctx,
		`UPDATE session_tokens SET access_token = ?, updated_at = ? WHERE id = 1`,
		access, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// Clear удаляет сессию. Идемпотентна: отсутствие строки — не ошибка.
func (s *Store) Clear(ctx context.Context) error {
	const op = "storage.sqlite.Clear"

	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_tokens WHERE id = 1`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
