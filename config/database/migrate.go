package database

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent so the server
// can run it unconditionally at startup.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id uuid PRIMARY KEY,
			username text NOT NULL UNIQUE,
			email text NOT NULL,
			password_hash text NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id uuid PRIMARY KEY,
			owner_id uuid REFERENCES users(id) ON DELETE CASCADE,
			title text,
			description text,
			complete boolean NOT NULL DEFAULT false,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS goals (
			id uuid PRIMARY KEY,
			owner_id uuid REFERENCES users(id) ON DELETE CASCADE,
			title text,
			description text,
			complete boolean NOT NULL DEFAULT false,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS quotes (
			id uuid PRIMARY KEY,
			owner_id uuid REFERENCES users(id) ON DELETE CASCADE,
			author text,
			quote text,
			category text,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			id uuid PRIMARY KEY,
			owner_id uuid REFERENCES users(id) ON DELETE CASCADE,
			author text,
			title text,
			genre text,
			complete boolean NOT NULL DEFAULT false,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS password_reset_tokens (
			token uuid PRIMARY KEY,
			user_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at timestamptz NOT NULL,
			used boolean NOT NULL DEFAULT false
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_goals_owner ON goals(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_owner ON quotes(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_books_owner ON books(owner_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
