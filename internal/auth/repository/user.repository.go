package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"lifehub/internal/auth/model"
	"lifehub/pkg/apperr"
	"lifehub/pkg/logger"
)

const uniqueViolation = "23505"

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u model.User) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return apperr.NewValidationError("username", "a user with that username already exists")
		}
		logger.Sugar.Errorf("Failed to create user %s: %v", u.Username, err)
		return apperr.Unavailable(err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.getUser(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE username = $1`, username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getUser(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1`, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.getUser(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (r *UserRepository) getUser(ctx context.Context, query, arg string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return u, apperr.ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to load user: %v", err)
		return u, apperr.Unavailable(err)
	}
	return u, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		logger.Sugar.Errorf("Failed to update password for user %s: %v", userID, err)
		return apperr.Unavailable(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperr.Unavailable(err)
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *UserRepository) CreateResetToken(ctx context.Context, t model.ResetToken) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO password_reset_tokens (token, user_id, expires_at, used) VALUES ($1, $2, $3, false)`,
		t.Token, t.UserID, t.ExpiresAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to store reset token: %v", err)
		return apperr.Unavailable(err)
	}
	return nil
}

func (r *UserRepository) GetResetToken(ctx context.Context, token string) (model.ResetToken, error) {
	var t model.ResetToken
	err := r.DB.QueryRowContext(ctx,
		`SELECT token, user_id, expires_at, used FROM password_reset_tokens WHERE token = $1`, token).
		Scan(&t.Token, &t.UserID, &t.ExpiresAt, &t.Used)
	if err == sql.ErrNoRows {
		return t, apperr.ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to load reset token: %v", err)
		return t, apperr.Unavailable(err)
	}
	return t, nil
}

func (r *UserRepository) MarkTokenUsed(ctx context.Context, token string) error {
	if _, err := r.DB.ExecContext(ctx,
		`UPDATE password_reset_tokens SET used = true WHERE token = $1`, token); err != nil {
		logger.Sugar.Errorf("Failed to mark reset token used: %v", err)
		return apperr.Unavailable(err)
	}
	return nil
}

// PurgeExpiredTokens removes reset tokens past their expiry. Run from the
// cron job.
func (r *UserRepository) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM password_reset_tokens WHERE expires_at < now()`)
	if err != nil {
		logger.Sugar.Errorf("Failed to purge expired reset tokens: %v", err)
		return 0, apperr.Unavailable(err)
	}
	return result.RowsAffected()
}
