package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lifehub/internal/auth/model"
	"lifehub/internal/auth/repository"
	"lifehub/internal/auth/session"
	"lifehub/pkg/apperr"
	"lifehub/pkg/logger"
	"lifehub/pkg/validate"
)

// AuthService owns registration, login and the password reset flow.
type AuthService struct {
	Repo     *repository.UserRepository
	Sessions *session.Manager
	Mailer   Mailer

	// ResetBaseURL is the public confirm-step URL the reset token is
	// appended to. ResetTTL bounds how long a token stays valid.
	ResetBaseURL string
	ResetTTL     time.Duration
}

func New(repo *repository.UserRepository, sessions *session.Manager, mailer Mailer, resetBaseURL string) *AuthService {
	return &AuthService{
		Repo:         repo,
		Sessions:     sessions,
		Mailer:       mailer,
		ResetBaseURL: resetBaseURL,
		ResetTTL:     time.Hour,
	}
}

// Register creates the account and immediately issues a session for it, so
// a fresh user lands logged in. No user is created when validation fails.
func (s *AuthService) Register(ctx context.Context, f model.RegisterForm) (model.User, string, error) {
	if err := validate.Struct(&f); err != nil {
		return model.User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password1), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, "", apperr.Unavailable(err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Username:     f.Username,
		Email:        f.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return model.User{}, "", err
	}

	token, err := s.Sessions.Issue(user.ID)
	if err != nil {
		return model.User{}, "", apperr.Unavailable(err)
	}
	logger.Sugar.Infof("Registered user %s", user.Username)
	return user, token, nil
}

// Login verifies the credentials and issues a session. Unknown username and
// wrong password produce the same message.
func (s *AuthService) Login(ctx context.Context, f model.LoginForm) (model.User, string, error) {
	if err := validate.Struct(&f); err != nil {
		return model.User{}, "", err
	}

	badCredentials := apperr.NewValidationError("form", "please enter a correct username and password")

	user, err := s.Repo.GetByUsername(ctx, f.Username)
	if apperr.IsNotFound(err) {
		return model.User{}, "", badCredentials
	}
	if err != nil {
		return model.User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(f.Password)) != nil {
		return model.User{}, "", badCredentials
	}

	token, err := s.Sessions.Issue(user.ID)
	if err != nil {
		return model.User{}, "", apperr.Unavailable(err)
	}
	return user, token, nil
}

// StartPasswordReset creates a reset token and mails the link. An email
// with no matching account succeeds silently so the endpoint cannot be used
// to probe for accounts.
func (s *AuthService) StartPasswordReset(ctx context.Context, f model.PasswordResetForm) error {
	if err := validate.Struct(&f); err != nil {
		return err
	}

	user, err := s.Repo.GetByEmail(ctx, f.Email)
	if apperr.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}

	token := model.ResetToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(s.ResetTTL),
	}
	if err := s.Repo.CreateResetToken(ctx, token); err != nil {
		return err
	}
	return s.Mailer.SendPasswordReset(ctx, user.Email, s.ResetBaseURL+token.Token+"/")
}

// CheckResetToken reports whether the confirm step may be shown. Missing,
// used and expired tokens are all the same not-found.
func (s *AuthService) CheckResetToken(ctx context.Context, token string) error {
	t, err := s.Repo.GetResetToken(ctx, token)
	if err != nil {
		return err
	}
	if t.Used || time.Now().UTC().After(t.ExpiresAt) {
		return apperr.ErrNotFound
	}
	return nil
}

// ConfirmPasswordReset sets the new password and burns the token.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token string, f model.PasswordResetConfirmForm) error {
	t, err := s.Repo.GetResetToken(ctx, token)
	if err != nil {
		return err
	}
	if t.Used || time.Now().UTC().After(t.ExpiresAt) {
		return apperr.ErrNotFound
	}

	if err := validate.Struct(&f); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password1), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Unavailable(err)
	}
	if err := s.Repo.UpdatePassword(ctx, t.UserID, string(hash)); err != nil {
		return err
	}
	return s.Repo.MarkTokenUsed(ctx, token)
}

// PurgeExpiredTokens is the cron entry point.
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) {
	n, err := s.Repo.PurgeExpiredTokens(ctx)
	if err != nil {
		return
	}
	if n > 0 {
		logger.Sugar.Infof("Purged %d expired password reset tokens", n)
	}
}
