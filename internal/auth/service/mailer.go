package service

import (
	"context"

	"lifehub/pkg/logger"
)

// Mailer delivers the password reset link. Actual email transport is an
// external collaborator; the service only depends on this port.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, link string) error
}

// LogMailer writes the reset link to the log instead of sending it. Used in
// development and as the default when no real mailer is wired in.
type LogMailer struct{}

func (LogMailer) SendPasswordReset(_ context.Context, email, link string) error {
	logger.Sugar.Infof("Password reset requested for %s: %s", email, link)
	return nil
}
