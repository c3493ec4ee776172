package credreset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vitalsign-api/internal/application/directory"
	"github.com/vitalsign-api/internal/application/verification"
	"github.com/vitalsign-api/internal/domain"
	"github.com/vitalsign-api/internal/infrastructure/smtp"
	"github.com/vitalsign-api/internal/infrastructure/sns"
)

// Service orchestrates the credential-recovery workflow: issuing a reset code
// to a known user, and exchanging a valid code for a credential update. Each
// call is a single attempt; retry policy belongs to the caller.
type Service interface {
	// RequestReset issues a password_reset code and delivers it to the
	// user's email (and phone when one is on file).
	RequestReset(ctx context.Context, userID string) error
	// ResetPassword validates the code and persists the new credential.
	// Failures map onto the domain sentinels: ErrBadRequest for missing
	// input, ErrUnauthorized for a wrong or expired code, ErrUpdateFailed
	// when the credential could not be stored.
	ResetPassword(ctx context.Context, userID, code, newPassword string) error
}

type service struct {
	codes     verification.Service
	directory directory.Service
	mailer    smtp.Mailer
	smsSender sns.SMSSender
}

func NewService(codes verification.Service, dir directory.Service, mailer smtp.Mailer, smsSender sns.SMSSender) Service {
	return &service{codes: codes, directory: dir, mailer: mailer, smsSender: smsSender}
}

func (s *service) RequestReset(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("userId required: %w", domain.ErrBadRequest)
	}
	u, err := s.directory.LookupByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}

	code, err := s.codes.Issue(ctx, userID, domain.PurposePasswordReset)
	if err != nil {
		return err
	}

	if err := s.mailer.SendEmail(u.Email, "Password reset code", "Your verification code: "+code); err != nil {
		return err
	}
	if u.Phone != nil && s.smsSender != nil {
		if err := s.smsSender.SendSMS(ctx, *u.Phone, "Your verification code: "+code); err != nil {
			slog.Warn("sms delivery failed, code sent by email", "op", "RequestReset", "user_id", userID, "err", err)
		}
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, userID, code, newPassword string) error {
	if userID == "" || code == "" || newPassword == "" {
		return fmt.Errorf("userId, code and newPassword required: %w", domain.ErrBadRequest)
	}

	ok, err := s.codes.Verify(ctx, userID, code, domain.PurposePasswordReset)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("verification failed for user %s: %w", userID, domain.ErrUnauthorized)
	}

	updated, err := s.directory.UpdateCredential(ctx, userID, newPassword)
	if err != nil {
		slog.Error("password update failed", "op", "ResetPassword", "user_id", userID, "err", err)
		return fmt.Errorf("persist credential: %w", domain.ErrUpdateFailed)
	}
	if !updated {
		return fmt.Errorf("no such user %s: %w", userID, domain.ErrUpdateFailed)
	}
	return nil
}
