package directory

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vitalsign-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of the users table this service needs.
type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// Service is the user directory: lookups plus credential updates. An unknown
// user is absence, not an error; only store trouble surfaces as an error.
type Service interface {
	// LookupByID returns the user, or nil when no such user exists.
	LookupByID(ctx context.Context, userID string) (*domain.User, error)
	// UpdateCredential stores a bcrypt hash of newPassword. It returns
	// (false, nil) when the user does not exist and true only once the new
	// hash is durably written.
	UpdateCredential(ctx context.Context, userID, newPassword string) (bool, error)
}

type service struct {
	users UserStore
}

func NewService(users UserStore) Service {
	return &service{users: users}
}

func (s *service) LookupByID(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) UpdateCredential(ctx context.Context, userID, newPassword string) (bool, error) {
	u, err := s.LookupByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	if err := s.users.Update(ctx, userID, map[string]interface{}{"password_hash": string(hash)}); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// User vanished between lookup and update.
			return false, nil
		}
		slog.Error("credential update failed", "op", "UpdateCredential", "user_id", userID, "err", err)
		return false, err
	}
	return true, nil
}
