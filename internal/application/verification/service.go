package verification

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/vitalsign-api/internal/domain"
)

// KVStore is the slice of the shared key-value store this service needs.
// CompareAndDelete must be atomic so a code is consumed at most once even
// under concurrent verifiers.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	CompareAndDelete(ctx context.Context, key, expected string) (bool, error)
}

// Service issues and consumes one-shot verification codes, keyed by
// (user, purpose). Reissuing overwrites the previous code for the same key.
type Service interface {
	Issue(ctx context.Context, userID, purpose string) (string, error)
	Verify(ctx context.Context, userID, code, purpose string) (bool, error)
}

type service struct {
	kv  KVStore
	ttl time.Duration
}

func NewService(kv KVStore, ttl time.Duration) Service {
	return &service{kv: kv, ttl: ttl}
}

func key(userID, purpose string) string {
	return "verification:" + purpose + ":" + userID
}

func (s *service) Issue(ctx context.Context, userID, purpose string) (string, error) {
	if userID == "" || purpose == "" {
		return "", fmt.Errorf("user id and purpose required: %w", domain.ErrBadRequest)
	}

	n, err := rand.Int(rand.Reader, big.NewInt(999999))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	v := domain.VerificationCode{
		UserID:    userID,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: time.Now().Add(s.ttl).Unix(),
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	// The key TTL mirrors ExpiresAt so Redis evicts stale records on its own;
	// Verify still checks ExpiresAt in-process and never trusts eviction.
	if err := s.kv.Set(ctx, key(userID, purpose), string(raw), s.ttl); err != nil {
		return "", err
	}
	return code, nil
}

func (s *service) Verify(ctx context.Context, userID, code, purpose string) (bool, error) {
	// Empty input can never match; skip the store round trip.
	if userID == "" || code == "" || purpose == "" {
		return false, nil
	}

	k := key(userID, purpose)
	raw, err := s.kv.Get(ctx, k)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var v domain.VerificationCode
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		slog.Warn("discarding malformed verification record", "user_id", userID, "purpose", purpose)
		return false, nil
	}

	now := time.Now()
	if v.Expired(now) {
		// Not yet evicted but unusable; clear it so replays stop early.
		if _, err := s.kv.CompareAndDelete(ctx, k, raw); err != nil {
			slog.Warn("failed to evict expired verification code", "user_id", userID, "purpose", purpose, "err", err)
		}
		return false, nil
	}
	if !v.Matches(code, now) {
		return false, nil
	}

	// Consume exactly the bytes we validated. A false return means another
	// verifier won the race or the code was reissued; either way this
	// attempt does not count as a success.
	return s.kv.CompareAndDelete(ctx, k, raw)
}
