package cache

import (
	"context"
	"errors"
	"time"

	"github.com/vitalsign-api/internal/domain"
)

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Service exposes the shared KV store as an ad-hoc cache. Entries are
// unstructured strings, last write wins.
type Service interface {
	// GetItem fetches the configured item key. found is false when the key
	// has never been written (or has expired).
	GetItem(ctx context.Context) (value string, found bool, err error)
	SaveItem(ctx context.Context, key, value string) error
}

type service struct {
	kv      kvStore
	itemKey string
}

func NewService(kv kvStore, itemKey string) Service {
	return &service{kv: kv, itemKey: itemKey}
}

func (s *service) GetItem(ctx context.Context) (string, bool, error) {
	v, err := s.kv.Get(ctx, s.itemKey)
	if errors.Is(err, domain.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *service) SaveItem(ctx context.Context, key, value string) error {
	if key == "" {
		return domain.ErrBadRequest
	}
	return s.kv.Set(ctx, key, value, 0)
}
