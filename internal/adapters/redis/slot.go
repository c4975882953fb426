// Package redis provides the Redis-backed identity slot for the portal.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/campusbook/sections-ui/internal/session"
)

// defaultSlotKey is used when no key is configured.
const defaultSlotKey = "sections-ui:identity"

// IdentitySlot stores the serialized identity under a single fixed key.
// The portal serves one user per process, so one slot is all there is.
// Values carry no TTL: the identity persists until logout clears it.
type IdentitySlot struct {
	client redis.UniversalClient
	key    string
}

var _ session.IdentitySlot = (*IdentitySlot)(nil)

// NewIdentitySlot creates a slot using the default key.
func NewIdentitySlot(client redis.UniversalClient) *IdentitySlot {
	return NewIdentitySlotWithKey(client, defaultSlotKey)
}

// NewIdentitySlotWithKey creates a slot with a custom key.
func NewIdentitySlotWithKey(client redis.UniversalClient, key string) *IdentitySlot {
	if key == "" {
		key = defaultSlotKey
	}
	return &IdentitySlot{client: client, key: key}
}

func (s *IdentitySlot) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrSlotEmpty
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (s *IdentitySlot) Write(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *IdentitySlot) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
