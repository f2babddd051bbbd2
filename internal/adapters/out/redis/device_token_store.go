// Package redis keeps push device tokens in Redis, one string key per actor.
package redis

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "fooddelivery:device_token:"

// DeviceTokenStore implements ports.DeviceTokenStore.
type DeviceTokenStore struct {
	client goredis.Cmdable
	prefix string
}

var _ ports.DeviceTokenStore = (*DeviceTokenStore)(nil)

func NewDeviceTokenStore(client goredis.Cmdable) *DeviceTokenStore {
	return &DeviceTokenStore{client: client, prefix: defaultKeyPrefix}
}

func (s *DeviceTokenStore) TokenFor(ctx context.Context, actorID kernel.UUID) (actor.DeviceToken, bool, error) {
	value, err := s.client.Get(ctx, s.key(actorID)).Result()
	if errors.Is(err, goredis.Nil) {
		return actor.DeviceToken{}, false, nil
	}
	if err != nil {
		return actor.DeviceToken{}, false, fmt.Errorf("read device token of %s: %w", actorID, err)
	}

	token, err := actor.NewDeviceToken(value)
	if err != nil {
		return actor.DeviceToken{}, false, err
	}
	return token, true, nil
}

// RegisterToken overwrites the key; SET is atomic so the last writer wins.
func (s *DeviceTokenStore) RegisterToken(ctx context.Context, actorID kernel.UUID, token actor.DeviceToken) error {
	if err := errors.Join(actorID.Validate(), token.Validate()); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(actorID), token.String(), 0).Err(); err != nil {
		return fmt.Errorf("store device token of %s: %w", actorID, err)
	}
	return nil
}

func (s *DeviceTokenStore) key(actorID kernel.UUID) string {
	return s.prefix + actorID.String()
}
