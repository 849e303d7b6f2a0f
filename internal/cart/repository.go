package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cartKeyPrefix = "cart:"

// Repository persists the full line-item list per session after every
// mutation and rehydrates it on access.
type Repository interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type redisRepository struct {
	client *redis.Client
}

func NewRepository(client *redis.Client) Repository {
	return &redisRepository{client: client}
}

// Load reads the serialized cart. A missing key is an empty cart.
func (r *redisRepository) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := r.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &Cart{}, nil
		}
		return nil, fmt.Errorf("repository: failed to load cart for session %s: %w", sessionID, err)
	}

	return decodeCart(raw, sessionID), nil
}

// decodeCart treats corrupt persisted state as an empty cart.
func decodeCart(raw []byte, sessionID string) *Cart {
	var cart Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("repository: corrupt persisted cart, starting empty")
		return &Cart{}
	}
	return &cart
}

func (r *redisRepository) Save(ctx context.Context, sessionID string, cart *Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("repository: failed to marshal cart for session %s: %w", sessionID, err)
	}

	if err := r.client.Set(ctx, cartKeyPrefix+sessionID, raw, 0).Err(); err != nil {
		return fmt.Errorf("repository: failed to save cart for session %s: %w", sessionID, err)
	}

	return nil
}

func (r *redisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("repository: failed to delete cart for session %s: %w", sessionID, err)
	}
	return nil
}
