package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cleanhub/marketplace-api/internal/core/domain"
)

const roleTTL = 5 * time.Minute

// RoleCache caches role lookups backed by Redis so the admin gate does not
// hit the users collection on every privileged request. Entries expire
// after roleTTL and are invalidated on promotion or profile upsert.
// Key format: role:<email>
type RoleCache struct {
	client *redis.Client
}

// NewRoleCache creates a RoleCache wrapping the given Redis client.
func NewRoleCache(client *redis.Client) *RoleCache {
	return &RoleCache{client: client}
}

// Get returns the cached role for email and whether an entry was present.
func (c *RoleCache) Get(ctx context.Context, email string) (domain.Role, bool, error) {
	val, err := c.client.Get(ctx, c.key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("role cache get: %w", err)
	}
	return domain.ParseRole(val), true, nil
}

// Set records the role for email (expires after roleTTL).
func (c *RoleCache) Set(ctx context.Context, email string, role domain.Role) error {
	return c.client.Set(ctx, c.key(email), string(role), roleTTL).Err()
}

// Invalidate drops the cached role for email.
func (c *RoleCache) Invalidate(ctx context.Context, email string) error {
	return c.client.Del(ctx, c.key(email)).Err()
}

func (c *RoleCache) key(email string) string {
	return "role:" + email
}
