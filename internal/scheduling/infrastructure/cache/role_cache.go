// Package cache provides a Redis read-through layer over the role
// repository. Roles are small and read on every generation request, so a
// short TTL takes most lookups off the database.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dimun/agendalo/internal/scheduling/domain"
)

// DefaultTTL is how long a cached role stays fresh.
const DefaultTTL = 5 * time.Minute

// RoleCache decorates a RoleRepository with Redis caching. Cache failures
// degrade to the underlying repository, never to an error.
type RoleCache struct {
	inner  domain.RoleRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRoleCache wraps a role repository with a Redis cache.
func NewRoleCache(inner domain.RoleRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *RoleCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RoleCache{inner: inner, client: client, ttl: ttl, logger: logger}
}

func roleKey(id uuid.UUID) string { return "agendalo:role:" + id.String() }

// Create writes through and invalidates any stale entry.
func (c *RoleCache) Create(ctx context.Context, role domain.Role) error {
	if err := c.inner.Create(ctx, role); err != nil {
		return err
	}
	if err := c.client.Del(ctx, roleKey(role.ID)).Err(); err != nil {
		c.logger.Warn("role cache invalidation failed", "role_id", role.ID, "error", err)
	}
	return nil
}

// FindByID serves from Redis when possible. A missing role is not cached,
// so creation is visible immediately.
func (c *RoleCache) FindByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	payload, err := c.client.Get(ctx, roleKey(id)).Bytes()
	if err == nil {
		var role domain.Role
		if err := json.Unmarshal(payload, &role); err == nil {
			return &role, nil
		}
		c.logger.Warn("role cache entry corrupt, falling through", "role_id", id)
	} else if err != redis.Nil {
		c.logger.Warn("role cache read failed", "role_id", id, "error", err)
	}

	role, err := c.inner.FindByID(ctx, id)
	if err != nil || role == nil {
		return role, err
	}

	if payload, err := json.Marshal(role); err == nil {
		if err := c.client.Set(ctx, roleKey(id), payload, c.ttl).Err(); err != nil {
			c.logger.Warn("role cache write failed", "role_id", id, "error", err)
		}
	}
	return role, nil
}

// FindAll always hits the repository; the listing is not cached.
func (c *RoleCache) FindAll(ctx context.Context) ([]domain.Role, error) {
	return c.inner.FindAll(ctx)
}
