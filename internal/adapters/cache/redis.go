package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ViewCache drops cached rendered-view entries so the storefront picks up
// a mutation on the next request. It is deliberately not a caching layer of
// its own: the only operation the core needs is key deletion.
type ViewCache struct {
	client *redis.Client
}

func NewViewCache(client *redis.Client) *ViewCache {
	return &ViewCache{client: client}
}

// Refresh deletes the view entries for the given paths. Failures are logged
// and swallowed; a stale view is never worth failing a cart or admin
// action.
func (c *ViewCache) Refresh(ctx context.Context, paths ...string) {
	if c == nil || c.client == nil || len(paths) == 0 {
		return
	}

	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = viewKey(p)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("view cache invalidate")
	}
}

func viewKey(path string) string {
	return fmt.Sprintf("view:%s", path)
}
