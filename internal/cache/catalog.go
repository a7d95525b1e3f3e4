package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ratil/internal/middleware"
	"ratil/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	CategoriesKey          = "catalog:categories"
	SubcategoriesKeyPrefix = "catalog:category:%d:subcategories"
)

// ListTTL bounds how long a cached catalog list may be served.
const ListTTL = 10 * time.Minute

func SubcategoriesKey(categoryID uint) string {
	return fmt.Sprintf(SubcategoriesKeyPrefix, categoryID)
}

// Aside serves dest from key when cached, otherwise calls load to fill dest
// and stores the result for ttl. Any Redis failure falls back to load; the
// value returned is the same either way.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func() error) error {
	if client == nil {
		return load()
	}

	raw, err := client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(raw, dest); jsonErr == nil {
			observability.CacheLookups.WithLabelValues("hit").Inc()
			return nil
		}
		observability.CacheLookups.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		observability.CacheLookups.WithLabelValues("miss").Inc()
	default:
		observability.CacheLookups.WithLabelValues("error").Inc()
	}

	if err := load(); err != nil {
		return err
	}

	payload, err := json.Marshal(dest)
	if err != nil {
		return nil
	}
	if err := client.Set(ctx, key, payload, ttl).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateCategories drops the cached category list.
func InvalidateCategories(ctx context.Context) {
	Invalidate(ctx, CategoriesKey)
}

// InvalidateSubcategories drops the cached subcategory list of one category.
func InvalidateSubcategories(ctx context.Context, categoryID uint) {
	Invalidate(ctx, SubcategoriesKey(categoryID))
}
