package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
	"github.com/srgjo27/ferry_booking/internal/core/ports"
	"github.com/srgjo27/ferry_booking/internal/platform/logger"
)

const DefaultTTL = 24 * time.Hour

// SailingSource is a read-through Redis cache in front of another sailing
// source. Redis failures are logged and never fail a lookup.
type SailingSource struct {
	inner ports.SailingSource
	rdb   redis.Cmdable
	ttl   time.Duration
	log   logger.Logger
}

func NewSailingSource(inner ports.SailingSource, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *SailingSource {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SailingSource{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

func Key(q ports.SailingQuery) string {
	supplier := q.SupplierID
	if supplier == "" {
		supplier = "ALL"
	}
	return fmt.Sprintf("sailings:%s:%s:%s:%s", supplier, q.Date, q.DepartPort, q.ArrivePort)
}

func (c *SailingSource) Sailings(ctx context.Context, q ports.SailingQuery) ([]domain.Sailing, error) {
	key := Key(q)

	cached, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var sailings []domain.Sailing
		if jsonErr := json.Unmarshal(cached, &sailings); jsonErr == nil {
			c.log.Debug("Sailing cache hit", "key", key)
			return sailings, nil
		}
		c.log.Warn("Discarding unreadable cache entry", "key", key)
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("Sailing cache read failed", "key", key, "error", err)
	}

	sailings, err := c.inner.Sailings(ctx, q)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(sailings)
	if err != nil {
		return sailings, nil
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("Sailing cache write failed", "key", key, "error", err)
	}

	return sailings, nil
}
