package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// NotifyDeduper tracks processed gateway notify callbacks by trade id.
type NotifyDeduper interface {
	Seen(ctx context.Context, recTradeID string) (bool, error)
}

type redisNotifyDeduper struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (d *redisNotifyDeduper) Seen(ctx context.Context, recTradeID string) (bool, error) {
	key := d.prefix + ":" + recTradeID
	ok, err := d.client.SetNX(ctx, key, "1", d.ttl).Result()
	if err != nil {
		return false, err
	}
	// false => already exists => duplicate
	return !ok, nil
}

type memoryNotifyDeduper struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	ttl    time.Duration
	nextGC time.Time
}

func newMemoryNotifyDeduper(ttl time.Duration) *memoryNotifyDeduper {
	now := time.Now()
	return &memoryNotifyDeduper{
		seen:   make(map[string]time.Time),
		ttl:    ttl,
		nextGC: now.Add(ttl),
	}
}

func (d *memoryNotifyDeduper) Seen(_ context.Context, recTradeID string) (bool, error) {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if exp, ok := d.seen[recTradeID]; ok && exp.After(now) {
		return true, nil
	}

	d.seen[recTradeID] = now.Add(d.ttl)
	if now.After(d.nextGC) {
		for id, exp := range d.seen {
			if exp.Before(now) {
				delete(d.seen, id)
			}
		}
		d.nextGC = now.Add(d.ttl)
	}

	return false, nil
}

// NewNotifyDeduper builds a Redis deduper and falls back to in-memory on failure.
func NewNotifyDeduper(addr, pass string, db int, ttl time.Duration) (NotifyDeduper, error) {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if addr == "" {
		return newMemoryNotifyDeduper(ttl), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return newMemoryNotifyDeduper(ttl), err
	}

	return &redisNotifyDeduper{
		client: client,
		prefix: "tappay:notify",
		ttl:    ttl,
	}, nil
}

// NotifyDedup drops duplicate gateway notify callbacks by rec_trade_id.
func NotifyDedup(deduper NotifyDeduper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if deduper == nil {
				return next(c)
			}

			req := c.Request()
			if req.Body == nil {
				return next(c)
			}

			rawBody, err := io.ReadAll(req.Body)
			if err != nil {
				return next(c)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(rawBody))
			if len(rawBody) == 0 {
				return next(c)
			}

			var payload struct {
				RecTradeID string `json:"rec_trade_id"`
			}
			if err := json.Unmarshal(rawBody, &payload); err != nil || payload.RecTradeID == "" {
				return next(c)
			}

			isDuplicate, err := deduper.Seen(req.Context(), payload.RecTradeID)
			if err != nil {
				return next(c)
			}
			if isDuplicate {
				// The gateway only needs a 2xx response to stop retries.
				return c.NoContent(http.StatusOK)
			}

			return next(c)
		}
	}
}
