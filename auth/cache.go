package auth

import (
	"context"
	"encoding/binary"
	"errors"
	"time"

	"github.com/allegro/bigcache/v3"
)

type (
	// TokenCache remembers tokens that already passed verification, so
	// repeated requests skip the signature check. Entries still honor the
	// token expiry.
	TokenCache struct {
		cache *bigcache.BigCache
	}
)

const (
	entrySize = 16
)

func NewTokenCache(ctx context.Context, lifetime time.Duration) (*TokenCache, error) {
	cfg := bigcache.DefaultConfig(lifetime)
	cfg.Verbose = false
	cache, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &TokenCache{cache: cache}, nil
}

func (c *TokenCache) Save(token string, caller int64, expires time.Time) error {
	var buf [entrySize]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(caller))
	binary.BigEndian.PutUint64(buf[8:], uint64(expires.Unix()))
	return c.cache.Set(token, buf[:])
}

// Lookup returns the caller bound to token, as long as the token was
// saved and has not expired at now.
func (c *TokenCache) Lookup(token string, now time.Time) (int64, bool, error) {
	buf, err := c.cache.Get(token)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	if len(buf) != entrySize {
		c.cache.Delete(token)
		return 0, false, nil
	}
	expires := time.Unix(int64(binary.BigEndian.Uint64(buf[8:])), 0)
	if !now.Before(expires) {
		c.cache.Delete(token)
		return 0, false, nil
	}
	return int64(binary.BigEndian.Uint64(buf[:8])), true, nil
}

func (c *TokenCache) Close() error {
	return c.cache.Close()
}
