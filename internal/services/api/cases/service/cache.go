package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	perr "labqc/internal/platform/errors"
	"labqc/internal/platform/logger"
	"labqc/internal/platform/store"
	"labqc/internal/services/api/cases/domain"
)

// CacheVersion bumps whenever the cached payload shape changes
const CacheVersion = 1

// DefaultCacheTTL applies when no ttl is configured
const DefaultCacheTTL = 10 * time.Minute

// GenKey counts case writes; a list read under an older generation is never cached
const GenKey = "labqc:cases:gen"

// CacheKey returns the redis key of the full case list
func CacheKey() string { return fmt.Sprintf("labqc:cases:v%d", CacheVersion) }

type cachePayload struct {
	Version  int           `json:"version"`
	Gen      int64         `json:"gen"`
	CachedAt time.Time     `json:"cached_at"`
	Cases    []domain.Case `json:"cases"`
}

// listCache holds the full newest first case list
// a nil kv turns every call into a no-op; failures are logged and reported as a miss
// Store only writes a list read under the current generation and Load only serves one,
// so a read racing a write cannot outlive that write's Invalidate
type listCache struct {
	kv  store.KV
	ttl time.Duration
	now func() time.Time
}

func newListCache(kv store.KV, ttl time.Duration) *listCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &listCache{kv: kv, ttl: ttl, now: time.Now}
}

// Gen reads the write generation; ok is false when it cannot be read
func (c *listCache) Gen(ctx context.Context) (int64, bool) {
	if c == nil || c.kv == nil {
		return 0, false
	}
	raw, err := c.kv.Get(ctx, GenKey)
	if errors.Is(err, perr.ErrNotFound) {
		return 0, true
	}
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", GenKey).Msg("cases cache: generation read failed")
		return 0, false
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", GenKey).Msg("cases cache: corrupt generation")
		return 0, false
	}
	return n, true
}

// Load misses on an absent key, a version or generation mismatch or an empty payload
func (c *listCache) Load(ctx context.Context) ([]domain.Case, bool) {
	gen, ok := c.Gen(ctx)
	if !ok {
		return nil, false
	}
	raw, err := c.kv.Get(ctx, CacheKey())
	if errors.Is(err, perr.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", CacheKey()).Msg("cases cache: read failed")
		return nil, false
	}

	var p cachePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", CacheKey()).Msg("cases cache: corrupt payload")
		return nil, false
	}
	if p.Version != CacheVersion || p.Gen != gen || len(p.Cases) == 0 {
		return nil, false
	}
	return p.Cases, true
}

// Store writes a list read under gen; empty lists and lists that a write has since overtaken are not cached
func (c *listCache) Store(ctx context.Context, gen int64, cases []domain.Case) {
	if c == nil || c.kv == nil || len(cases) == 0 {
		return
	}
	if now, ok := c.Gen(ctx); !ok || now != gen {
		logger.C(ctx).Debug().Int64("read_gen", gen).Int64("gen", now).Msg("cases cache: stale list not stored")
		return
	}
	raw, err := json.Marshal(cachePayload{Version: CacheVersion, Gen: gen, CachedAt: c.now().UTC(), Cases: cases})
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("cases cache: encode failed")
		return
	}
	if err := c.kv.Set(ctx, CacheKey(), raw, c.ttl); err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", CacheKey()).Msg("cases cache: write failed")
	}
}

// Invalidate bumps the generation and drops the cached list after a write
func (c *listCache) Invalidate(ctx context.Context) {
	if c == nil || c.kv == nil {
		return
	}
	if _, err := c.kv.Incr(ctx, GenKey); err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", GenKey).Msg("cases cache: generation bump failed")
	}
	if err := c.kv.Del(ctx, CacheKey()); err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", CacheKey()).Msg("cases cache: invalidate failed")
	}
}
