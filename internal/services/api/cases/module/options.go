package module

import (
	"time"

	"labqc/internal/platform/config"
	casessvc "labqc/internal/services/api/cases/service"
)

// Options controls the cases module
type Options struct {
	CacheTTL time.Duration // lifetime of the cached case list
}

// FromConfig reads SERVICE_REDIS_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("SERVICE_REDIS_")
	return Options{
		CacheTTL: rc.MayDuration("CACHE_TTL", casessvc.DefaultCacheTTL),
	}
}
