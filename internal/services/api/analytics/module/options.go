package module

import (
	"time"

	"labqc/internal/platform/config"
	"labqc/internal/platform/logger"
)

// Options controls the analytics module
type Options struct {
	Location *time.Location // calendar used to decide "today"
}

// FromConfig reads CORE_API_TZ; an unknown zone falls back to UTC with a warning
func FromConfig(cfg config.Conf) Options {
	name := cfg.Prefix("CORE_API_").MayString("TZ", "UTC")
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Get().Warn().Err(err).Str("tz", name).Msg("analytics: unknown time zone, using UTC")
		loc = time.UTC
	}
	return Options{Location: loc}
}
