package modkit

import (
	"labqc/internal/modkit/repokit"
	"labqc/internal/platform/config"
	"labqc/internal/platform/logger"
	"labqc/internal/platform/store"

	"github.com/prometheus/client_golang/prometheus"
)

// Deps is what every module New receives
// KV and Prom are optional; a nil KV disables the case list cache
type Deps struct {
	Log  logger.Logger
	Cfg  config.Conf
	PG   repokit.TxRunner
	KV   store.KV
	Prom prometheus.Registerer
}
