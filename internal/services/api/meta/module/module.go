// Package module wires meta endpoints into the API
package module

import (
	"time"

	modkit "labqc/internal/modkit"
	"labqc/internal/modkit/httpkit"
	metahttp "labqc/internal/services/api/meta/http"
)

// New builds the meta module; uptime counts from this call
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)

	hd := metahttp.Deps{
		StartedAt: time.Now(),
		PG:        deps.PG,
		KV:        deps.KV,
	}
	return modkit.NewRouted(b, func(r httpkit.Router) { metahttp.Register(r, hd) })
}
