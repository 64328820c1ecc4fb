// Package module wires cases into the API using modkit
package module

import (
	modkit "labqc/internal/modkit"
	"labqc/internal/modkit/httpkit"
	caseshttp "labqc/internal/services/api/cases/http"
	casesrepo "labqc/internal/services/api/cases/repo"
	casessvc "labqc/internal/services/api/cases/service"
)

// New builds the cases module and exports its CaseLister port
// the case list cache is enabled when deps carry a KV
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("cases"), modkit.WithPrefix("/cases")}, opts...)...)

	var svcOpts []casessvc.Option
	if deps.KV != nil {
		svcOpts = append(svcOpts, casessvc.WithCache(deps.KV, FromConfig(deps.Cfg).CacheTTL))
	}
	svc := casessvc.New(deps.PG, casesrepo.NewPG(), svcOpts...)

	b.Ports = Ports{Cases: adaptCasesPort{svc: svc}}
	return modkit.NewRouted(b, func(r httpkit.Router) { caseshttp.Register(r, svc) })
}
