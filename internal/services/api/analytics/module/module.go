// Package module wires analytics into the API using modkit
package module

import (
	modkit "labqc/internal/modkit"
	"labqc/internal/modkit/httpkit"
	anhttp "labqc/internal/services/api/analytics/http"
	ansvc "labqc/internal/services/api/analytics/service"
	casesdom "labqc/internal/services/api/cases/domain"
)

// Ports declares the ports this module needs injected
type Ports struct {
	Cases casesdom.CaseLister
}

// New builds the analytics module; the cases port must be injected with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("analytics"), modkit.WithPrefix("/analytics")}, opts...)...)

	injected, _ := b.Ports.(Ports)
	if injected.Cases == nil {
		panic("analytics API module requires the CaseLister port (from cases)")
	}

	svc := ansvc.New(injected.Cases, ansvc.Options{
		Location:   FromConfig(deps.Cfg).Location,
		Registerer: deps.Prom,
	})
	return modkit.NewRouted(b, func(r httpkit.Router) { anhttp.Register(r, svc) })
}
