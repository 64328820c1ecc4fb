// Package modkit builds the labqc API modules and carries their shared dependencies
package modkit

import (
	"strings"

	"labqc/internal/modkit/httpkit"
	"labqc/internal/modkit/module"
)

// Module is re-exported so service packages import only modkit
type Module = module.Module

// Routed is a module defined by its configuration and a route registration func
type Routed struct {
	b        Built
	register func(httpkit.Router)
}

// NewRouted panics on a missing name or a prefix without a leading slash
// both are wiring bugs caught at startup
func NewRouted(b Built, register func(httpkit.Router)) *Routed {
	if b.Name == "" {
		panic("modkit: module name is required")
	}
	if !strings.HasPrefix(b.Prefix, "/") {
		panic("modkit: module " + b.Name + " prefix must start with /")
	}
	return &Routed{b: b, register: register}
}

func (m *Routed) Name() string { return m.b.Name }

func (m *Routed) Prefix() string { return m.b.Prefix }

func (m *Routed) Ports() any { return m.b.Ports }

// MountRoutes registers the module below its prefix behind its own middleware
func (m *Routed) MountRoutes(r httpkit.Router) {
	r.Route(m.b.Prefix, func(rr httpkit.Router) {
		if len(m.b.Mw) > 0 {
			rr.Use(m.b.Mw...)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}
