// Package module holds the module contract and the port registry used to wire modules together
package module

import phttp "labqc/internal/platform/net/http"

// Module is one mountable slice of the API, for example cases or analytics
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
