package module

import (
	"context"

	casesdom "labqc/internal/services/api/cases/domain"
	casessvc "labqc/internal/services/api/cases/service"
)

// Ports is the bundle other modules pull from this module
type Ports struct {
	Cases casesdom.CaseLister
}

// adaptCasesPort narrows the cases service to the read port
type adaptCasesPort struct{ svc casessvc.Service }

// ListAll implements casesdom.CaseLister
func (a adaptCasesPort) ListAll(ctx context.Context) ([]casesdom.Case, error) {
	return a.svc.ListAll(ctx)
}
