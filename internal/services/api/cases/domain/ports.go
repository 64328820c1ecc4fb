package domain

import "context"

// ServicePort is consumed by handlers
type ServicePort interface {
	Create(ctx context.Context, in CaseInput) (Case, error)
	Get(ctx context.Context, id string) (Case, error)
	Update(ctx context.Context, id string, in CaseInput) (Case, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, in SearchInput) (CaseList, error)
	CaseLister
}

// CaseLister is the port other modules use to read the full case set
// results are sorted newest first
type CaseLister interface {
	ListAll(ctx context.Context) ([]Case, error)
}
