// Package repokit holds the small pieces repositories and services share:
// the store seams, repo binders and transaction begin hooks
package repokit

import (
	"context"
	"fmt"
	"time"

	"labqc/internal/platform/store"
)

type (
	// Queryer is what a bound repo runs statements against, a pool or a tx
	Queryer = store.RowQuerier

	// TxRunner is a Queryer that can also open a transaction
	TxRunner = store.TxRunner
)

// Binder binds a repo to a Queryer so the same repo code runs inside or outside a tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a func to a Binder, mostly for tests
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// BeginHook runs first inside every transaction opened through WithBeginHooks
type BeginHook func(ctx context.Context, q Queryer) error

// StatementTimeout scopes a server side statement_timeout to the transaction
func StatementTimeout(d time.Duration) BeginHook {
	sql := fmt.Sprintf("SET LOCAL statement_timeout = %d", d.Milliseconds())
	return func(ctx context.Context, q Queryer) error {
		_, err := q.Exec(ctx, sql)
		return err
	}
}

// WithBeginHooks runs hooks at the start of each Tx on inner; non tx calls pass through
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hookedTx{TxRunner: inner, hooks: hooks}
}

type hookedTx struct {
	TxRunner
	hooks []BeginHook
}

func (h hookedTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hk := range h.hooks {
			if err := hk(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

// MustGuard panics when st fails its startup checks
func MustGuard(ctx context.Context, st interface{ Guard(context.Context) error }) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
