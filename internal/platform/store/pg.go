package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"labqc/internal/platform/logger"
)

// boot ping backoff, postgres is often still starting next to the api in compose
const (
	pingAttempts   = 20
	pingTimeout    = 3 * time.Second
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// pgxConn is what a pool and a transaction have in common
type pgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func openPG(ctx context.Context, cfg PGConfig, log logger.Logger) (*pgDB, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg config: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	var lastErr error
	backoff := backoffStart
	for i := 0; i < pingAttempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			tr := newSQLTrace(log, cfg.LogSQL, time.Duration(cfg.SlowMs)*time.Millisecond)
			return &pgDB{pool: pool, querier: querier{conn: pool, trace: tr}}, nil
		}
		if ctx.Err() != nil {
			pool.Close()
			return nil, ctx.Err()
		}
		time.Sleep(backoff)
		backoff = min(backoff*2, backoffCeiling)
	}
	pool.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", pingAttempts, lastErr)
}

// pgDB is the TxRunner over a pgx pool
type pgDB struct {
	querier
	pool *pgxpool.Pool
}

var _ TxRunner = (*pgDB)(nil)

func (d *pgDB) Ping(ctx context.Context) error { return d.pool.Ping(ctx) }

func (d *pgDB) Close() error { d.pool.Close(); return nil }

func (d *pgDB) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(querier{conn: tx, trace: d.trace}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// querier adapts a pgx connection to RowQuerier and reports each statement to the trace
type querier struct {
	conn  pgxConn
	trace *sqlTrace
}

func (q querier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := q.conn.Exec(ctx, sql, args...)
	q.trace.done(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return ct, nil
}

func (q querier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.conn.Query(ctx, sql, args...)
	q.trace.done(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// QueryRow is traced once Scan returns, pgx defers the round trip until then
func (q querier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return tracedRow{Row: q.conn.QueryRow(ctx, sql, args...), done: func(err error) {
		q.trace.done(ctx, sql, args, start, err)
	}}
}

type tracedRow struct {
	pgx.Row
	done func(error)
}

func (r tracedRow) Scan(dst ...any) error {
	err := r.Row.Scan(dst...)
	r.done(err)
	return err
}

// sqlTrace logs every statement when all is set and slow ones regardless
// a nil trace logs nothing
type sqlTrace struct {
	log  logger.Logger
	all  bool
	slow time.Duration
}

func newSQLTrace(log logger.Logger, all bool, slow time.Duration) *sqlTrace {
	if !all && slow <= 0 {
		return nil
	}
	// LOG_SQL output must not depend on the root level
	l := log.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return &sqlTrace{log: l, all: all, slow: slow}
}

func (t *sqlTrace) done(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if t == nil {
		return
	}
	elapsed := time.Since(start)
	slow := t.slow > 0 && elapsed >= t.slow
	var ev *zerolog.Event
	switch {
	case slow:
		ev = t.log.Warn()
	case t.all:
		ev = t.log.Info()
	default:
		return
	}
	if id, ok := logger.RequestID(ctx); ok {
		ev = ev.Str("request_id", id)
	}
	ev.Dur("elapsed", elapsed).
		Bool("slow", slow).
		Str("sql", compactSQL(sql)).
		Int("args", len(args)).
		Err(err).
		Msg("pg query")
}

// compactSQL folds the multi line statements the repositories write into one log line
func compactSQL(s string) string { return strings.Join(strings.Fields(s), " ") }
