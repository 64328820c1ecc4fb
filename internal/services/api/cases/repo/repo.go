// Package repo provides postgres access for cases
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"labqc/internal/core/analytics"
	"labqc/internal/modkit/repokit"
	perr "labqc/internal/platform/errors"
	"labqc/internal/platform/store"
)

// Repo defines the repository contract for cases
type Repo interface {
	Create(ctx context.Context, c analytics.Case) (analytics.Case, error)
	Get(ctx context.Context, id string) (analytics.Case, error)
	Update(ctx context.Context, c analytics.Case) (analytics.Case, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]analytics.Case, error)
	Search(ctx context.Context, f Filter, limit, offset int) ([]analytics.Case, error)
	Count(ctx context.Context, f Filter) (int, error)
}

// Filter narrows Search and Count; zero fields match everything
type Filter struct {
	FirstName string
	LastName  string
	From      *time.Time
	To        *time.Time
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const columns = `id::text, date_recorded, first_name, last_name,
margins, contacts, occlusion, color, contour, created_at`

// newest first with a stable tiebreak
const order = `order by date_recorded desc, created_at desc, id`

func scanCase(row store.Row) (analytics.Case, error) {
	var (
		c  analytics.Case
		sc analytics.Scores
	)
	if err := row.Scan(
		&c.ID,
		&c.DateRecorded,
		&c.FirstName,
		&c.LastName,
		&sc.Margins,
		&sc.Contacts,
		&sc.Occlusion,
		&sc.Color,
		&sc.Contour,
		&c.CreatedAt,
	); err != nil {
		return analytics.Case{}, err
	}
	c.Scores = sc
	c.DateRecorded = analytics.Date(c.DateRecorded)
	c.LastName = strings.TrimSpace(c.LastName)
	return c, nil
}

func (r *queries) Create(ctx context.Context, c analytics.Case) (analytics.Case, error) {
	const sql = `
insert into cases (id, date_recorded, first_name, last_name, margins, contacts, occlusion, color, contour, created_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
returning ` + columns
	out, err := store.One(ctx, r.q, scanCase, sql,
		c.ID, c.DateRecorded, c.FirstName, c.LastName,
		c.Scores.Margins, c.Scores.Contacts, c.Scores.Occlusion, c.Scores.Color, c.Scores.Contour,
		c.CreatedAt,
	)
	if err != nil {
		return analytics.Case{}, dbErr(err, "insert case")
	}
	return out, nil
}

func (r *queries) Get(ctx context.Context, id string) (analytics.Case, error) {
	const sql = `select ` + columns + ` from cases where id = $1::uuid`
	out, err := store.One(ctx, r.q, scanCase, sql, id)
	if err != nil {
		return analytics.Case{}, dbErr(err, "get case")
	}
	return out, nil
}

// Update replaces the date, name and scores; id and created_at never change
func (r *queries) Update(ctx context.Context, c analytics.Case) (analytics.Case, error) {
	const sql = `
update cases
set date_recorded = $2, first_name = $3, last_name = $4,
margins = $5, contacts = $6, occlusion = $7, color = $8, contour = $9
where id = $1::uuid
returning ` + columns
	out, err := store.One(ctx, r.q, scanCase, sql,
		c.ID, c.DateRecorded, c.FirstName, c.LastName,
		c.Scores.Margins, c.Scores.Contacts, c.Scores.Occlusion, c.Scores.Color, c.Scores.Contour,
	)
	if err != nil {
		return analytics.Case{}, dbErr(err, "update case")
	}
	return out, nil
}

func (r *queries) Delete(ctx context.Context, id string) error {
	const sql = `delete from cases where id = $1::uuid`
	return dbErr(store.ExecOne(ctx, r.q, sql, id), "delete case")
}

func (r *queries) ListAll(ctx context.Context) ([]analytics.Case, error) {
	const sql = `select ` + columns + ` from cases ` + order
	out, err := store.Many(ctx, r.q, scanCase, sql)
	if err != nil {
		return nil, dbErr(err, "list cases")
	}
	return out, nil
}

const where = `
where ($1 = '' or first_name ilike '%' || $1 || '%' escape '\')
and ($2 = '' or last_name ilike '%' || $2 || '%' escape '\')
and ($3::date is null or date_recorded >= $3::date)
and ($4::date is null or date_recorded <= $4::date)
`

func (r *queries) Search(ctx context.Context, f Filter, limit, offset int) ([]analytics.Case, error) {
	const sql = `select ` + columns + ` from cases` + where + order + ` limit $5 offset $6`
	out, err := store.Many(ctx, r.q, scanCase, sql, f.args(limit, offset)...)
	if err != nil {
		return nil, dbErr(err, "search cases")
	}
	return out, nil
}

func (r *queries) Count(ctx context.Context, f Filter) (int, error) {
	const sql = `select count(*)::int from cases` + where
	n, err := store.Scalar[int](ctx, r.q, sql, f.args()...)
	if err != nil {
		return 0, dbErr(err, "count cases")
	}
	return n, nil
}

func (f Filter) args(extra ...any) []any {
	out := []any{likeEscape(f.FirstName), likeEscape(f.LastName), f.From, f.To}
	return append(out, extra...)
}

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeEscape makes user input match literally inside an ilike pattern
func likeEscape(s string) string { return likeReplacer.Replace(s) }

func dbErr(err error, op string) error {
	if err == nil {
		return nil
	}
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf("case not found")
	}
	if field, ok := perr.CheckViolation(err, "cases"); ok {
		return perr.WithField(perr.Wrap(err, perr.ErrorCodeValidation, checkMessage(field)), field)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return perr.WithOp(perr.Unavailablef("cases store timed out"), "cases."+strings.ReplaceAll(op, " ", "_"))
	}
	return perr.WithOp(perr.FromPostgresWithField(err, op+" failed"), "cases."+strings.ReplaceAll(op, " ", "_"))
}

// checkMessage mirrors the service validation wording for rows the database rejected
func checkMessage(field string) string {
	switch field {
	case "first_name":
		return "first_name is required"
	case "margins", "contacts", "occlusion", "color", "contour":
		return field + " must be between 0 and 2"
	}
	return field + " is invalid"
}
