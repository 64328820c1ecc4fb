// Package service contains case record workflows
package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"labqc/internal/core/analytics"
	"labqc/internal/core/normalize"
	"labqc/internal/modkit/repokit"
	perr "labqc/internal/platform/errors"
	"labqc/internal/platform/store"
	"labqc/internal/services/api/cases/domain"
	"labqc/internal/services/api/cases/repo"

	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"

	defaultPageSize = 50
	maxPageSize     = 200

	// DefaultStatementTimeout bounds every write transaction
	DefaultStatementTimeout = 5 * time.Second
)

// Service defines the service contract for cases
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	cache  *listCache
	now    func() time.Time
}

// Option configures a Svc
type Option func(*Svc)

// WithCache enables the redis backed case list cache
func WithCache(kv store.KV, ttl time.Duration) Option {
	return func(s *Svc) { s.cache = newListCache(kv, ttl) }
}

// WithClock overrides the clock used for created_at
func WithClock(now func() time.Time) Option {
	return func(s *Svc) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a new cases service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opts ...Option) *Svc {
	if db == nil {
		panic("cases.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("cases.Service requires a non nil Repo binder")
	}
	s := &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     repokit.WithBeginHooks(db, repokit.StatementTimeout(DefaultStatementTimeout)),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.cache != nil {
		s.cache.now = s.now
	}
	return s
}

// Create validates in and stores a new case with a fresh id
func (s *Svc) Create(ctx context.Context, in domain.CaseInput) (domain.Case, error) {
	c, err := toCase(in)
	if err != nil {
		return domain.Case{}, err
	}
	c.ID = uuid.NewString()
	c.CreatedAt = s.now().UTC().Truncate(time.Microsecond)

	var out domain.Case
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		var e error
		out, e = s.binder.Bind(q).Create(ctx, c)
		return e
	})
	if err != nil {
		return domain.Case{}, err
	}
	s.cache.Invalidate(ctx)
	return out, nil
}

// Get returns one case by id
func (s *Svc) Get(ctx context.Context, id string) (domain.Case, error) {
	if err := checkID(id); err != nil {
		return domain.Case{}, err
	}
	return s.Repo.Get(ctx, id)
}

// Update replaces date, name and scores of an existing case
func (s *Svc) Update(ctx context.Context, id string, in domain.CaseInput) (domain.Case, error) {
	if err := checkID(id); err != nil {
		return domain.Case{}, err
	}
	c, err := toCase(in)
	if err != nil {
		return domain.Case{}, err
	}
	c.ID = id

	var out domain.Case
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		var e error
		out, e = s.binder.Bind(q).Update(ctx, c)
		return e
	})
	if err != nil {
		return domain.Case{}, err
	}
	s.cache.Invalidate(ctx)
	return out, nil
}

// Delete removes a case
func (s *Svc) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		return s.binder.Bind(q).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// Search pages through cases matching in, newest first
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) (domain.CaseList, error) {
	f := repo.Filter{
		FirstName: normalize.Text(in.FirstName),
		LastName:  normalize.Text(in.LastName),
	}
	var err error
	if f.From, err = optDate(in.DateFrom, "dateFrom"); err != nil {
		return domain.CaseList{}, err
	}
	if f.To, err = optDate(in.DateTo, "dateTo"); err != nil {
		return domain.CaseList{}, err
	}

	page, size := in.Page, in.PageSize
	if page < 1 {
		page = 1
	}
	switch {
	case size <= 0:
		size = defaultPageSize
	case size > maxPageSize:
		size = maxPageSize
	}

	total, err := s.Repo.Count(ctx, f)
	if err != nil {
		return domain.CaseList{}, err
	}
	items := []domain.Case{}
	if total > (page-1)*size {
		if items, err = s.Repo.Search(ctx, f, size, (page-1)*size); err != nil {
			return domain.CaseList{}, err
		}
	}
	return domain.CaseList{Items: items, Total: total, Page: page, PageSize: size}, nil
}

// ListAll returns every case newest first, served from the cache when warm
func (s *Svc) ListAll(ctx context.Context) ([]domain.Case, error) {
	if cases, ok := s.cache.Load(ctx); ok {
		return cases, nil
	}
	gen, cacheable := s.cache.Gen(ctx)
	cases, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.cache.Store(ctx, gen, cases)
	}
	return cases, nil
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return perr.WithField(perr.InvalidArgf("invalid case id %q", id), "id")
	}
	return nil
}

func optDate(s, field string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, perr.WithField(perr.Validationf("%s must be a YYYY-MM-DD date", field), field)
	}
	return &d, nil
}

// toCase validates and canonicalizes a create or update payload
func toCase(in domain.CaseInput) (analytics.Case, error) {
	d, err := optDate(in.DateRecorded, "dateRecorded")
	if err != nil {
		return analytics.Case{}, err
	}
	if d == nil {
		return analytics.Case{}, validation("dateRecorded", "Date is required")
	}

	first := normalize.FirstName(in.FirstName)
	if first == "" {
		return analytics.Case{}, validation("firstName", "First name is required")
	}
	if utf8.RuneCountInString(first) > 100 {
		return analytics.Case{}, validation("firstName", "firstName must be at most 100 characters")
	}

	raw := normalize.Text(in.LastName)
	if raw == "" {
		return analytics.Case{}, validation("lastName", "Last name initial is required")
	}
	last := normalize.Initial(raw)
	if last == "" || utf8.RuneCountInString(raw) != 1 {
		return analytics.Case{}, validation("lastName", "lastName must be a single letter initial")
	}

	var sc analytics.Scores
	for _, m := range analytics.Metrics {
		v := scoreOf(in.Scores, m)
		if v == nil {
			return analytics.Case{}, validation(string(m), fmt.Sprintf("Score for %s is required", m))
		}
		if *v < analytics.ScoreReturned || *v > analytics.MaxScore {
			return analytics.Case{}, validation(string(m), fmt.Sprintf("%s must be between 0 and 2", m))
		}
		sc.Set(m, *v)
	}

	return analytics.Case{DateRecorded: *d, FirstName: first, LastName: last, Scores: sc}, nil
}

func scoreOf(in domain.ScoresInput, m analytics.Metric) *int {
	switch m {
	case analytics.MetricMargins:
		return in.Margins
	case analytics.MetricContacts:
		return in.Contacts
	case analytics.MetricOcclusion:
		return in.Occlusion
	case analytics.MetricColor:
		return in.Color
	case analytics.MetricContour:
		return in.Contour
	}
	return nil
}

func validation(field, msg string) error {
	return perr.WithField(perr.New(perr.ErrorCodeValidation, msg), field)
}
