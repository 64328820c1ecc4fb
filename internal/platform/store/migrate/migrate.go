// Package migrate applies the embedded postgres schema with golang-migrate
package migrate

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5:// driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

// Migrator runs schema migrations against one database
type Migrator struct {
	m *migrate.Migrate
}

// New opens a migrator for a postgres:// or postgresql:// url
func New(dbURL string) (*Migrator, error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("migrate source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, DriverURL(dbURL))
	if err != nil {
		return nil, fmt.Errorf("migrate init: %w", err)
	}
	return &Migrator{m: m}, nil
}

// DriverURL rewrites a libpq style url to the pgx5 scheme golang-migrate expects
func DriverURL(dbURL string) string {
	for _, p := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dbURL, p) {
			return "pgx5://" + strings.TrimPrefix(dbURL, p)
		}
	}
	return dbURL
}

// Up applies all pending migrations; an up to date schema is not an error
func (x *Migrator) Up() error { return ignoreNoChange(x.m.Up()) }

// Down rolls back every migration
func (x *Migrator) Down() error { return ignoreNoChange(x.m.Down()) }

// Steps applies n migrations, negative n rolls back
func (x *Migrator) Steps(n int) error { return ignoreNoChange(x.m.Steps(n)) }

// Version reports the current schema version; ok is false on an empty database
func (x *Migrator) Version() (version uint, dirty, ok bool, err error) {
	v, d, err := x.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, err
	}
	return v, d, true, nil
}

// Close releases the source and database handles
func (x *Migrator) Close() error {
	srcErr, dbErr := x.m.Close()
	return errors.Join(srcErr, dbErr)
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
