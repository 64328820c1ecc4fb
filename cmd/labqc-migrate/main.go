// Command labqc-migrate applies the embedded case schema to postgres
package main

import (
	"flag"
	"fmt"
	"os"

	"labqc/internal/platform/config"
	"labqc/internal/platform/logger"
	"labqc/internal/platform/store/migrate"
)

func main() {
	var (
		fCmd   = flag.String("cmd", "up", "migration command: up | down | steps | version")
		fSteps = flag.Int("n", 1, "number of migrations for -cmd steps, negative rolls back")
		fURL   = flag.String("db", "", "postgres url, defaults to SERVICE_PGSQL_DBURL")
	)
	flag.Parse()

	l := logger.Named("migrate")

	dbURL := *fURL
	if dbURL == "" {
		dbURL = config.New().Prefix("SERVICE_PGSQL_").MustString("DBURL")
	}

	m, err := migrate.New(dbURL)
	if err != nil {
		l.Fatal().Err(err).Msg("migrate init failed")
	}
	defer func() {
		if err := m.Close(); err != nil {
			l.Error().Err(err).Msg("migrate close failed")
		}
	}()

	switch *fCmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		err = m.Steps(*fSteps)
	case "version":
		v, dirty, ok, verr := m.Version()
		if verr != nil {
			err = verr
			break
		}
		if !ok {
			fmt.Println("no migrations applied")
			return
		}
		fmt.Printf("version %d dirty=%v\n", v, dirty)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown -cmd %q\n", *fCmd)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		l.Error().Err(err).Str("cmd", *fCmd).Msg("migration failed")
		os.Exit(1)
	}
	l.Info().Str("cmd", *fCmd).Msg("migration complete")
}
