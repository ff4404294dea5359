package main

import (
	"errors"
	"flag"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/luu-sac/ceramics-api/internal/config"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var (
		dir  = flag.String("dir", "migrations", "migrations directory")
		down = flag.Bool("down", false, "roll back one migration instead of migrating up")
	)
	flag.Parse()

	cfg := config.Load()

	m, err := migrate.New("file://"+*dir, cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open migrations")
	}
	defer m.Close()

	if *down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Msg("no pending migrations")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	log.Info().Msg("migrations applied")
}
