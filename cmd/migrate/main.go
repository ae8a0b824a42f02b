package main

import (
	"errors"
	"flag"
	"net/url"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"

	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/shared/utils"
	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/migrations"
)

func main() {
	var module string
	var command string

	flag.StringVar(&module, "module", "reports", "Module to migrate (reports)")
	flag.StringVar(&command, "cmd", "up", "Migration command (up, down, steps, version, force)")
	flag.Parse()

	cfg := config.LoadConfig()
	logger := utils.InitLogger(cfg.LogLevel).With().Str("module", module).Logger()

	source, err := iofs.New(migrations.FS, module)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ No embedded migrations for module")
	}

	logger.Info().Str("database", redactURL(cfg.DatabaseURL)).Msg("🔄 Running migrations")

	m, err := migrate.NewWithSourceInstance("iofs", source, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to create migrate instance")
	}
	defer m.Close()

	if err := run(m, command, flag.Args(), logger); err != nil {
		logger.Fatal().Err(err).Str("cmd", command).Msg("❌ Migration failed")
	}
}

func run(m *migrate.Migrate, command string, args []string, logger zerolog.Logger) error {
	switch command {
	case "up":
		logger.Info().Msg("⬆️  Running UP migrations...")
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}

	case "down":
		logger.Info().Msg("⬇️  Running DOWN migrations...")
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}

	case "steps":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		logger.Info().Int("steps", n).Msg("↕️  Applying migration steps...")
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}

	case "force":
		version, err := intArg(args)
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return err
		}
		logger.Info().Int("version", version).Msg("✅ Forced version")
		return nil

	case "version":
		// reported below
	default:
		return errors.New("unknown command (use: up, down, steps, version, force)")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("📌 Current version")
	return nil
}

func intArg(args []string) (int, error) {
	if len(args) < 1 {
		return 0, errors.New("missing numeric argument")
	}
	return strconv.Atoi(args[0])
}

// redactURL hides the password of a connection URL for logging
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return "***"
	}
	return u.Redacted()
}
