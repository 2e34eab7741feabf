package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/riskibarqy/lzvcup-scraper/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/lzvcup-scraper/internal/platform/logging"
	"github.com/spf13/cobra"
)

var logger = logging.NewJSON(logging.LevelInfo)

var rootCmd = &cobra.Command{
	Use:           "migration",
	Short:         "migration manages the lzvcup postgres schema.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	Args:  cobra.NoArgs,
	RunE: withMigrator(func(m *migrate.Migrate, _ []string) error {
		return report(m.Up(), "migrations applied")
	}),
}

var downCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations, one step by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: withMigrator(func(m *migrate.Migrate, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || n <= 0 {
				return fmt.Errorf("steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}
		return report(m.Steps(-steps), "migrations rolled back", "steps", steps)
	}),
}

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop every table in the database",
	Args:  cobra.NoArgs,
	RunE: withMigrator(func(m *migrate.Migrate, _ []string) error {
		if err := m.Drop(); err != nil {
			return fmt.Errorf("drop schema: %w", err)
		}
		logger.Info("schema dropped")
		return nil
	}),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	Args:  cobra.NoArgs,
	RunE: withMigrator(func(m *migrate.Migrate, _ []string) error {
		version, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			fmt.Fprintln(os.Stdout, "version: none")
			return nil
		case err != nil:
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Fprintf(os.Stdout, "version: %d dirty: %t\n", version, dirty)
		return nil
	}),
}

var forceCmd = &cobra.Command{
	Use:   "force VERSION",
	Short: "Set the schema version without running migrations",
	Args:  cobra.ExactArgs(1),
	RunE: withMigrator(func(m *migrate.Migrate, args []string) error {
		version, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || version < -1 {
			return fmt.Errorf("invalid version %q", args[0])
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("schema version forced", "version", version)
		return nil
	}),
}

var gotoCmd = &cobra.Command{
	Use:     "goto VERSION",
	Aliases: []string{"migrate"},
	Short:   "Migrate up or down to a specific version",
	Args:    cobra.ExactArgs(1),
	RunE: withMigrator(func(m *migrate.Migrate, args []string) error {
		target, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 32)
		if err != nil {
			return fmt.Errorf("invalid target version %q", args[0])
		}
		return report(m.Migrate(uint(target)), "schema migrated", "version", target)
	}),
}

func init() {
	rootCmd.AddCommand(upCmd, downCmd, dropCmd, versionCmd, forceCmd, gotoCmd)
}

// withMigrator opens a migrator from DB_URL for the duration of one command.
func withMigrator(run func(m *migrate.Migrate, args []string) error) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) (err error) {
		dsn := strings.TrimSpace(os.Getenv("DB_URL"))
		if dsn == "" {
			return errors.New("DB_URL is required")
		}
		disableBinary, err := envBool("DB_DISABLE_PREPARED_BINARY", true)
		if err != nil {
			return err
		}

		m, err := postgres.NewMigrator(postgres.PrepareDSN(dsn, disableBinary))
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := postgres.CloseMigrator(m); err == nil {
				err = closeErr
			}
		}()
		return run(m, args)
	}
}

// report treats migrate.ErrNoChange as success.
func report(err error, msg string, args ...any) error {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("schema already up to date")
		return nil
	case err != nil:
		return err
	}
	logger.Info(msg, args...)
	return nil
}

func envBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return v, nil
}
