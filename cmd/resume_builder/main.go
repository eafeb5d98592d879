// Package main provides the resume_builder command line tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/profile"
)

const (
	storeDir = "dir"
	storeDB  = "db"
)

// exitError ends the process with code without printing an error message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// app holds the state shared by all commands once the root command has run.
type app struct {
	configPath   string
	logLevel     string
	color        bool
	profileStore string

	cfg *config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "resume_builder",
		Short: "Profile-based résumé filtering and validation",
		Long: "resume_builder keeps one tagged résumé and produces tailored views of it through profiles. " +
			"It validates the résumé structure, filters it per profile, exports JSON and serves an HTTP API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to config file (default ./"+config.DefaultFile+" when present)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (overrides config)")
	flags.BoolVar(&a.color, "color", false, "Colorize report output")
	flags.StringVar(&a.profileStore, "profile-store", storeDir, "Where profiles are read from: dir or db")

	root.AddCommand(
		newFilterCmd(a),
		newValidateCmd(a),
		newProfilesCmd(a),
		newExportCmd(a),
		newServeCmd(a),
		newTokenCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if a.profileStore != storeDir && a.profileStore != storeDB {
		return fmt.Errorf("invalid --profile-store %q: must be %s or %s", a.profileStore, storeDir, storeDB)
	}

	logger, err := observability.NewLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger
	return nil
}

func (a *app) printer(cmd *cobra.Command) *observability.Printer {
	return observability.NewPrinter(cmd.OutOrStdout()).WithColor(a.color)
}

// openDB connects to DATABASE_URL and applies the schema.
func (a *app) openDB(ctx context.Context) (*db.DB, error) {
	if a.cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required for database profile storage")
	}
	database, err := db.Connect(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// profileSource returns the configured profile source and a function releasing it.
func (a *app) profileSource(ctx context.Context) (profile.Source, func(), error) {
	if a.profileStore == storeDB {
		database, err := a.openDB(ctx)
		if err != nil {
			return nil, nil, err
		}
		return db.NewProfileSource(database), database.Close, nil
	}
	return profile.NewDirSource(a.cfg.ProfilesDir), func() {}, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
