package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/profile"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
)

type serveOptions struct {
	port      int
	logFormat string
}

func newServeCmd(a *app) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: "Start an HTTP server exposing filtering, validation and profile endpoints. With DATABASE_URL " +
			"profiles are read from and written to the database; profile writes also need JWT_SECRET.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd, opts)
		},
	}
	cmd.Flags().IntVar(&opts.port, "port", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "json", "Log format: json or text")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, opts *serveOptions) error {
	logger, err := observability.NewLogger(cmd.ErrOrStderr(), a.cfg.Log.Level, opts.logFormat)
	if err != nil {
		return err
	}

	port := a.cfg.Server.Port
	if opts.port != 0 {
		port = opts.port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverOpts := server.Options{
		Port:           port,
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
		Profiles:       profile.NewDirSource(a.cfg.ProfilesDir),
		RateLimit:      ratelimit.FromSettings(a.cfg.RateLimit),
		Logger:         logger,
	}

	if a.cfg.DatabaseURL != "" {
		database, err := a.openDB(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		serverOpts.Profiles = db.NewProfileSource(database)
		serverOpts.Store = database

		if a.cfg.Auth.JWTSecret != "" {
			jwtCfg, err := a.cfg.JWT()
			if err != nil {
				return err
			}
			serverOpts.JWT = server.NewJWTService(jwtCfg)
		} else {
			logger.Warn("JWT_SECRET is not set, profile writes are disabled")
		}
	}

	srv, err := server.New(serverOpts)
	if err != nil {
		return err
	}
	return srv.Start(ctx)
}
