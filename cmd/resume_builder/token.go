package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/server"
)

type tokenOptions struct {
	user string
}

func newTokenCmd(a *app) *cobra.Command {
	opts := &tokenOptions{}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the profile write API",
		Long:  "Signs a token with JWT_SECRET. The token is printed to stdout, details go to stderr.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID := uuid.New()
			if opts.user != "" {
				parsed, err := uuid.Parse(opts.user)
				if err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
				userID = parsed
			}

			jwtCfg, err := a.cfg.JWT()
			if err != nil {
				return err
			}
			token, err := server.NewJWTService(jwtCfg).GenerateToken(userID)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "User: %s\nExpires in: %d hour(s)\n", userID, jwtCfg.ExpirationHours)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.user, "user", "", "User ID recorded as updated_by (default: random)")
	return cmd
}
