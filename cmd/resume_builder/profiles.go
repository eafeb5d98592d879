package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/profile"
)

func newProfilesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List, inspect, check and store profiles",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List available profiles",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				source, release, err := a.profileSource(cmd.Context())
				if err != nil {
					return err
				}
				defer release()

				names, err := source.List(cmd.Context())
				if err != nil {
					return err
				}
				a.printer(cmd).PrintProfileList(names)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show NAME",
			Short: "Show the settings of a profile",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				source, release, err := a.profileSource(cmd.Context())
				if err != nil {
					return err
				}
				defer release()

				p, err := source.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				a.printer(cmd).PrintProfileInfo(p.Info())
				return nil
			},
		},
		&cobra.Command{
			Use:   "check NAME",
			Short: "Check the structure of a profile file",
			Long:  "Reports every structural problem of <profiles_dir>/NAME.yaml. Exits with 1 when any is found.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runProfileCheck(cmd, args[0])
			},
		},
		newProfileImportCmd(a),
		&cobra.Command{
			Use:   "delete NAME",
			Short: "Delete a profile from the database",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				database, err := a.openDB(cmd.Context())
				if err != nil {
					return err
				}
				defer database.Close()

				deleted, err := database.DeleteProfile(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !deleted {
					return &profile.ProfileNotFoundError{Name: args[0], Path: "database"}
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile '%s'\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

// runProfileCheck reports structural problems and then schema problems of one profile file.
func (a *app) runProfileCheck(cmd *cobra.Command, name string) error {
	out := cmd.OutOrStdout()
	if err := profile.CheckName(name); err != nil {
		return err
	}
	path := filepath.Join(a.cfg.ProfilesDir, name+".yaml")

	problems, err := checkProfileFile(name, path)
	if err != nil {
		return err
	}
	if len(problems) == 0 {
		_, _ = fmt.Fprintf(out, "✓ Profile '%s' is valid\n", name)
		return nil
	}

	_, _ = fmt.Fprintf(out, "✗ Profile '%s' has %d problem(s):\n", name, len(problems))
	for _, problem := range problems {
		_, _ = fmt.Fprintf(out, "  • %s\n", problem)
	}
	return &exitError{code: 1}
}

func checkProfileFile(name, path string) ([]string, error) {
	doc, err := document.Load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, &profile.ProfileNotFoundError{Name: name, Path: path}
	case errors.Is(err, document.ErrEmptyDocument):
		return []string{"Profile is empty or None"}, nil
	case err != nil:
		return []string{err.Error()}, nil
	}

	if ok, problems := profile.ValidateProfile(map[string]any(doc)); !ok {
		return problems, nil
	}

	var invalid *profile.InvalidProfileError
	if _, err := profile.FromMap(name, map[string]any(doc)); errors.As(err, &invalid) {
		return []string{invalid.Message}, nil
	} else if err != nil {
		return nil, err
	}
	return nil, nil
}

type profileImportOptions struct {
	file string
}

func newProfileImportCmd(a *app) *cobra.Command {
	opts := &profileImportOptions{}
	cmd := &cobra.Command{
		Use:   "import NAME",
		Short: "Store a profile file in the database",
		Long:  "Reads <profiles_dir>/NAME.yaml (or --file), checks it and saves it to the database under NAME.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := profile.CheckName(name); err != nil {
				return err
			}
			path := opts.file
			if path == "" {
				path = filepath.Join(a.cfg.ProfilesDir, name+".yaml")
			}

			doc, err := document.Load(path)
			if err != nil {
				return fmt.Errorf("failed to read profile: %w", err)
			}
			mapping := map[string]any(doc)
			if _, err := profile.FromMap(name, mapping); err != nil {
				return err
			}

			database, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.SaveProfile(cmd.Context(), name, mapping, nil); err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{"profile": name, "path": path}).Info("profile imported")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported profile '%s' from %s\n", name, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Profile YAML file (default <profiles_dir>/NAME.yaml)")
	return cmd
}
