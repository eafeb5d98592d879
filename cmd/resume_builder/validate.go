package main

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

type validateOptions struct {
	strict  bool
	verbose bool
	json    bool
}

func newValidateCmd(a *app) *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Validate the résumé structure",
		Long: `Checks required fields, date, email and URL formats, and include_in tags.

Exit codes:
  0  no errors (and no warnings with --strict)
  1  errors found
  2  warnings found with --strict`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.ResumePath
			if len(args) == 1 {
				path = args[0]
			}
			return a.runValidate(cmd, path, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.strict, "strict", "s", false, "Treat warnings as failures")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show informational messages")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the result as JSON")
	return cmd
}

func (a *app) runValidate(cmd *cobra.Command, path string, opts *validateOptions) error {
	result := validation.ValidateFile(path)
	a.log.WithFields(logrus.Fields{
		"path":     path,
		"errors":   len(result.Errors),
		"warnings": len(result.Warnings),
	}).Debug("validation finished")

	code := result.ExitCode(opts.strict)
	if opts.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(types.ValidateResponse{
			Valid:            result.IsValid(opts.strict),
			ExitCode:         code,
			Summary:          result.Summary(),
			ValidationResult: result,
		}); err != nil {
			return err
		}
	} else {
		a.printer(cmd).PrintValidationResult(result, opts.verbose)
	}

	if code != 0 {
		return &exitError{code: code}
	}
	return nil
}
