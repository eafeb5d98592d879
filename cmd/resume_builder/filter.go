package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/filtering"
	"github.com/jonathan/resume-builder/internal/types"
)

type filterOptions struct {
	input   string
	profile string
	output  string
	clean   bool
	compact bool
}

func newFilterCmd(a *app) *cobra.Command {
	opts := &filterOptions{}
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter the résumé with a profile",
		Long: "Applies a profile to the résumé and writes the filtered document. Output is JSON " +
			"unless the output file ends in .yaml or .yml. Without --output the document goes to stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runFilter(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Path to résumé YAML or JSON (default from config)")
	cmd.Flags().StringVarP(&opts.profile, "profile", "p", "default", "Profile name")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file")
	cmd.Flags().BoolVar(&opts.clean, "clean", false, "Remove include_in tags from the output")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "Write compact JSON")
	return cmd
}

func (a *app) runFilter(cmd *cobra.Command, opts *filterOptions) error {
	ctx := cmd.Context()
	input := opts.input
	if input == "" {
		input = a.cfg.ResumePath
	}

	doc, err := document.Load(input)
	if err != nil {
		return fmt.Errorf("failed to load résumé: %w", err)
	}

	source, release, err := a.profileSource(ctx)
	if err != nil {
		return err
	}
	defer release()

	p, err := source.Load(ctx, opts.profile)
	if err != nil {
		return err
	}

	filtered := filtering.FilterResumeData(doc, p)
	if opts.clean {
		filtered = export.Clean(filtered)
	}

	data, err := encodeDocument(filtered, opts.output, opts.compact)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	a.log.WithFields(logrus.Fields{"profile": opts.profile, "path": opts.output}).Info("filtered résumé written")

	printer := a.printer(cmd)
	printer.PrintProfileInfo(p.Info())
	printer.PrintFilterSummary(filtering.FilterSections(), doc, filtered)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", opts.output)
	return nil
}

// encodeDocument renders doc as YAML when path has a YAML extension and as JSON otherwise.
func encodeDocument(doc types.Document, path string, compact bool) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(map[string]any(doc))
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return data, nil
	default:
		return export.Render(doc, export.Options{Compact: compact})
	}
}
