package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/storage"
)

type exportOptions struct {
	input       string
	profile     string
	allProfiles bool
	compact     bool
	noMetadata  bool
	outputDir   string
	bucket      string
	prefix      string
	concurrency int
}

func newExportCmd(a *app) *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export filtered résumés as JSON",
		Long: "Filters the résumé with one profile, or with every profile when --all-profiles is set, " +
			"removes the include_in tags and writes <filename>.json per profile to the output directory " +
			"or, with --bucket, to S3-compatible object storage.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runExport(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "Path to résumé YAML or JSON (default from config)")
	flags.StringVarP(&opts.profile, "profile", "p", "default", "Profile name")
	flags.BoolVar(&opts.allProfiles, "all-profiles", false, "Export every available profile")
	flags.BoolVar(&opts.compact, "compact", false, "Write compact JSON")
	flags.BoolVar(&opts.noMetadata, "no-metadata", false, "Omit the export_meta section")
	flags.StringVar(&opts.outputDir, "output-dir", "", "Output directory (default from config)")
	flags.StringVar(&opts.bucket, "bucket", "", "Upload to this S3 bucket instead of the output directory")
	flags.StringVar(&opts.prefix, "prefix", "", "Object key prefix for --bucket")
	flags.IntVar(&opts.concurrency, "concurrency", export.DefaultConcurrency, "Profiles exported in parallel")
	return cmd
}

func (a *app) runExport(cmd *cobra.Command, opts *exportOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	input := opts.input
	if input == "" {
		input = a.cfg.ResumePath
	}
	doc, err := document.Load(input)
	if err != nil {
		return fmt.Errorf("failed to load résumé: %w", err)
	}

	sink, err := a.exportSink(cmd, opts)
	if err != nil {
		return err
	}

	source, release, err := a.profileSource(ctx)
	if err != nil {
		return err
	}
	defer release()

	exporter := &export.Exporter{
		Sink:        sink,
		Options:     export.Options{Compact: opts.compact, NoMetadata: opts.noMetadata},
		Concurrency: opts.concurrency,
		Logger:      a.log,
	}

	if !opts.allProfiles {
		p, err := source.Load(ctx, opts.profile)
		if err != nil {
			return err
		}
		location, err := exporter.ExportProfile(ctx, opts.profile, doc, p)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "✓ %s → %s\n", opts.profile, location)
		return nil
	}

	names, err := source.List(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return errors.New("no profiles found")
	}

	results, err := exporter.ExportAll(ctx, doc, source, names)
	for _, r := range results {
		if r.Err != nil {
			_, _ = fmt.Fprintf(out, "✗ %s: %v\n", r.Profile, r.Err)
			continue
		}
		_, _ = fmt.Fprintf(out, "✓ %s → %s\n", r.Profile, r.Location)
	}
	_, _ = fmt.Fprintf(out, "Exported %d/%d profiles\n", export.Succeeded(results), len(results))
	if err != nil {
		return &exitError{code: 1}
	}
	return nil
}

// exportSink picks the S3 sink when a bucket is given by flag or config and the
// output directory otherwise. An explicit --output-dir wins over a configured bucket.
func (a *app) exportSink(cmd *cobra.Command, opts *exportOptions) (storage.Sink, error) {
	bucket := opts.bucket
	if bucket == "" && !cmd.Flags().Changed("output-dir") {
		bucket = a.cfg.S3.Bucket
	}

	if bucket == "" {
		dir := opts.outputDir
		if dir == "" {
			dir = a.cfg.OutputDir
		}
		return storage.NewDirSink(dir), nil
	}

	sink, err := storage.NewS3Sink(storage.S3Options{
		Endpoint:  a.cfg.S3.Endpoint,
		AccessKey: a.cfg.S3.AccessKey,
		SecretKey: a.cfg.S3.SecretKey,
		Bucket:    bucket,
		Region:    a.cfg.S3.Region,
		UseSSL:    a.cfg.UseSSL(),
		Prefix:    opts.prefix,
	})
	if err != nil {
		return nil, err
	}
	if err := sink.EnsureBucket(cmd.Context()); err != nil {
		return nil, err
	}
	return sink, nil
}
