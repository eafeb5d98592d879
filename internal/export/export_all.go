package export

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/profile"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultConcurrency bounds how many profiles ExportAll renders at once
const DefaultConcurrency = 4

// Result is the outcome of exporting one profile
type Result struct {
	Profile  string
	Location string
	Err      error
}

// Exporter writes filtered documents through a storage sink
type Exporter struct {
	Sink        storage.Sink
	Options     Options
	Concurrency int
	Logger      logrus.FieldLogger
}

func (e *Exporter) logger() logrus.FieldLogger {
	if e.Logger != nil {
		return e.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// ExportProfile filters doc with p, renders it and writes it to the sink under the
// profile's output filename. It returns the location written to.
func (e *Exporter) ExportProfile(ctx context.Context, name string, doc types.Document, p *profile.Profile) (string, error) {
	built, info := Build(doc, p, e.Options)
	data, err := Render(built, e.Options)
	if err != nil {
		return "", &Error{Profile: name, Message: "failed to render", Cause: err}
	}

	filename := Filename(info)
	if err := e.Sink.Put(ctx, filename, data, "application/json"); err != nil {
		return "", &Error{Profile: name, Message: "failed to write", Cause: err}
	}

	location := e.Sink.Location(filename)
	e.logger().WithFields(logrus.Fields{"profile": name, "path": location}).Info("exported profile")
	return location, nil
}

// ExportAll exports doc once per named profile, loading profiles from source.
//
// Profiles are processed concurrently. A failing profile does not stop the others:
// every profile gets a Result, in the order of names, and the returned error joins
// all failures. Cancelling ctx stops profiles that have not started yet.
func (e *Exporter) ExportAll(ctx context.Context, doc types.Document, source profile.Source, names []string) ([]Result, error) {
	results := make([]Result, len(names))

	limit := e.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, name := range names {
		results[i].Profile = name
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			p, err := source.Load(gCtx, name)
			if err != nil {
				results[i].Err = &Error{Profile: name, Message: "failed to load", Cause: err}
				e.logger().WithError(err).WithField("profile", name).Warn("skipping profile")
				return nil
			}

			location, err := e.ExportProfile(gCtx, name, doc, p)
			if err != nil {
				results[i].Err = err
				e.logger().WithError(err).WithField("profile", name).Warn("export failed")
				return nil
			}
			results[i].Location = location
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return results, errors.Join(errs...)
}

// Succeeded counts results without an error
func Succeeded(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err == nil {
			n++
		}
	}
	return n
}
