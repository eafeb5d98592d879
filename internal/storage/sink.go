package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sink receives named artifacts
type Sink interface {
	Put(ctx context.Context, name string, data []byte, contentType string) error
	// Location describes where name ends up, for logging and CLI output
	Location(name string) string
}

// DirSink writes artifacts as files under a directory, creating it on first use
type DirSink struct {
	dir string
}

// NewDirSink returns a sink rooted at dir
func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

// Put writes data to dir/name
func (s *DirSink) Put(ctx context.Context, name string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return &Error{Name: s.dir, Message: fmt.Sprintf("failed to create output directory %s", s.dir), Cause: err}
	}
	if err := os.WriteFile(s.Location(name), data, 0644); err != nil {
		return &Error{Name: name, Message: fmt.Sprintf("failed to write %s", s.Location(name)), Cause: err}
	}
	return nil
}

// Location returns the file path of name
func (s *DirSink) Location(name string) string {
	return filepath.Join(s.dir, name)
}

// checkName rejects names that would escape the sink root
func checkName(name string) error {
	if name == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return &Error{Name: name, Message: fmt.Sprintf("invalid artifact name %q", name)}
	}
	return nil
}
