package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validResume = `basics:
  name: Jane Doe
  email: jane@example.com
work_experience:
  Acme:
    - job_title: Staff Engineer
      location: Remote
      start_date: 2021-01
      end_date: Present
      include_in: [technical]
      responsibilities:
        - Built the billing pipeline
        - Cut p99 latency in half
        - Mentored four engineers
    - job_title: Engineering Manager
      location: Remote
      start_date: 2019-03
      end_date: 2020-12
      include_in: [leadership]
  Initech:
    - job_title: Developer
      location: Austin, TX
      start_date: 2016-06
      end_date: 2019-02
      responsibilities:
        - Maintained the TPS reporting service
education:
  - institution: State University
    area: Computer Science
    studyType: BS
    startDate: 2012-09
    endDate: 2016-05
`

var testProfiles = map[string]string{
	"default.yaml": `profile:
  name: Default
filters:
  include_tags: [all]
output:
  filename: resume
`,
	"technical.yaml": `profile:
  name: Technical
  slug: technical
  description: Engineering roles
filters:
  include_tags: [technical]
  max_bullets_per_job: 2
output:
  filename: resume_technical
  title_suffix: Engineer
`,
	"leadership.yaml": `profile:
  name: Leadership
filters:
  include_tags: [leadership, all]
output:
  filename: resume_leadership
`,
}

// workspace holds the files of one CLI invocation
type workspace struct {
	dir         string
	resume      string
	profilesDir string
	outputDir   string
}

// newWorkspace writes a résumé and profile fixtures to a temp dir and points the
// configuration environment at them.
func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	ws := &workspace{
		dir:         dir,
		resume:      filepath.Join(dir, "resume.yaml"),
		profilesDir: filepath.Join(dir, "profiles"),
		outputDir:   filepath.Join(dir, "output"),
	}

	require.NoError(t, os.WriteFile(ws.resume, []byte(validResume), 0644))
	require.NoError(t, os.MkdirAll(ws.profilesDir, 0755))
	for name, content := range testProfiles {
		ws.writeProfile(t, name, content)
	}

	t.Setenv("RESUME_PATH", ws.resume)
	t.Setenv("PROFILES_DIR", ws.profilesDir)
	t.Setenv("OUTPUT_DIR", ws.outputDir)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "text")
	return ws
}

func (ws *workspace) writeProfile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(ws.profilesDir, name), []byte(content), 0644))
}

func (ws *workspace) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(ws.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the CLI in-process and returns the exit code with both streams
func execute(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}
