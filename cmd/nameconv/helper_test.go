package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colorium/nameconv/internal/conffinder"
)

// isolate runs the test in an empty directory with no convention or
// settings reachable from the environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	t.Setenv("AppData", filepath.Join(dir, "AppData"))
	t.Setenv(conffinder.EnvConvention, "")
	for _, key := range []string{"NAMECONV_FORMAT", "NAMECONV_LOG_LEVEL", "NAMECONV_STRICT"} {
		t.Setenv(key, "")
	}
	return dir
}

// execute runs the command line args with stdin and returns stdout and
// stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// decodeReports parses JSON Lines output.
func decodeReports(t *testing.T, out string) []Report {
	t.Helper()
	var reports []Report
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var r Report
		require.NoError(t, json.Unmarshal([]byte(line), &r), "line: %s", line)
		reports = append(reports, r)
	}
	return reports
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const dottedConvention = `version: 1
separator: "."
rules:
  - name: shot
    pattern: '^sh\d{3}$'
  - name: task
    patterns: ['^anim$', '^comp$']
  - name: take
    optional: true
    pattern: '^t\d+$'
`

// syncBuffer is a bytes.Buffer safe for one writer and concurrent readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
