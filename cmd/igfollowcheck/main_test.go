package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	igerrors "igfollowcheck/pkg/errors"
	"igfollowcheck/pkg/logger"
	"igfollowcheck/pkg/ui"
)

const exportDir = "connections/followers_and_following"

// execute runs a fresh command tree and returns stdout, stderr and the error
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"IGFOLLOWCHECK_DATA", "IGFOLLOWCHECK_OUT", "IGFOLLOWCHECK_FORMAT", "IGFOLLOWCHECK_VERBOSE", "IGFOLLOWCHECK_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	var stdout, stderr bytes.Buffer
	ui.SetOutput(&stdout, &stderr)
	ui.SetColor(false)
	ui.SetQuietMode(false)
	t.Cleanup(func() {
		ui.SetOutput(os.Stdout, os.Stderr)
		logger.SetLogger(logger.NewNopLogger())
	})

	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--log-level", "disabled"))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeExport(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return root
}

func sampleExport(t *testing.T) string {
	return writeExport(t, map[string]string{
		exportDir + "/following.json":   `{"relationships_following": [{"title": "amy", "string_list_data": [{"href": "https://www.instagram.com/_u/amy", "timestamp": 1}]}, {"title": "bo", "string_list_data": [{"href": "https://www.instagram.com/_u/bo", "timestamp": 1}]}]}`,
		exportDir + "/followers_1.json": `[{"title": "", "string_list_data": [{"href": "https://www.instagram.com/bo", "value": "bo", "timestamp": 1}]}, {"title": "", "string_list_data": [{"href": "https://www.instagram.com/cy", "value": "cy", "timestamp": 1}]}]`,
	})
}

func TestCheckWritesResults(t *testing.T) {
	data := sampleExport(t)
	out := filepath.Join(t.TempDir(), "results")

	stdout, _, err := execute(t, "--data", data, "--out", out)
	require.NoError(t, err)

	nfb, err := os.ReadFile(filepath.Join(out, "not_following_back.txt"))
	require.NoError(t, err)
	assert.Equal(t, "amy\n", string(nfb))

	ydfb, err := os.ReadFile(filepath.Join(out, "you_dont_follow_back.txt"))
	require.NoError(t, err)
	assert.Equal(t, "cy\n", string(ydfb))

	assert.Contains(t, stdout, "People you follow who don't follow you back: 1")
	assert.Contains(t, stdout, "Mutual: 1")
	assert.NotContains(t, stdout, "preview")
}

func TestCheckVerbosePreview(t *testing.T) {
	data := sampleExport(t)
	out := t.TempDir()

	stdout, _, err := execute(t, "--data", data, "--out", out, "--format", "csv", "-v")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Following files (1)")
	assert.Contains(t, stdout, "Top 10 preview: not following you back")
	assert.Contains(t, stdout, "  @amy")
	assert.FileExists(t, filepath.Join(out, "not_following_back.csv"))
}

func TestCheckQuiet(t *testing.T) {
	data := sampleExport(t)

	stdout, _, err := execute(t, "--data", data, "--out", t.TempDir(), "-q")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     func(t *testing.T) []string
		wantCode int
	}{
		{
			name:     "missing data flag",
			args:     func(t *testing.T) []string { return nil },
			wantCode: igerrors.ExitUsage,
		},
		{
			name: "invalid format",
			args: func(t *testing.T) []string {
				return []string{"--data", sampleExport(t), "--format", "xml"}
			},
			wantCode: igerrors.ExitUsage,
		},
		{
			name: "data directory missing",
			args: func(t *testing.T) []string {
				return []string{"--data", filepath.Join(t.TempDir(), "nope"), "--out", t.TempDir()}
			},
			wantCode: igerrors.ExitDataNotFound,
		},
		{
			name: "no followers files",
			args: func(t *testing.T) []string {
				root := writeExport(t, map[string]string{exportDir + "/following.json": `[]`})
				return []string{"--data", root, "--out", t.TempDir()}
			},
			wantCode: igerrors.ExitDataNotFound,
		},
		{
			name: "no valid JSON",
			args: func(t *testing.T) []string {
				root := writeExport(t, map[string]string{
					exportDir + "/following.json":   `not json`,
					exportDir + "/followers_1.json": `[]`,
				})
				return []string{"--data", root, "--out", t.TempDir()}
			},
			wantCode: igerrors.ExitNoValidJSON,
		},
		{
			name: "output path is a file",
			args: func(t *testing.T) []string {
				blocker := filepath.Join(t.TempDir(), "file")
				require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
				return []string{"--data", sampleExport(t), "--out", filepath.Join(blocker, "out")}
			},
			wantCode: igerrors.ExitWrite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args(t)...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, igerrors.ExitCode(err))
		})
	}
}

func TestReportErrorPrintsLayoutHint(t *testing.T) {
	var stderr bytes.Buffer
	ui.SetOutput(&bytes.Buffer{}, &stderr)
	ui.SetColor(false)
	defer ui.SetOutput(os.Stdout, os.Stderr)

	reportError(igerrors.NewDataNotFound("/export", "no followers data found"))

	assert.Contains(t, stderr.String(), "Error: data_not_found error: /export: no followers data found")
	assert.Contains(t, stderr.String(), "followers_and_following/")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "igfollowcheck.yaml")

	stdout, _, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration file created: "+path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "format: txt")

	_, _, err = execute(t, "config", "init", path)
	require.Error(t, err)
	assert.True(t, igerrors.IsType(err, igerrors.ErrorTypeConfig))
}

func TestConfigShow(t *testing.T) {
	stdout, stderr, err := execute(t, "config", "show", "--format", "csv", "--strict")
	require.NoError(t, err)

	assert.Contains(t, stdout, "format: csv")
	assert.Contains(t, stdout, "match_mode: strict")
	assert.True(t, strings.Contains(stderr, "data directory is required"))
}
