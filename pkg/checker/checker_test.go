package checker

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"igfollowcheck/pkg/config"
	igerrors "igfollowcheck/pkg/errors"
	"igfollowcheck/pkg/followdiff"
	"igfollowcheck/pkg/logger"
	"igfollowcheck/pkg/ui"
)

const exportDir = "connections/followers_and_following"

func TestMain(m *testing.M) {
	logger.SetLogger(logger.NewNopLogger())
	ui.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})
	ui.SetColor(false)
	os.Exit(m.Run())
}

func entries(usernames ...string) string {
	parts := make([]string, 0, len(usernames))
	for _, u := range usernames {
		parts = append(parts, `{"title":"","media_list_data":[],"string_list_data":[{"href":"https://www.instagram.com/`+u+`","value":"`+u+`","timestamp":1700000000}]}`)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func followingDoc(usernames ...string) string {
	return `{"relationships_following":` + entries(usernames...) + `}`
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

func newConfig(t *testing.T, dataDir, format string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Input.DataDirectory = dataDir
	cfg.Output.Directory = filepath.Join(t.TempDir(), "out")
	cfg.Output.Format = format
	require.NoError(t, cfg.Validate())
	return cfg
}

func run(t *testing.T, cfg *config.Config) (*Report, error) {
	t.Helper()
	c, err := New(cfg)
	require.NoError(t, err)
	return c.Run()
}

func readOutput(t *testing.T, cfg *config.Config, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.Output.Directory, name))
	require.NoError(t, err)
	return string(data)
}

func TestRunEmptyFollowing(t *testing.T) {
	root := writeExport(t, map[string]string{
		exportDir + "/following.json":   `{"relationships_following": []}`,
		exportDir + "/followers_1.json": entries("alice"),
	})
	cfg := newConfig(t, root, config.FormatText)

	report, err := run(t, cfg)
	require.NoError(t, err)

	assert.Equal(t, "alice\n", readOutput(t, cfg, "you_dont_follow_back.txt"))
	assert.Equal(t, "", readOutput(t, cfg, "not_following_back.txt"))
	assert.Len(t, report.Written, 2)
	assert.Equal(t, igerrors.ExitOK, igerrors.ExitCode(err))
}

func TestRunDuplicateAcrossFragments(t *testing.T) {
	root := writeExport(t, map[string]string{
		exportDir + "/following.json":   followingDoc("bob", "carl"),
		"older/following.json":          followingDoc("bob"),
		exportDir + "/followers_1.json": entries("carl"),
	})
	cfg := newConfig(t, root, config.FormatText)

	report, err := run(t, cfg)
	require.NoError(t, err)

	assert.Equal(t, "bob\n", readOutput(t, cfg, "not_following_back.txt"))
	assert.Equal(t, 2, report.Result.FollowingCount)
	assert.Len(t, report.Following.Parsed, 2)
}

func TestRunMalformedFragmentIsSkipped(t *testing.T) {
	root := writeExport(t, map[string]string{
		exportDir + "/following.json":   followingDoc("amy", "bo"),
		"part2/following.json":          `{"relationships_following": [{"string_list_data": [`,
		"part3/following.json":          followingDoc("cy"),
		exportDir + "/followers_1.json": entries("bo"),
	})
	cfg := newConfig(t, root, config.FormatText)

	report, err := run(t, cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, report.SkippedFiles())
	assert.Equal(t, 3, report.Result.FollowingCount)
	assert.Equal(t, "amy\ncy\n", readOutput(t, cfg, "not_following_back.txt"))
	assert.Equal(t, igerrors.ExitOK, igerrors.ExitCode(err))
}

func TestRunCSV(t *testing.T) {
	root := writeExport(t, map[string]string{
		exportDir + "/following.json":   followingDoc("x", "y"),
		exportDir + "/followers_1.json": entries("x"),
	})
	cfg := newConfig(t, root, config.FormatCSV)

	_, err := run(t, cfg)
	require.NoError(t, err)

	assert.Equal(t, "username\ny\n", readOutput(t, cfg, "not_following_back.csv"))
	assert.Equal(t, "username\n", readOutput(t, cfg, "you_dont_follow_back.csv"))
}

func TestRunIsIdempotent(t *testing.T) {
	root := writeExport(t, map[string]string{
		exportDir + "/following.json":   followingDoc("Zed", "amy", "Bea", "cat", "dan"),
		exportDir + "/followers_1.json": entries("cat", "eve", "Fay"),
		exportDir + "/followers_2.json": entries("dan", "gus"),
	})
	cfg := newConfig(t, root, config.FormatText)

	_, err := run(t, cfg)
	require.NoError(t, err)
	first := readOutput(t, cfg, "not_following_back.txt") + "|" + readOutput(t, cfg, "you_dont_follow_back.txt")

	_, err = run(t, cfg)
	require.NoError(t, err)
	second := readOutput(t, cfg, "not_following_back.txt") + "|" + readOutput(t, cfg, "you_dont_follow_back.txt")

	assert.Equal(t, first, second)
	assert.Equal(t, "amy\nBea\nZed\n|eve\nFay\ngus\n", first)
}

func TestRunDataNotFound(t *testing.T) {
	root := writeExport(t, map[string]string{
		exportDir + "/following.json": followingDoc("amy"),
	})
	cfg := newConfig(t, root, config.FormatText)

	report, err := run(t, cfg)
	require.Error(t, err)
	assert.Equal(t, igerrors.ExitDataNotFound, igerrors.ExitCode(err))
	require.NotNil(t, report.Candidates)
	assert.Len(t, report.Candidates.Following, 1)
	assert.NoFileExists(t, filepath.Join(cfg.Output.Directory, "not_following_back.txt"))
}

func TestRunNoValidJSON(t *testing.T) {
	root := writeExport(t, map[string]string{
		exportDir + "/following.json":   followingDoc("amy"),
		exportDir + "/followers_1.json": `<!doctype html>`,
	})
	cfg := newConfig(t, root, config.FormatText)

	report, err := run(t, cfg)
	require.Error(t, err)
	assert.Equal(t, igerrors.ExitNoValidJSON, igerrors.ExitCode(err))
	assert.Len(t, report.Followers.Failed, 1)
}

type failingWriter struct {
	calls int
}

func (w *failingWriter) WriteResults(result followdiff.Result, format string) ([]string, error) {
	w.calls++
	return nil, igerrors.NewWrite("/readonly/not_following_back.txt", "failed to write results", errors.New("permission denied"))
}

func TestRunWriteError(t *testing.T) {
	root := writeExport(t, map[string]string{
		exportDir + "/following.json":   followingDoc("amy"),
		exportDir + "/followers_1.json": entries("bo"),
	})
	cfg := newConfig(t, root, config.FormatText)

	writer := &failingWriter{}
	_, err := NewWithWriter(cfg, writer).Run()

	require.Error(t, err)
	assert.Equal(t, 1, writer.calls)
	assert.Equal(t, igerrors.ExitWrite, igerrors.ExitCode(err))
}

func TestRunVerboseOutput(t *testing.T) {
	var stdout bytes.Buffer
	ui.SetOutput(&stdout, &bytes.Buffer{})
	defer ui.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})

	root := writeExport(t, map[string]string{
		exportDir + "/following.json":   followingDoc("amy"),
		exportDir + "/followers_1.json": entries("bo"),
		exportDir + "/followers_2.json": `{`,
	})
	cfg := newConfig(t, root, config.FormatText)
	cfg.Report.Verbose = true

	_, err := run(t, cfg)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "Following files (1)")
	assert.Contains(t, out, "Followers files (2)")
	assert.Contains(t, out, "[ok] "+exportDir+"/followers_1.json: 1 usernames")
	assert.Contains(t, out, "[skip] "+exportDir+"/followers_2.json")
	assert.Contains(t, out, "Following: 1")
}
