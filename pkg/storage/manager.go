package storage

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"igfollowcheck/pkg/config"
	igerrors "igfollowcheck/pkg/errors"
	"igfollowcheck/pkg/followdiff"
)

// Fixed output file names, without extension
const (
	NotFollowingBackName  = "not_following_back"
	YouDontFollowBackName = "you_dont_follow_back"
)

// csvHeader is the single column of tabular output
const csvHeader = "username"

// Manager writes result lists into an output directory
type Manager struct {
	outputDir string
}

// NewManager creates a new storage manager, creating outputDir if needed
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, igerrors.NewWrite(outputDir, "failed to create output directory", err)
	}

	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, igerrors.NewWrite(outputDir, "failed to resolve output directory", err)
	}

	return &Manager{outputDir: absDir}, nil
}

// GetOutputDir returns the output directory path
func (m *Manager) GetOutputDir() string {
	return m.outputDir
}

// PathFor returns the file path for a list name in the given format
func (m *Manager) PathFor(name, format string) string {
	return filepath.Join(m.outputDir, name+"."+format)
}

// WriteList writes usernames to <name>.<format>, replacing any existing file
func (m *Manager) WriteList(name, format string, usernames []string) (string, error) {
	encode, err := encoderFor(format)
	if err != nil {
		return "", err
	}

	filename := m.PathFor(name, format)
	if err := writeAtomic(filename, func(w io.Writer) error { return encode(w, usernames) }); err != nil {
		return "", igerrors.NewWrite(filename, "failed to write results", err)
	}
	return filename, nil
}

// WriteResults writes both result lists. Each file is attempted even when
// the other fails; all failures are returned together.
func (m *Manager) WriteResults(result followdiff.Result, format string) ([]string, error) {
	lists := []struct {
		name      string
		usernames []string
	}{
		{NotFollowingBackName, result.NotFollowingBack},
		{YouDontFollowBackName, result.YouDontFollowBack},
	}

	var written []string
	var errs []error
	for _, l := range lists {
		path, err := m.WriteList(l.name, format, l.usernames)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		written = append(written, path)
	}

	return written, errors.Join(errs...)
}

type encoder func(w io.Writer, usernames []string) error

func encoderFor(format string) (encoder, error) {
	switch format {
	case config.FormatText:
		return writeText, nil
	case config.FormatCSV:
		return writeCSV, nil
	default:
		return nil, igerrors.NewConfig(fmt.Sprintf("unsupported output format %q", format), nil)
	}
}

// writeText writes one username per line, each newline-terminated
func writeText(w io.Writer, usernames []string) error {
	bw := bufio.NewWriter(w)
	for _, u := range usernames {
		if _, err := bw.WriteString(u + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// writeCSV writes a username header followed by one row per username
func writeCSV(w io.Writer, usernames []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{csvHeader}); err != nil {
		return err
	}
	for _, u := range usernames {
		if err := cw.Write([]string{u}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeAtomic writes through a temporary file in the same directory and
// renames it over filename
func writeAtomic(filename string, fill func(io.Writer) error) error {
	tempFile := filename + ".tmp"
	out, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	err = fill(out)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to write data: %w", err)
	}
	if closeErr != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
