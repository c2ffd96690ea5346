// Package output renders the aggregated document and writes it to disk.
package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2/quick"
	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"

	"github.com/anyshake/prisma/internal/aggregate"
	"github.com/anyshake/prisma/internal/config"
	"github.com/anyshake/prisma/internal/errors"
	"github.com/anyshake/prisma/internal/logging"
)

// Render serializes doc in the given format. The result always ends with a
// newline.
func Render(doc *aggregate.Aggregator, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case config.FormatJSON, "":
		data, err = doc.JSON()
	case config.FormatYAML:
		data, err = doc.YAML()
	case config.FormatTOML:
		data, err = doc.TOML()
	default:
		return nil, errors.OutputError("render", fmt.Errorf("unsupported format %q", format))
	}
	if err != nil {
		return nil, errors.OutputError("render", err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	return data, nil
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Highlight writes data colorized for a 256-color terminal.
func Highlight(w io.Writer, data []byte, format, style string) error {
	if format == "" {
		format = config.FormatJSON
	}
	return quick.Highlight(w, string(data), format, "terminal256", style)
}

// Print writes data to w, highlighted when requested and w is a terminal.
func Print(w io.Writer, data []byte, format string, highlight bool, style string) error {
	if highlight && IsTerminal(w) {
		err := Highlight(w, data, format, style)
		if err == nil {
			return nil
		}
		logging.Debug("highlighting failed, printing plain", "error", err)
	}
	_, err := w.Write(data)
	return err
}

// Write stores data as name inside dir and returns the final path. The name
// cannot escape dir. The file is replaced atomically while holding a lock,
// so concurrent prisma runs never interleave their output.
func Write(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.OutputError("write", fmt.Errorf("failed to create output directory: %w", err))
	}

	path, err := securejoin.SecureJoin(dir, name)
	if err != nil {
		return "", errors.OutputError("write", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.OutputError("write", fmt.Errorf("failed to create output directory: %w", err))
	}

	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return "", errors.OutputError("lock", err)
	}
	if !ok {
		return "", errors.OutputError("lock", fmt.Errorf("%s is being written by another process", path))
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logging.Warn("failed to release output lock", "path", lockPath, "error", err)
		}
		os.Remove(lockPath)
	}()

	if err := replaceFile(path, data); err != nil {
		return "", errors.OutputError("write", err)
	}
	logging.Debug("wrote document", "path", path, "bytes", len(data))
	return path, nil
}

func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
