package pscript

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// scriptExpiry is how long a materialized script may sit on disk before it
// is regenerated. Old files are swept opportunistically on directory access.
const scriptExpiry = 24 * time.Hour

// Dir returns the on-disk script directory, creating it if needed.
// Scripts live under the user temp directory so they never outlive reboots
// in any way that matters; the registry is the only durable store.
func Dir() (string, error) {
	dir := filepath.Join(os.TempDir(), "accesskit")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("pscript: create script dir: %w", err)
	}
	cleanupExpired(dir)
	return dir, nil
}

// Path returns the materialized script file for a kind, generating and
// writing it when missing. The write is atomic enough for our purposes:
// a concurrent writer produces identical content.
func Path(s Script) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, s.String()+".ps1")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	content, err := Generate(s)
	if err != nil {
		return "", err
	}
	if err := writeScriptFile(path, content); err != nil {
		return "", err
	}
	return path, nil
}

// writeScriptFile writes the script with a UTF-8 byte-order mark. Windows
// PowerShell treats BOM-less files as the legacy codepage, which corrupts
// non-ASCII paths embedded in output comparisons.
func writeScriptFile(path, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pscript: create script: %w", err)
	}

	w := transform.NewWriter(f, unicode.UTF8BOM.NewEncoder())
	if _, err := w.Write([]byte(content)); err != nil {
		f.Close()
		return fmt.Errorf("pscript: write script: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("pscript: flush script: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("pscript: close script: %w", err)
	}
	return nil
}

// cleanupExpired removes scripts older than the expiry. Best-effort; errors
// are ignored so a locked file cannot block script access.
func cleanupExpired(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-scriptExpiry)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, entry.Name()))
		}
	}
}
