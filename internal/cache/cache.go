package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
)

// Dir returns the cache directory path, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".aztlint", "cache")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// Key computes a unique key filename from its inputs (e.g. scheme tag + path
// + file content).
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Load returns the cached bytes for key, if present.
func Load(key string) ([]byte, bool) {
	dir, err := Dir()
	if err != nil {
		return nil, false
	}
	b, err := os.ReadFile(filepath.Join(dir, key))
	if err != nil {
		return nil, false
	}
	return b, true
}

// Store writes the bytes for key. Failures are non-fatal for callers: the
// cache is an optimization, never a source of truth.
func Store(key string, data []byte) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, key), data, 0o644)
}
