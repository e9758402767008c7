// Package cache provides a filesystem-backed TTL cache for decoded API responses.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphadex-cli/alphadex/filesystem"
	"github.com/alphadex-cli/alphadex/log"
	"github.com/spf13/afero"
)

// Store keeps JSON documents under dir until they are older than ttl.
type Store struct {
	dir string
	ttl time.Duration
}

// New returns a store rooted at dir.
func New(dir string, ttl time.Duration) *Store {
	return &Store{dir: dir, ttl: ttl}
}

// Key generates a deterministic SHA-256 identifier for a request URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(url))))
	return hex.EncodeToString(hash[:])
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Read decodes the cached document into target if it exists and has not expired.
func (s *Store) Read(key string, target any) bool {
	fs := filesystem.API()
	path := s.path(key)

	info, err := fs.Stat(path)
	if err != nil || time.Since(info.ModTime()) > s.ttl {
		return false
	}

	f, err := fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(target); err != nil {
		log.Warnf("cache entry %s is corrupt: %s", key, err)
		return false
	}
	return true
}

// Write persists data using a temporary file and a rename.
func (s *Store) Write(key string, data any) error {
	fs := filesystem.API()
	if err := fs.MkdirAll(s.dir, os.ModePerm); err != nil {
		return err
	}

	path := s.path(key)
	tmpPath := path + ".tmp"

	f, err := fs.Create(tmpPath)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return fs.Rename(tmpPath, path)
}

// CollectGarbage removes expired entries and returns how many were deleted.
func (s *Store) CollectGarbage() (removed int) {
	fs := filesystem.API()
	_ = afero.Walk(fs, s.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > s.ttl {
			if fs.Remove(path) == nil {
				removed++
			}
		}
		return nil
	})
	return
}
