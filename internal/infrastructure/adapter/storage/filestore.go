// Package storage holds the object store adapters used for uploaded CNAB files.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	storageport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/storage"
)

// FileStore keeps uploaded files on local disk under dataDir.
// Locators are slash-separated paths relative to dataDir: 2025/06/01/<uuid>_<name>.
type FileStore struct {
	dataDir      string
	maxBytes     int64
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewFileStore creates dataDir if needed. maxBytes <= 0 disables the size limit.
func NewFileStore(dataDir string, maxBytes int64, timeProvider coreport.TimeProvider, logger coreport.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	return &FileStore{
		dataDir:      dataDir,
		maxBytes:     maxBytes,
		timeProvider: timeProvider,
		logger:       logger,
	}, nil
}

var (
	_ storageport.Reader = (*FileStore)(nil)
	_ storageport.Writer = (*FileStore)(nil)
)

// Save streams r to a temp file while hashing it, then renames it into place.
// The temp file is removed on any failure.
func (s *FileStore) Save(ctx context.Context, name string, r io.Reader) (*storageport.SavedObject, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	locator := s.newLocator(name)
	fullPath := s.fullPath(locator)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, err.Error())
	}

	tmpPath := fullPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, err.Error())
	}

	src := r
	if s.maxBytes > 0 {
		// one extra byte tells an oversized upload apart from one at the limit
		src = io.LimitReader(r, s.maxBytes+1)
	}

	hasher := sha256.New()
	size, err := io.Copy(f, io.TeeReader(src, hasher))
	if err == nil {
		err = ctx.Err()
	}
	if err == nil && s.maxBytes > 0 && size > s.maxBytes {
		err = errs.ErrFileTooLarge
	}
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpPath, fullPath)
	}

	if err != nil {
		_ = os.Remove(tmpPath)
		if errors.Is(err, errs.ErrFileTooLarge) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		s.logger.Error("Failed to write object", map[string]any{
			"locator": locator,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, err.Error())
	}

	return &storageport.SavedObject{
		Locator:   locator,
		SizeBytes: size,
		Checksum:  hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// Fetch opens the object at locator
func (s *FileStore) Fetch(ctx context.Context, locator string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validLocator(locator) {
		return nil, fmt.Errorf("%w: invalid locator %q", errs.ErrObjectNotFound, locator)
	}

	f, err := os.Open(s.fullPath(locator))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errs.ErrObjectNotFound, locator)
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, err.Error())
	}
	return f, nil
}

// Delete removes the object at locator
func (s *FileStore) Delete(ctx context.Context, locator string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validLocator(locator) {
		return fmt.Errorf("%w: invalid locator %q", errs.ErrObjectNotFound, locator)
	}

	if err := os.Remove(s.fullPath(locator)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, err.Error())
	}
	return nil
}

// DataDir returns the root directory of the store
func (s *FileStore) DataDir() string {
	return s.dataDir
}

func (s *FileStore) fullPath(locator string) string {
	return filepath.Join(s.dataDir, filepath.FromSlash(locator))
}

func (s *FileStore) newLocator(name string) string {
	day := s.timeProvider.Now().UTC().Format("2006/01/02")
	return path.Join(day, uuid.NewString()+"_"+sanitize(name))
}

// validLocator rejects absolute paths and anything escaping dataDir
func validLocator(locator string) bool {
	if locator == "" || path.IsAbs(locator) || strings.Contains(locator, `\`) {
		return false
	}
	clean := path.Clean(locator)
	return clean == locator && clean != "." && !strings.HasPrefix(clean, "../") && clean != ".."
}

// sanitize keeps letters, digits, dots, dashes and underscores of a file name
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
		}
	}

	out := strings.Trim(b.String(), ".")
	if len(out) > 64 {
		out = out[len(out)-64:]
	}
	if out == "" {
		return "file"
	}
	return out
}
