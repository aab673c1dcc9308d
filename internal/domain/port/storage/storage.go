package storage

import (
	"context"
	"io"
)

// Reader fetches stored file content
type Reader interface {
	// Fetch opens the object at locator. The caller closes the returned stream.
	//
	// Possible errors:
	// - ErrObjectNotFound: If nothing is stored at locator
	// - ErrStorageUnavailable: If the backend cannot be read
	Fetch(ctx context.Context, locator string) (io.ReadCloser, error)
}

// SavedObject describes content written by a Writer
type SavedObject struct {
	Locator   string
	SizeBytes int64
	Checksum  string // hex sha256
}

// Writer stores uploaded file content
type Writer interface {
	// Save copies r into storage under a new locator derived from name
	//
	// Possible errors:
	// - ErrFileTooLarge: If r is larger than the configured limit
	// - ErrStorageUnavailable: If the backend cannot be written
	Save(ctx context.Context, name string, r io.Reader) (*SavedObject, error)

	// Delete removes the object at locator. Deleting a missing object is not an error.
	//
	// Possible errors:
	// - ErrObjectNotFound: If locator is malformed
	// - ErrStorageUnavailable: If the backend cannot be written
	Delete(ctx context.Context, locator string) error
}
