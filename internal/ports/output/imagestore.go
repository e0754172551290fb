package output

import "context"

// ImageObject is a stored photo payload addressed by its handle.
type ImageObject struct {
	ID          string // Handle identifier
	Name        string // Original file name
	ContentType string // MIME type
	Data        []byte // Image bytes
}

// ImageStore defines the secondary port for transient image storage. Handles
// behave like browser object URLs: acquired on ingest, valid for the session,
// and released explicitly on clear so memory is not leaked.
type ImageStore interface {
	// Put stores image bytes and returns a fresh handle.
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)

	// Get returns the stored object for a handle.
	Get(ctx context.Context, id string) (ImageObject, error)

	// Release frees a single handle.
	Release(ctx context.Context, id string) error

	// ReleaseAll frees every handle in the store.
	ReleaseAll(ctx context.Context) error

	// Count returns the number of stored images.
	Count(ctx context.Context) int
}
