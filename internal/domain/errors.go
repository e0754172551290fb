package domain

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnsupported  = errors.New("unsupported operation")
	ErrInternal     = errors.New("internal error")
	ErrUnavailable  = errors.New("service unavailable")
)

// Specific errors.
var (
	// ErrNoGeotag marks a photo without usable GPS metadata. Expected for
	// non-geotagged photos; callers skip the file rather than fail the batch.
	ErrNoGeotag = fmt.Errorf("photo has no geotag: %w", ErrNotFound)

	// ErrEmptyCollection marks markup that parsed but produced no geometry.
	ErrEmptyCollection = fmt.Errorf("geometry collection is empty: %w", ErrInvalidInput)

	ErrPhotoNotFound      = fmt.Errorf("photo: %w", ErrNotFound)
	ErrOverlayNotFound    = fmt.Errorf("overlay: %w", ErrNotFound)
	ErrInvalidCoordinate  = fmt.Errorf("coordinate: %w", ErrInvalidInput)
	ErrUnsupportedFormat  = fmt.Errorf("file format: %w", ErrUnsupported)
	ErrStorageUnavailable = fmt.Errorf("storage: %w", ErrUnavailable)
)

// ValidationError represents a detailed validation error.
type ValidationError struct {
	Field      string      // Field that failed validation
	Value      interface{} // The invalid value
	Constraint string      // The constraint that was violated
	Message    string      // Human-readable message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v, constraint: %s)",
		e.Field, e.Message, e.Value, e.Constraint)
}

// Unwrap returns the underlying error type.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// IngestError represents a per-file failure inside the ingestion pipeline.
// These are recovered locally: the file is skipped and the batch continues.
type IngestError struct {
	File  string // Source file name
	Stage string // Pipeline stage that failed (extract, decode, geotag)
	Err   error  // Underlying error
}

// Error implements the error interface.
func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest error in %s stage for %s: %v", e.Stage, e.File, e.Err)
}

// Unwrap returns the underlying error.
func (e *IngestError) Unwrap() error {
	return e.Err
}

// StorageError represents an error during seed storage operations.
type StorageError struct {
	Operation string // Operation that failed (download, list, etc.)
	Key       string // Object key
	Err       error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage error during %s for %s: %v",
			e.Operation, e.Key, e.Err)
	}
	return fmt.Sprintf("storage error during %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string // Configuration field
	Message string // Error message
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidInput
}
