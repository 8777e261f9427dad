// Package storage defines the FileStore interface the appliance uses to
// read and write files: the response catalog document and the WAV clips
// it references. It abstracts the backing medium (SD card, local disk,
// memory for tests) away from application code.
package storage

import (
	"context"
	"fmt"
	"io"
)

// FileStore is a minimal interface for file-oriented storage.
//
// Paths are forward-slash separated and relative to the store root.
type FileStore interface {
	// Read opens the named file for reading.
	// The caller must close the returned ReadCloser when done.
	// If the file does not exist, an error wrapping os.ErrNotExist is returned.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Write opens the named file for writing, truncating any existing
	// content and creating parent directories as needed.
	// The caller must close the returned WriteCloser to flush data.
	Write(ctx context.Context, path string) (io.WriteCloser, error)

	// Exists reports whether the named file exists.
	Exists(ctx context.Context, path string) (bool, error)
}

// ReadAll reads the full contents of the named file.
func ReadAll(ctx context.Context, fs FileStore, path string) ([]byte, error) {
	r, err := fs.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	return data, nil
}

// WriteAll writes data to the named file, replacing any existing content.
func WriteAll(ctx context.Context, fs FileStore, path string, data []byte) error {
	w, err := fs.Write(ctx, path)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("storage: write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("storage: close %s: %w", path, err)
	}
	return nil
}
