package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// Mem implements FileStore in memory. It is intended for tests and for
// running the appliance without a writable data directory.
type Mem struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMem creates an empty in-memory store.
func NewMem() *Mem {
	return &Mem{files: map[string][]byte{}}
}

// Read opens the named file for reading.
func (m *Mem) Read(_ context.Context, path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("storage: %s: %w", path, os.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Write opens the named file for writing. The content becomes visible
// when the returned WriteCloser is closed.
func (m *Mem) Write(_ context.Context, path string) (io.WriteCloser, error) {
	return &memWriter{store: m, path: path}, nil
}

// Exists reports whether the named file exists.
func (m *Mem) Exists(_ context.Context, path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok, nil
}

type memWriter struct {
	store *Mem
	path  string
	buf   bytes.Buffer
}

func (w *memWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *memWriter) Close() error {
	w.store.mu.Lock()
	defer w.store.mu.Unlock()
	w.store.files[w.path] = bytes.Clone(w.buf.Bytes())
	return nil
}
