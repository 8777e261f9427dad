package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pocket8/eightball/pkg/storage"
)

// ErrFatal indicates that no usable catalog could be obtained even
// after regenerating the defaults. The appliance must not start.
var ErrFatal = errors.New("catalog: unrecoverable")

// Bootstrap obtains a usable catalog from the store, following the boot
// contract: load the document at path; if loading fails or yields zero
// usable entries, persist the default catalog and load again. A second
// failure is fatal: there is no valid state to run the session in
// without at least one response.
func Bootstrap(ctx context.Context, fs storage.FileStore, path string) (*Catalog, error) {
	c, err := loadFrom(ctx, fs, path)
	if err == nil {
		logLoaded(c, path)
		return c, nil
	}
	slog.Warn("catalog: load failed, regenerating defaults", "path", path, "error", err)

	if err := persistDefault(ctx, fs, path); err != nil {
		return nil, fmt.Errorf("%w: persist defaults: %v", ErrFatal, err)
	}

	c, err = loadFrom(ctx, fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: reload after regenerating defaults: %v", ErrFatal, err)
	}
	logLoaded(c, path)
	return c, nil
}

// loadFrom reads and parses the catalog document, treating an empty
// result as an error so that the caller falls back to defaults.
func loadFrom(ctx context.Context, fs storage.FileStore, path string) (*Catalog, error) {
	data, err := storage.ReadAll(ctx, fs, path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if c.Len() == 0 {
		return nil, ErrEmpty
	}
	return c, nil
}

// persistDefault writes the default catalog to the store in the
// storage format.
func persistDefault(ctx context.Context, fs storage.FileStore, path string) error {
	data, err := json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		return err
	}
	if err := storage.WriteAll(ctx, fs, path, data); err != nil {
		return err
	}
	slog.Info("catalog: wrote default catalog", "path", path, "entries", Default().Len())
	return nil
}

// logLoaded prints a short summary of the loaded catalog, echoing the
// first few entries with their resource markers.
func logLoaded(c *Catalog, path string) {
	slog.Info("catalog: loaded", "path", path, "entries", c.Len())
	for i := 0; i < c.Len() && i < 5; i++ {
		r := c.At(i)
		slog.Debug("catalog: entry", "index", i, "text", r.Text,
			"wav", r.WAV, "bitmap", r.Bitmap)
	}
}
