package catalog

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/pocket8/eightball/pkg/storage"
)

func TestBootstrap_LoadsExisting(t *testing.T) {
	ctx := context.Background()
	fs := storage.NewMem()
	doc := []byte(`[{"text": "Only answer"}]`)
	if err := storage.WriteAll(ctx, fs, "responses.json", doc); err != nil {
		t.Fatal(err)
	}

	c, err := Bootstrap(ctx, fs, "responses.json")
	if err != nil {
		t.Fatalf("Bootstrap error: %v", err)
	}
	if c.Len() != 1 || c.At(0).Text != "Only answer" {
		t.Errorf("got %+v; want the stored catalog", c.Responses())
	}
}

func TestBootstrap_GeneratesDefaultWhenMissing(t *testing.T) {
	ctx := context.Background()
	fs := storage.NewMem()

	c, err := Bootstrap(ctx, fs, "responses.json")
	if err != nil {
		t.Fatalf("Bootstrap error: %v", err)
	}
	if c.Len() != 30 {
		t.Errorf("Len = %d; want 30 (defaults)", c.Len())
	}

	// The defaults must have been persisted to the store.
	ok, err := fs.Exists(ctx, "responses.json")
	if err != nil || !ok {
		t.Errorf("defaults not persisted: ok=%v err=%v", ok, err)
	}

	// A second boot loads the persisted file.
	again, err := Bootstrap(ctx, fs, "responses.json")
	if err != nil {
		t.Fatalf("second Bootstrap error: %v", err)
	}
	if again.Len() != 30 {
		t.Errorf("second boot Len = %d; want 30", again.Len())
	}
}

func TestBootstrap_GeneratesDefaultWhenEmpty(t *testing.T) {
	ctx := context.Background()
	fs := storage.NewMem()
	if err := storage.WriteAll(ctx, fs, "responses.json", []byte(`[{"text": ""}]`)); err != nil {
		t.Fatal(err)
	}

	c, err := Bootstrap(ctx, fs, "responses.json")
	if err != nil {
		t.Fatalf("Bootstrap error: %v", err)
	}
	if c.Len() != 30 {
		t.Errorf("Len = %d; want 30 (defaults replace empty catalog)", c.Len())
	}
}

func TestBootstrap_GeneratesDefaultWhenMalformed(t *testing.T) {
	ctx := context.Background()
	fs := storage.NewMem()
	if err := storage.WriteAll(ctx, fs, "responses.json", []byte(`{not json`)); err != nil {
		t.Fatal(err)
	}

	c, err := Bootstrap(ctx, fs, "responses.json")
	if err != nil {
		t.Fatalf("Bootstrap error: %v", err)
	}
	if c.Len() != 30 {
		t.Errorf("Len = %d; want 30", c.Len())
	}
}

// readOnlyStore fails all writes, so the regenerated defaults can
// never be persisted.
type readOnlyStore struct {
	*storage.Mem
}

func (readOnlyStore) Write(context.Context, string) (io.WriteCloser, error) {
	return nil, errors.New("read-only store")
}

func TestBootstrap_Fatal(t *testing.T) {
	ctx := context.Background()
	fs := readOnlyStore{storage.NewMem()}

	_, err := Bootstrap(ctx, fs, "responses.json")
	if !errors.Is(err, ErrFatal) {
		t.Errorf("Bootstrap error = %v; want ErrFatal", err)
	}
}
