package storage

import (
	"context"
	"errors"
	"os"
	"testing"
)

func testStore(t *testing.T, fs FileStore) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadAll(ctx, fs, "nope.json")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("ReadAll(missing) error = %v; want os.ErrNotExist", err)
		}

		ok, err := fs.Exists(ctx, "nope.json")
		if err != nil || ok {
			t.Errorf("Exists(missing) = %v, %v; want false, nil", ok, err)
		}
	})

	t.Run("write then read", func(t *testing.T) {
		if err := WriteAll(ctx, fs, "sub/dir/clip.wav", []byte("hello")); err != nil {
			t.Fatalf("WriteAll error: %v", err)
		}

		ok, err := fs.Exists(ctx, "sub/dir/clip.wav")
		if err != nil || !ok {
			t.Errorf("Exists = %v, %v; want true, nil", ok, err)
		}

		data, err := ReadAll(ctx, fs, "sub/dir/clip.wav")
		if err != nil {
			t.Fatalf("ReadAll error: %v", err)
		}
		if string(data) != "hello" {
			t.Errorf("ReadAll = %q; want %q", data, "hello")
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := WriteAll(ctx, fs, "x", []byte("first")); err != nil {
			t.Fatalf("WriteAll error: %v", err)
		}
		if err := WriteAll(ctx, fs, "x", []byte("second")); err != nil {
			t.Fatalf("WriteAll error: %v", err)
		}
		data, err := ReadAll(ctx, fs, "x")
		if err != nil {
			t.Fatalf("ReadAll error: %v", err)
		}
		if string(data) != "second" {
			t.Errorf("ReadAll = %q; want %q", data, "second")
		}
	})
}

func TestLocal(t *testing.T) {
	fs, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal error: %v", err)
	}
	testStore(t, fs)
}

func TestMem(t *testing.T) {
	testStore(t, NewMem())
}
