package filemap

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenReadOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.dat")

	data := []byte("Hello, World!")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	h, err := OpenReadOnly(path)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	size, err := h.Size()
	if err != nil {
		t.Fatal(err)
	}
	if size != int64(len(data)) {
		t.Errorf("size mismatch: got %d, want %d", size, len(data))
	}
	if h.Fd() == 0 {
		t.Error("expected a valid descriptor")
	}
	if h.Name() != path {
		t.Errorf("name mismatch: got %q, want %q", h.Name(), path)
	}
}

func TestOpenReadOnlyNonexistent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist.dat")

	_, err := OpenReadOnly(path)
	if err == nil {
		t.Fatal("expected an error")
	}

	var herr *HandleError
	if !errors.As(err, &herr) {
		t.Fatalf("expected a HandleError, got %T", err)
	}
	if herr.Kind != ErrOpenFileHandle {
		t.Errorf("kind mismatch: got %d, want %d", herr.Kind, ErrOpenFileHandle)
	}
	if herr.Path != path {
		t.Errorf("path mismatch: got %q, want %q", herr.Path, path)
	}
	if herr.Errno() == 0 {
		t.Error("expected a native error code")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected the error to match fs.ErrNotExist")
	}
}

func TestOpenReadWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.dat")

	if err := os.WriteFile(path, []byte("Hello"), 0644); err != nil {
		t.Fatal(err)
	}

	h, err := OpenReadWrite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	size, err := h.Size()
	if err != nil {
		t.Fatal(err)
	}
	if size != 5 {
		t.Errorf("size mismatch: got %d, want 5", size)
	}
}

func TestOpenReadWriteNonexistent(t *testing.T) {
	dir := t.TempDir()

	_, err := OpenReadWrite(filepath.Join(dir, "missing.dat"))
	if err == nil {
		t.Fatal("expected an error: OpenReadWrite must not create files")
	}
	if HandleKind(err) != ErrOpenFileHandle {
		t.Errorf("kind mismatch: got %d, want %d", HandleKind(err), ErrOpenFileHandle)
	}
}

func TestCreatePreallocated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prealloc.dat")

	h, err := CreatePreallocated(path, 65536)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	size, err := h.Size()
	if err != nil {
		t.Fatal(err)
	}
	if size != 65536 {
		t.Errorf("size mismatch: got %d, want 65536", size)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() != 65536 {
		t.Errorf("on-disk size mismatch: got %d, want 65536", fi.Size())
	}
}

func TestCreatePreallocatedGrow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grow.dat")

	if err := os.WriteFile(path, []byte("Hello"), 0644); err != nil {
		t.Fatal(err)
	}

	h, err := CreatePreallocated(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 10 {
		t.Fatalf("size mismatch: got %d, want 10", len(data))
	}
	if !bytes.Equal(data[:5], []byte("Hello")) {
		t.Errorf("existing content clobbered: got %q", data[:5])
	}
	if !bytes.Equal(data[5:], make([]byte, 5)) {
		t.Errorf("extension not zero-filled: got %v", data[5:])
	}
}

func TestCreatePreallocatedShrink(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shrink.dat")

	if err := os.WriteFile(path, []byte("Hello, World!"), 0644); err != nil {
		t.Fatal(err)
	}

	h, err := CreatePreallocated(path, 5)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte("Hello")) {
		t.Errorf("content mismatch after shrink: got %q, want %q", data, "Hello")
	}
}

func TestCreatePreallocatedSameSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "same.dat")

	content := []byte("Hello, World!")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	h, err := CreatePreallocated(path, int64(len(content)))
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("content changed: got %q, want %q", data, content)
	}
}

func TestCreatePreallocatedNegativeSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "negative.dat")

	_, err := CreatePreallocated(path, -1)
	if err == nil {
		t.Fatal("expected an error")
	}
	if HandleKind(err) != ErrSetFileSize {
		t.Errorf("kind mismatch: got %d, want %d", HandleKind(err), ErrSetFileSize)
	}
}

func TestOpenTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shared.dat")

	if err := os.WriteFile(path, []byte("shared between handles"), 0644); err != nil {
		t.Fatal(err)
	}

	// The same file may be held open through several handles at once.
	h1, err := OpenReadOnly(path)
	if err != nil {
		t.Fatal(err)
	}
	defer h1.Close()

	h2, err := OpenReadWrite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer h2.Close()

	s1, err := h1.Size()
	if err != nil {
		t.Fatal(err)
	}
	s2, err := h2.Size()
	if err != nil {
		t.Fatal(err)
	}
	if s1 != s2 {
		t.Errorf("sizes disagree: %d vs %d", s1, s2)
	}
}

func TestHandleCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "close.dat")

	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	h, err := OpenReadOnly(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
}

func TestSizeTracksFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracked.dat")

	if err := os.WriteFile(path, []byte("12345"), 0644); err != nil {
		t.Fatal(err)
	}

	h, err := OpenReadOnly(path)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	// Grow the file behind the handle's back; Size reflects it.
	if err := os.WriteFile(path, []byte("1234567890"), 0644); err != nil {
		t.Fatal(err)
	}

	size, err := h.Size()
	if err != nil {
		t.Fatal(err)
	}
	if size != 10 {
		t.Errorf("size mismatch: got %d, want 10", size)
	}
}
