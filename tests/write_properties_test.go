package tests

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Giulio2002/filemap"
)

// TestConcurrentDisjointWrites has several goroutines write disjoint
// windows of one file through their own mappings and checks the final
// file state against the same writes performed with plain file I/O.
func TestConcurrentDisjointWrites(t *testing.T) {
	const (
		workers    = 8
		windowSize = 4096
	)
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, workers*windowSize), 0644))

	h, err := filemap.OpenReadWrite(path)
	require.NoError(t, err)
	defer h.Close()

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			m, err := filemap.NewReadWriteMapping(h, int64(w*windowSize), windowSize)
			if err != nil {
				errs[w] = err
				return
			}
			defer m.Close()
			for i := range m.Bytes() {
				m.Bytes()[i] = byte(w + 1)
			}
			errs[w] = m.Sync()
		}(w)
	}
	wg.Wait()
	for w, err := range errs {
		require.NoError(t, err, "worker %d", w)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for w := 0; w < workers; w++ {
		window := data[w*windowSize : (w+1)*windowSize]
		require.True(t, bytes.Equal(window, bytes.Repeat([]byte{byte(w + 1)}, windowSize)),
			"window %d corrupted", w)
	}
}

// TestWritesPersistWithoutSync checks that dirty pages survive the
// unmap itself: the OS owns write-back for shared mappings.
func TestWritesPersistWithoutSync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 256), 0644))

	h, err := filemap.OpenReadWrite(path)
	require.NoError(t, err)

	m, err := filemap.NewReadWriteMapping(h, 0, 256)
	require.NoError(t, err)
	copy(m.Bytes(), "no explicit sync")
	require.NoError(t, m.Close())
	require.NoError(t, h.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("no explicit sync"), data[:16])
}

// TestInterleavedWindowsShareState maps two overlapping windows and
// checks that a write through one is read back through the other.
func TestInterleavedWindowsShareState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 8192), 0644))

	h, err := filemap.OpenReadWrite(path)
	require.NoError(t, err)
	defer h.Close()

	a, err := filemap.NewReadWriteMapping(h, 0, 8192)
	require.NoError(t, err)
	defer a.Close()

	b, err := filemap.NewReadWriteMapping(h, 4000, 200)
	require.NoError(t, err)
	defer b.Close()

	copy(a.Bytes()[4000:], "through the wide view")
	require.Equal(t, []byte("through the wide view"), b.Bytes()[:21])

	copy(b.Bytes()[100:], "and back")
	require.Equal(t, []byte("and back"), a.Bytes()[4100:4108])
}
