package filemap

import "sync/atomic"

// handle is the shared core of ReadOnlyHandle and ReadWriteHandle.
// The reference count starts at one for the opener; owned mappings
// retain and release it, and the descriptor is closed when the last
// reference is dropped.
type handle struct {
	fd     sysfd
	path   string
	refs   atomic.Int32
	closed atomic.Bool
}

func newHandle(fd sysfd, path string) *handle {
	h := &handle{fd: fd, path: path}
	h.refs.Store(1)
	return h
}

// retain adds a reference. The caller must already hold one.
func (h *handle) retain() {
	h.refs.Add(1)
}

// release drops a reference and closes the descriptor when the last
// one is gone.
func (h *handle) release() error {
	if h.refs.Add(-1) == 0 {
		return closeFD(h.fd)
	}
	return nil
}

// close releases the opener's reference. Only the first call has an
// effect; later calls return nil.
func (h *handle) close() error {
	if h.closed.Swap(true) {
		return nil
	}
	return h.release()
}

func (h *handle) isClosed() bool {
	return h.closed.Load()
}

func (h *handle) size() (int64, error) {
	return getFileSize(h.fd, h.path)
}

// ReadOnlyHandle is an open file that read-only mappings are created
// from. Size and Fd are safe to call concurrently; Close must not race
// with mapping creation.
type ReadOnlyHandle struct {
	h *handle
}

// OpenReadOnly opens an existing file for reading.
func OpenReadOnly(path string) (*ReadOnlyHandle, error) {
	fd, err := openReadOnlyHandle(path)
	if err != nil {
		return nil, err
	}
	return &ReadOnlyHandle{h: newHandle(fd, path)}, nil
}

// Name returns the path the handle was opened with.
func (h *ReadOnlyHandle) Name() string {
	return h.h.path
}

// Size returns the current size of the underlying file in bytes.
func (h *ReadOnlyHandle) Size() (int64, error) {
	return h.h.size()
}

// Fd returns the raw OS descriptor (file handle on Windows) for
// interop with other APIs. Ownership stays with the handle: the
// returned value must not be closed and is invalidated once the
// handle and all owned mappings sharing it are closed.
func (h *ReadOnlyHandle) Fd() uintptr {
	return uintptr(h.h.fd)
}

// Close releases the handle. The descriptor stays open until every
// owned mapping sharing it is closed as well. Close is idempotent.
func (h *ReadOnlyHandle) Close() error {
	return h.h.close()
}

// ReadWriteHandle is an open file that both read-only and read-write
// mappings are created from. Size and Fd are safe to call
// concurrently; Close must not race with mapping creation.
type ReadWriteHandle struct {
	h *handle
}

// OpenReadWrite opens an existing file for reading and writing. The
// file is not created if it does not exist; use CreatePreallocated
// for that.
func OpenReadWrite(path string) (*ReadWriteHandle, error) {
	fd, err := openReadWriteHandle(path)
	if err != nil {
		return nil, err
	}
	return &ReadWriteHandle{h: newHandle(fd, path)}, nil
}

// CreatePreallocated opens path for reading and writing, creating the
// file if needed, and sets its size to size bytes. Growing uses the
// platform preallocation primitive where one exists, shrinking
// truncates, and a matching size leaves the file untouched. On resize
// failure the descriptor is closed before the error is returned.
func CreatePreallocated(path string, size int64) (*ReadWriteHandle, error) {
	fd, err := openCreateHandle(path)
	if err != nil {
		return nil, err
	}
	if err := setFileSize(fd, path, size); err != nil {
		closeFD(fd)
		return nil, err
	}
	return &ReadWriteHandle{h: newHandle(fd, path)}, nil
}

// Name returns the path the handle was opened with.
func (h *ReadWriteHandle) Name() string {
	return h.h.path
}

// Size returns the current size of the underlying file in bytes.
func (h *ReadWriteHandle) Size() (int64, error) {
	return h.h.size()
}

// Fd returns the raw OS descriptor (file handle on Windows) for
// interop with other APIs. Ownership stays with the handle: the
// returned value must not be closed and is invalidated once the
// handle and all owned mappings sharing it are closed.
func (h *ReadWriteHandle) Fd() uintptr {
	return uintptr(h.h.fd)
}

// Close releases the handle. The descriptor stays open until every
// owned mapping sharing it is closed as well. Close is idempotent.
func (h *ReadWriteHandle) Close() error {
	return h.h.close()
}
