package filemap

// MappingOption configures mapping creation.
type MappingOption func(*mappingOptions)

type mappingOptions struct {
	trimToFileSize bool
}

// WithTrimToFileSize clamps the requested length to the current file
// size: a window starting at or past the end of the file becomes
// empty, and one extending past the end is shortened to stop exactly
// at the end. Without this option the window is mapped as requested,
// and accessing pages past the end of the file faults.
func WithTrimToFileSize() MappingOption {
	return func(o *mappingOptions) {
		o.trimToFileSize = true
	}
}

// mapping is the shared core of the mapping types. data covers the
// full OS-mapped region, which starts at the aligned offset;
// adjustment is the number of leading bytes between the aligned and
// the requested offset. Nil data is the degenerate empty mapping,
// which holds no OS resources.
type mapping struct {
	data       []byte
	adjustment int
}

// newMapping maps length bytes of h starting at offset. The offset is
// aligned down to the allocation granularity and the difference is
// hidden: the public window starts exactly at offset.
func newMapping(h *handle, offset int64, length int, writable bool, opts []MappingOption) (mapping, error) {
	if h == nil {
		return mapping{}, mappingFailed("nil handle")
	}
	if h.isClosed() {
		return mapping{}, mappingFailed("handle is closed")
	}
	if offset < 0 {
		return mapping{}, mappingFailed("negative offset")
	}
	if length < 0 {
		return mapping{}, mappingFailed("negative length")
	}
	if length == 0 {
		return mapping{}, nil
	}

	var o mappingOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.trimToFileSize {
		size, err := h.size()
		if err != nil {
			return mapping{}, newMappingError(ErrMappingFileSize, err)
		}
		length = trimLength(size, offset, length)
		if length == 0 {
			return mapping{}, nil
		}
	}

	granularity := int64(allocationGranularity())
	alignedOffset := offset &^ (granularity - 1)
	adjustment := int(offset - alignedOffset)
	data, err := mapShared(h.fd, alignedOffset, length+adjustment, writable)
	if err != nil {
		return mapping{}, err
	}
	return mapping{data: data, adjustment: adjustment}, nil
}

// trimLength clamps a requested window to the current file size.
func trimLength(fileSize, offset int64, length int) int {
	if offset >= fileSize {
		return 0
	}
	if remaining := fileSize - offset; int64(length) > remaining {
		return int(remaining)
	}
	return length
}

// view returns the requested window of the mapped region.
func (m *mapping) view() []byte {
	if m.data == nil {
		return nil
	}
	return m.data[m.adjustment:]
}

func (m *mapping) length() int {
	return len(m.data) - m.adjustment
}

// advise forwards each set hint to the OS, applied to the full mapped
// region. Failures are ignored.
func (m *mapping) advise(advice MemoryAdvice) {
	if m.data == nil {
		return
	}
	adviseRegion(m.data, advice)
}

func (m *mapping) sync() error {
	if m.data == nil {
		return nil
	}
	return syncRegion(m.data)
}

func (m *mapping) lock() error {
	if m.data == nil {
		return nil
	}
	return lockRegion(m.data)
}

func (m *mapping) unlock() error {
	if m.data == nil {
		return nil
	}
	return unlockRegion(m.data)
}

// close unmaps the full region. Closing an empty or already closed
// mapping is a no-op.
func (m *mapping) close() error {
	if m.data == nil {
		return nil
	}
	err := unmapShared(m.data)
	m.data = nil
	m.adjustment = 0
	return err
}

// ReadOnlyMapping is a read-only shared view of a file region. The
// view stays valid if the handle it was created from is closed first;
// creating new mappings from a closed handle is rejected. Reads may
// happen from multiple goroutines, but Close must not race with them.
type ReadOnlyMapping struct {
	m mapping
}

// NewReadOnlyMapping maps length bytes of h starting at offset. The
// offset does not need to be aligned; alignment to the platform
// allocation granularity is handled internally. A zero length, before
// or after trimming, yields an empty mapping without touching the OS.
func NewReadOnlyMapping(h *ReadOnlyHandle, offset int64, length int, opts ...MappingOption) (*ReadOnlyMapping, error) {
	var core *handle
	if h != nil {
		core = h.h
	}
	m, err := newMapping(core, offset, length, false, opts)
	if err != nil {
		return nil, err
	}
	return &ReadOnlyMapping{m: m}, nil
}

// Bytes returns the mapped window. The slice aliases the shared view;
// it is nil for empty or closed mappings.
func (m *ReadOnlyMapping) Bytes() []byte {
	return m.m.view()
}

// Len returns the length of the mapped window in bytes.
func (m *ReadOnlyMapping) Len() int {
	return m.m.length()
}

// IsEmpty reports whether the mapping has zero length.
func (m *ReadOnlyMapping) IsEmpty() bool {
	return m.m.length() == 0
}

// Advise hints the expected access pattern for the mapped region.
// Hints are best effort and never affect correctness.
func (m *ReadOnlyMapping) Advise(advice MemoryAdvice) {
	m.m.advise(advice)
}

// Lock pins the mapped region in physical memory.
func (m *ReadOnlyMapping) Lock() error {
	return m.m.lock()
}

// Unlock releases a previous Lock.
func (m *ReadOnlyMapping) Unlock() error {
	return m.m.unlock()
}

// Close unmaps the region. Close is idempotent.
func (m *ReadOnlyMapping) Close() error {
	return m.m.close()
}

// ReadWriteMapping is a writable shared view of a file region. Writes
// land in the file's shared pages: they are visible to every other
// mapping of the same range and written back to the file by the OS.
// The view stays valid if the handle it was created from is closed
// first; creating new mappings from a closed handle is rejected.
type ReadWriteMapping struct {
	m mapping
}

// NewReadWriteMapping maps length bytes of h starting at offset for
// reading and writing. The offset does not need to be aligned;
// alignment to the platform allocation granularity is handled
// internally. A zero length, before or after trimming, yields an
// empty mapping without touching the OS.
func NewReadWriteMapping(h *ReadWriteHandle, offset int64, length int, opts ...MappingOption) (*ReadWriteMapping, error) {
	var core *handle
	if h != nil {
		core = h.h
	}
	m, err := newMapping(core, offset, length, true, opts)
	if err != nil {
		return nil, err
	}
	return &ReadWriteMapping{m: m}, nil
}

// Bytes returns the mapped window as a writable slice backed by the
// shared view; it is nil for empty or closed mappings.
func (m *ReadWriteMapping) Bytes() []byte {
	return m.m.view()
}

// Len returns the length of the mapped window in bytes.
func (m *ReadWriteMapping) Len() int {
	return m.m.length()
}

// IsEmpty reports whether the mapping has zero length.
func (m *ReadWriteMapping) IsEmpty() bool {
	return m.m.length() == 0
}

// Advise hints the expected access pattern for the mapped region.
// Hints are best effort and never affect correctness.
func (m *ReadWriteMapping) Advise(advice MemoryAdvice) {
	m.m.advise(advice)
}

// Sync flushes the mapped region to the underlying file and blocks
// until the write-back completes.
func (m *ReadWriteMapping) Sync() error {
	return m.m.sync()
}

// Lock pins the mapped region in physical memory.
func (m *ReadWriteMapping) Lock() error {
	return m.m.lock()
}

// Unlock releases a previous Lock.
func (m *ReadWriteMapping) Unlock() error {
	return m.m.unlock()
}

// Close unmaps the region without flushing it first; call Sync for
// durability. Close is idempotent.
func (m *ReadWriteMapping) Close() error {
	return m.m.close()
}
