package filemap

import "sync/atomic"

// OwnedReadOnlyMapping is a ReadOnlyMapping that shares ownership of
// its handle: the descriptor stays open until the opener and every
// owned mapping created from the handle are closed, in any order.
// Close is safe to call concurrently; everything else follows the
// borrowed mapping's rules.
type OwnedReadOnlyMapping struct {
	ReadOnlyMapping
	handle *ReadOnlyHandle
	closed atomic.Bool
}

// NewOwnedReadOnlyMapping maps length bytes of h starting at offset
// and takes a reference on h, keeping the descriptor open for the
// lifetime of the mapping. Several owned mappings may share one
// handle.
func NewOwnedReadOnlyMapping(h *ReadOnlyHandle, offset int64, length int, opts ...MappingOption) (*OwnedReadOnlyMapping, error) {
	var core *handle
	if h != nil {
		core = h.h
	}
	m, err := newMapping(core, offset, length, false, opts)
	if err != nil {
		return nil, err
	}
	core.retain()
	return &OwnedReadOnlyMapping{
		ReadOnlyMapping: ReadOnlyMapping{m: m},
		handle:          h,
	}, nil
}

// Handle returns the shared handle for inspection. The mapping keeps
// its own reference, so closing the returned handle only releases the
// opener's reference.
func (m *OwnedReadOnlyMapping) Handle() *ReadOnlyHandle {
	return m.handle
}

// Close unmaps the region and releases the mapping's reference on the
// handle; the descriptor is closed once the last reference is gone.
// Close is idempotent.
func (m *OwnedReadOnlyMapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	err := m.ReadOnlyMapping.Close()
	if rerr := m.handle.h.release(); err == nil {
		err = rerr
	}
	return err
}

// OwnedReadWriteMapping is a ReadWriteMapping that shares ownership
// of its handle: the descriptor stays open until the opener and every
// owned mapping created from the handle are closed, in any order.
// Close is safe to call concurrently; everything else follows the
// borrowed mapping's rules.
type OwnedReadWriteMapping struct {
	ReadWriteMapping
	handle *ReadWriteHandle
	closed atomic.Bool
}

// NewOwnedReadWriteMapping maps length bytes of h starting at offset
// for reading and writing, and takes a reference on h, keeping the
// descriptor open for the lifetime of the mapping. Several owned
// mappings may share one handle.
func NewOwnedReadWriteMapping(h *ReadWriteHandle, offset int64, length int, opts ...MappingOption) (*OwnedReadWriteMapping, error) {
	var core *handle
	if h != nil {
		core = h.h
	}
	m, err := newMapping(core, offset, length, true, opts)
	if err != nil {
		return nil, err
	}
	core.retain()
	return &OwnedReadWriteMapping{
		ReadWriteMapping: ReadWriteMapping{m: m},
		handle:           h,
	}, nil
}

// Handle returns the shared handle for inspection. The mapping keeps
// its own reference, so closing the returned handle only releases the
// opener's reference.
func (m *OwnedReadWriteMapping) Handle() *ReadWriteHandle {
	return m.handle
}

// Close unmaps the region and releases the mapping's reference on the
// handle; the descriptor is closed once the last reference is gone.
// Close is idempotent.
func (m *OwnedReadWriteMapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	err := m.ReadWriteMapping.Close()
	if rerr := m.handle.h.release(); err == nil {
		err = rerr
	}
	return err
}
