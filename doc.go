// Package filemap provides lightweight cross-platform file handles
// and shared memory mappings over them, for Unix-like systems and
// Windows.
//
// Key features:
//   - Read-only and read-write file handles with size queries and
//     preallocating creation
//   - Shared (file-backed) mappings at arbitrary byte offsets, with
//     alignment to the platform allocation granularity handled
//     internally
//   - Owned mappings that keep their handle alive through reference
//     counting, so handle and mapping may be closed in any order
//   - Best-effort access-pattern hints (willneed, sequential, random)
//   - Optional trimming of a requested window to the current file size
//
// Basic usage:
//
//	handle, err := filemap.OpenReadOnly("/path/to/data")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer handle.Close()
//
//	// Map 4 KiB starting at byte 1000; the offset does not need to
//	// be aligned.
//	m, err := filemap.NewReadOnlyMapping(handle, 1000, 4096)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//
//	m.Advise(filemap.AdviceSequential)
//	process(m.Bytes())
//
// Writable mappings work the same way over a ReadWriteHandle; their
// Bytes slice is a live view of the file:
//
//	handle, err := filemap.CreatePreallocated("/path/to/data", 1<<20)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer handle.Close()
//
//	m, err := filemap.NewReadWriteMapping(handle, 0, 1<<20)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//
//	copy(m.Bytes(), record)
//	if err := m.Sync(); err != nil {
//	    log.Fatal(err)
//	}
package filemap
