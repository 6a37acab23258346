package filemap

import "sync/atomic"

// allocationGranularityCache holds the cached allocation granularity
// for the process. Zero means not yet queried. Concurrent first calls
// may both query and store; they store the same value.
var allocationGranularityCache atomic.Uint32

// allocationGranularity returns the platform allocation granularity:
// the alignment required for mapping offsets. On Unix systems this is
// the page size; on Windows it is the allocation granularity reported
// by the system, which is larger than the page size (64 KiB against
// 4 KiB pages on x86-64).
func allocationGranularity() uint32 {
	if g := allocationGranularityCache.Load(); g != 0 {
		return g
	}
	g := queryAllocationGranularity()
	allocationGranularityCache.Store(g)
	return g
}
