//go:build unix

package filemap

import "syscall"

// queryAllocationGranularity returns the system page size. Mapping
// offsets on Unix systems only need page alignment.
func queryAllocationGranularity() uint32 {
	return uint32(syscall.Getpagesize())
}
