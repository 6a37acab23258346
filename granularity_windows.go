//go:build windows

package filemap

import "golang.org/x/sys/windows"

// queryAllocationGranularity returns the system allocation granularity.
// Views must be mapped at offsets aligned to this value, which is
// larger than the page size (64 KiB on x86-64).
func queryAllocationGranularity() uint32 {
	var si windows.SystemInfo
	windows.GetNativeSystemInfo(&si)
	return si.AllocationGranularity
}
