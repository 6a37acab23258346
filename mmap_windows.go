//go:build windows

package filemap

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// mapShared maps length bytes of fd starting at alignedOffset, which
// must be a multiple of the allocation granularity. The mapping
// object covers the whole file; its handle is closed as soon as the
// view exists, because the view alone keeps the mapping alive until
// UnmapViewOfFile.
func mapShared(fd windows.Handle, alignedOffset int64, length int, writable bool) ([]byte, error) {
	prot := uint32(windows.PAGE_READONLY)
	access := uint32(windows.FILE_MAP_READ)
	if writable {
		prot = windows.PAGE_READWRITE
		access = windows.FILE_MAP_WRITE
	}

	mappingObj, err := windows.CreateFileMapping(fd, nil, prot, 0, 0, nil)
	if err != nil {
		return nil, newMappingError(ErrMapMemory, err)
	}

	offsetHigh := uint32(uint64(alignedOffset) >> 32)
	offsetLow := uint32(alignedOffset)

	addr, err := windows.MapViewOfFile(mappingObj, access, offsetHigh, offsetLow, uintptr(length))
	windows.CloseHandle(mappingObj)
	if err != nil {
		return nil, newMappingError(ErrMapMemory, err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), length), nil
}

// unmapShared releases the mapped view.
func unmapShared(data []byte) error {
	return windows.UnmapViewOfFile(uintptr(unsafe.Pointer(&data[0])))
}

// adviseRegion is a no-op: Windows has no madvise equivalent for
// views.
func adviseRegion(data []byte, advice MemoryAdvice) {
}

// syncRegion flushes the region's dirty pages to the file.
func syncRegion(data []byte) error {
	return windows.FlushViewOfFile(uintptr(unsafe.Pointer(&data[0])), uintptr(len(data)))
}

// lockRegion pins the region in physical memory.
func lockRegion(data []byte) error {
	return windows.VirtualLock(uintptr(unsafe.Pointer(&data[0])), uintptr(len(data)))
}

// unlockRegion releases a previous lockRegion.
func unlockRegion(data []byte) error {
	return windows.VirtualUnlock(uintptr(unsafe.Pointer(&data[0])), uintptr(len(data)))
}
