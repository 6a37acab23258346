//go:build unix

package filemap

import "golang.org/x/sys/unix"

// mapShared maps length bytes of fd starting at alignedOffset, which
// must be a multiple of the allocation granularity, with MAP_SHARED
// semantics.
func mapShared(fd int, alignedOffset int64, length int, writable bool) ([]byte, error) {
	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}
	data, err := unix.Mmap(fd, alignedOffset, length, prot, unix.MAP_SHARED)
	if err != nil {
		return nil, newMappingError(ErrMapMemory, err)
	}
	return data, nil
}

// unmapShared releases the mapped region.
func unmapShared(data []byte) error {
	return unix.Munmap(data)
}

// adviseRegion issues one madvise call per set hint. Failures are
// ignored.
func adviseRegion(data []byte, advice MemoryAdvice) {
	if advice.Has(AdviceWillNeed) {
		_ = unix.Madvise(data, unix.MADV_WILLNEED)
	}
	if advice.Has(AdviceSequential) {
		_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
	}
	if advice.Has(AdviceRandom) {
		_ = unix.Madvise(data, unix.MADV_RANDOM)
	}
}

// syncRegion flushes the region to the file and blocks until the
// write-back completes.
func syncRegion(data []byte) error {
	return unix.Msync(data, unix.MS_SYNC)
}

// lockRegion pins the region in physical memory.
func lockRegion(data []byte) error {
	return unix.Mlock(data)
}

// unlockRegion releases a previous lockRegion.
func unlockRegion(data []byte) error {
	return unix.Munlock(data)
}
