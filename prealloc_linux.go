//go:build linux

package filemap

import (
	"errors"

	"golang.org/x/sys/unix"
)

// growFile extends the file to size bytes. fallocate reserves the
// blocks up front, so page faults through a mapping of the new range
// cannot run out of disk space later. Filesystems without fallocate
// support report EOPNOTSUPP (ENOSYS on old kernels) and take the
// truncate path instead.
func growFile(fd int, size int64) error {
	err := unix.Fallocate(fd, 0, 0, size)
	if errors.Is(err, unix.EOPNOTSUPP) || errors.Is(err, unix.ENOSYS) {
		return unix.Ftruncate(fd, size)
	}
	return err
}
