//go:build unix && !linux

package filemap

import "golang.org/x/sys/unix"

// growFile extends the file to size bytes. There is no portable
// preallocation call outside Linux; ftruncate extends the file with a
// zero-filled tail.
func growFile(fd int, size int64) error {
	return unix.Ftruncate(fd, size)
}
