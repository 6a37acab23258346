//go:build unix

package filemap

import (
	"os"

	"golang.org/x/sys/unix"
)

// sysfd is the native file descriptor type.
type sysfd = int

// defaultFileMode is the permission set applied to newly created files.
const defaultFileMode = 0o644

func openReadOnlyHandle(path string) (sysfd, error) {
	return openWithFlags(path, unix.O_RDONLY)
}

func openReadWriteHandle(path string) (sysfd, error) {
	return openWithFlags(path, unix.O_RDWR)
}

func openCreateHandle(path string) (sysfd, error) {
	return openWithFlags(path, unix.O_RDWR|unix.O_CREAT)
}

// openWithFlags opens path with the given flags. The permission mode
// is only used when O_CREAT is set.
func openWithFlags(path string, flags int) (int, error) {
	var mode uint32
	if flags&unix.O_CREAT != 0 {
		mode = defaultFileMode
	}
	fd, err := unix.Open(path, flags, mode)
	if err != nil {
		return -1, newHandleError(ErrOpenFileHandle, path, err)
	}
	return fd, nil
}

func closeFD(fd int) error {
	return os.NewSyscallError("close", unix.Close(fd))
}

func getFileSize(fd int, path string) (int64, error) {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return 0, newHandleError(ErrGetFileSize, path, err)
	}
	return st.Size, nil
}

// setFileSize grows or shrinks the file to size bytes. Growing goes
// through the platform preallocation primitive, shrinking truncates,
// and an equal size is a no-op.
func setFileSize(fd int, path string, size int64) error {
	current, err := getFileSize(fd, path)
	if err != nil {
		return err
	}
	switch {
	case size > current:
		if err := growFile(fd, size); err != nil {
			return newHandleError(ErrSetFileSize, path, err)
		}
	case size < current:
		if err := unix.Ftruncate(fd, size); err != nil {
			return newHandleError(ErrSetFileSize, path, err)
		}
	}
	return nil
}
