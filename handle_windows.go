//go:build windows

package filemap

import (
	"io"
	"os"

	"golang.org/x/sys/windows"
)

// sysfd is the native file handle type.
type sysfd = windows.Handle

// shareMode admits concurrent readers, writers and renames, matching
// Unix open semantics as closely as Windows allows.
const shareMode = windows.FILE_SHARE_READ | windows.FILE_SHARE_WRITE | windows.FILE_SHARE_DELETE

func openReadOnlyHandle(path string) (sysfd, error) {
	return openWithAccess(path, windows.GENERIC_READ, windows.OPEN_EXISTING)
}

func openReadWriteHandle(path string) (sysfd, error) {
	return openWithAccess(path, windows.GENERIC_READ|windows.GENERIC_WRITE, windows.OPEN_EXISTING)
}

func openCreateHandle(path string) (sysfd, error) {
	return openWithAccess(path, windows.GENERIC_READ|windows.GENERIC_WRITE, windows.OPEN_ALWAYS)
}

func openWithAccess(path string, access uint32, disposition uint32) (windows.Handle, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return windows.InvalidHandle, newHandleError(ErrConvertPath, path, err)
	}
	h, err := windows.CreateFile(p, access, shareMode, nil, disposition, windows.FILE_ATTRIBUTE_NORMAL, 0)
	if err != nil {
		return windows.InvalidHandle, newHandleError(ErrOpenFileHandle, path, err)
	}
	return h, nil
}

func closeFD(fd windows.Handle) error {
	return os.NewSyscallError("CloseHandle", windows.CloseHandle(fd))
}

func getFileSize(fd windows.Handle, path string) (int64, error) {
	var info windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(fd, &info); err != nil {
		return 0, newHandleError(ErrGetFileSize, path, err)
	}
	return int64(info.FileSizeHigh)<<32 | int64(info.FileSizeLow), nil
}

// setFileSize moves the end-of-file marker to size bytes, growing or
// shrinking as needed, and resets the file pointer to the start
// afterwards. The reset outcome is ignored; nothing reads the file
// pointer after this.
func setFileSize(fd windows.Handle, path string, size int64) error {
	if _, err := windows.Seek(fd, size, io.SeekStart); err != nil {
		return newHandleError(ErrSetFileSize, path, err)
	}
	if err := windows.SetEndOfFile(fd); err != nil {
		return newHandleError(ErrSetFileSize, path, err)
	}
	_, _ = windows.Seek(fd, 0, io.SeekStart)
	return nil
}
