//go:build windows

package filestore

import (
	"os"
	"syscall"
	"time"
)

// atomicRename performs an atomic rename operation on Windows, where the
// destination may still be held open by another process.
func atomicRename(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	if linkErr, ok := err.(*os.LinkError); ok {
		if errno, ok := linkErr.Err.(syscall.Errno); ok {
			// ERROR_ACCESS_DENIED = 5
			// ERROR_ALREADY_EXISTS = 183
			if errno == 5 || errno == 183 {
				_ = os.Remove(dst)
				// Give Windows a moment to release the file handle
				time.Sleep(10 * time.Millisecond)
				return os.Rename(src, dst)
			}
		}
	}

	return err
}
