//go:build linux || darwin

package platform

import "golang.org/x/sys/unix"

// Readable reports whether the current process may read path.
func Readable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}
