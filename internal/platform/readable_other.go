//go:build !linux && !darwin

package platform

import "os"

// Readable reports whether path can be opened for reading.
func Readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
