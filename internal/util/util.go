//go:build !windows

package util

func IsRunFromGUI() bool {
	// On non-Windows, always return false.
	// Only used to keep error output readable when the binary gets
	// double-clicked; on Linux you have a terminal either way.
	return false
}
