//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package logger

func isTerminalFd(uintptr) bool {
	return false
}
