//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package logger

import "golang.org/x/sys/unix"

func isTerminalFd(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), ioctlReadTermios)
	return err == nil
}
