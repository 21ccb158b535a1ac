package logger

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// The default Logger behind the package-level functions. It is built
// lazily with default options, or explicitly by Init or SetDefault.
var (
	std         atomic.Pointer[Logger]
	defaultOnce sync.Once
)

// Default returns the Logger used by the package-level functions.
func Default() *Logger {
	if l := std.Load(); l != nil {
		return l
	}
	defaultOnce.Do(func() {
		std.CompareAndSwap(nil, New())
	})
	return std.Load()
}

// SetDefault makes l the target of the package-level functions. The
// previous default is returned and left open.
func SetDefault(l *Logger) *Logger {
	if l == nil {
		return nil
	}
	defaultOnce.Do(func() {})
	return std.Swap(l)
}

// Init builds a Logger from opts, installs it as the default and opens its
// log file. The previous default, if any, is closed. A non-nil error
// means the file sink could not be opened; console logging still works.
func Init(opts ...Option) error {
	l := New(opts...)
	if prev := SetDefault(l); prev != nil && prev != l {
		_ = prev.Close()
	}
	return l.Initialize()
}

// Close closes the default Logger's log file.
func Close() error {
	if l := std.Load(); l != nil {
		return l.Close()
	}
	return nil
}

// caller returns the call site skip frames above it, or nil.
func caller(skip int) *Source {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return nil
	}
	return &Source{File: file, Line: line}
}

// Here returns the caller's file and line, for use with the Logger methods:
//
//	log.Warning("disk almost full", logger.Here())
func Here() Source {
	if s := caller(2); s != nil {
		return *s
	}
	return Source{}
}

// SetMinimumSeverity sets the default Logger's filter threshold.
func SetMinimumSeverity(s Severity) { Default().SetMinimumSeverity(s) }

// EnableColors toggles colors on the default Logger.
func EnableColors(enabled bool) { Default().EnableColors(enabled) }

// EnableTimestamps toggles timestamps on the default Logger.
func EnableTimestamps(enabled bool) { Default().EnableTimestamps(enabled) }

// EnableSourceInfo toggles source info on the default Logger.
func EnableSourceInfo(enabled bool) { Default().EnableSourceInfo(enabled) }

// SetBasePath sets the default Logger's source path prefix.
func SetBasePath(path string) { Default().SetBasePath(path) }

// --- Level functions; the call site is captured automatically ---

// Debug logs msg at DEBUG on the default Logger.
func Debug(msg string) {
	if l := Default(); l.Enabled(DebugLevel) {
		l.Emit(DebugLevel, msg, caller(2))
	}
}

// Info logs msg at INFO on the default Logger.
func Info(msg string) {
	if l := Default(); l.Enabled(InfoLevel) {
		l.Emit(InfoLevel, msg, caller(2))
	}
}

// Warning logs msg at WARNING on the default Logger.
func Warning(msg string) {
	if l := Default(); l.Enabled(WarningLevel) {
		l.Emit(WarningLevel, msg, caller(2))
	}
}

// Error logs msg at ERROR on the default Logger.
func Error(msg string) {
	if l := Default(); l.Enabled(ErrorLevel) {
		l.Emit(ErrorLevel, msg, caller(2))
	}
}

// Fatal logs msg at FATAL on the default Logger and returns an error
// wrapping ErrUnrecoverable. The process keeps running.
func Fatal(msg string) error {
	if l := Default(); l.Enabled(FatalLevel) {
		l.Emit(FatalLevel, msg, caller(2))
	}
	return fmt.Errorf("%w: %s", ErrUnrecoverable, msg)
}

// Todo logs msg at TODO on the default Logger.
func Todo(msg string) {
	if l := Default(); l.Enabled(TodoLevel) {
		l.Emit(TodoLevel, msg, caller(2))
	}
}

// Debugf logs a formatted message at DEBUG on the default Logger.
func Debugf(format string, v ...any) {
	if l := Default(); l.Enabled(DebugLevel) {
		l.Emit(DebugLevel, fmt.Sprintf(format, v...), caller(2))
	}
}

// Infof logs a formatted message at INFO on the default Logger.
func Infof(format string, v ...any) {
	if l := Default(); l.Enabled(InfoLevel) {
		l.Emit(InfoLevel, fmt.Sprintf(format, v...), caller(2))
	}
}

// Warningf logs a formatted message at WARNING on the default Logger.
func Warningf(format string, v ...any) {
	if l := Default(); l.Enabled(WarningLevel) {
		l.Emit(WarningLevel, fmt.Sprintf(format, v...), caller(2))
	}
}

// Errorf logs a formatted message at ERROR on the default Logger.
func Errorf(format string, v ...any) {
	if l := Default(); l.Enabled(ErrorLevel) {
		l.Emit(ErrorLevel, fmt.Sprintf(format, v...), caller(2))
	}
}

// Fatalf logs a formatted message at FATAL on the default Logger; see Fatal.
func Fatalf(format string, v ...any) error {
	msg := fmt.Sprintf(format, v...)
	if l := Default(); l.Enabled(FatalLevel) {
		l.Emit(FatalLevel, msg, caller(2))
	}
	return fmt.Errorf("%w: %s", ErrUnrecoverable, msg)
}

// Todof logs a formatted message at TODO on the default Logger.
func Todof(format string, v ...any) {
	if l := Default(); l.Enabled(TodoLevel) {
		l.Emit(TodoLevel, fmt.Sprintf(format, v...), caller(2))
	}
}

// Status logs an HTTP call with the severity picked by SeverityForStatus.
//
//	logger.Status(200, "GET /api/users")  // [INFO] ... [200] GET /api/users
//	logger.Status(503, "upstream down")   // [ERROR] ... [503] upstream down
func Status(code int, msg string) {
	severity := SeverityForStatus(code)
	if l := Default(); l.Enabled(severity) {
		l.Emit(severity, fmt.Sprintf("[%d] %s", code, msg), caller(2))
	}
}
