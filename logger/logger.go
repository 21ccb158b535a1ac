package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Logger filters, formats and writes records to the console and, once
// initialized, to a per-run log file. All methods are safe for concurrent
// use.
type Logger struct {
	// minLevel is read without the lock so filtered calls stay cheap.
	minLevel atomic.Int32

	// mu guards everything below, and is held across format + write so
	// lines from concurrent callers never interleave.
	mu         sync.Mutex
	console    io.Writer
	errOut     io.Writer
	colors     bool
	timestamps bool
	sourceInfo bool
	journal    bool
	basePath   string
	now        func() time.Time

	dir          string
	fileTemplate string

	initOnce    sync.Once
	initErr     error
	initialized bool
	file        io.WriteCloser
	filePath    string
	degraded    bool
	sinkErr     error
}

// New returns a console-only Logger. Call Initialize to add the file sink.
func New(opts ...Option) *Logger {
	l := &Logger{
		console:      os.Stdout,
		errOut:       os.Stderr,
		timestamps:   true,
		sourceInfo:   true,
		now:          time.Now,
		dir:          DefaultLogDir,
		fileTemplate: DefaultFileNameTemplate,
	}
	l.minLevel.Store(int32(InfoLevel))
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Initialize creates the log directory if needed and opens a new log file
// named after the current date and time. Only the first call does any
// work; later calls return its result. On failure the logger stays usable
// and writes to the console only.
func (l *Logger) Initialize() error {
	l.initOnce.Do(func() {
		l.mu.Lock()
		defer l.mu.Unlock()

		f, path, err := openRunFile(l.dir, l.fileTemplate, l.now())
		if err != nil {
			l.initErr = err
			l.degraded = true
			l.sinkErr = err
			fmt.Fprintf(l.errOut, "logger: %v; continuing with console output only\n", err)
			return
		}
		l.file = f
		l.filePath = path
		l.initialized = true
	})
	return l.initErr
}

// Close flushes and closes the log file. Records emitted afterwards go to
// the console only. Close does not reset Initialize.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	var err error
	if s, ok := l.file.(interface{ Sync() error }); ok {
		err = s.Sync()
	}
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	return err
}

// SetMinimumSeverity sets the filter threshold. Invalid values are ignored.
func (l *Logger) SetMinimumSeverity(s Severity) {
	if s.Valid() {
		l.minLevel.Store(int32(s))
	}
}

// MinimumSeverity returns the current filter threshold.
func (l *Logger) MinimumSeverity() Severity {
	return Severity(l.minLevel.Load())
}

// Enabled reports whether a record at s would be emitted.
func (l *Logger) Enabled(s Severity) bool {
	return s.Valid() && s >= l.MinimumSeverity()
}

// EnableColors toggles ANSI colors on the console severity tag.
func (l *Logger) EnableColors(enabled bool) {
	l.mu.Lock()
	l.colors = enabled
	l.mu.Unlock()
}

// EnableTimestamps toggles the timestamp field.
func (l *Logger) EnableTimestamps(enabled bool) {
	l.mu.Lock()
	l.timestamps = enabled
	l.mu.Unlock()
}

// EnableSourceInfo toggles the [file:line] field.
func (l *Logger) EnableSourceInfo(enabled bool) {
	l.mu.Lock()
	l.sourceInfo = enabled
	l.mu.Unlock()
}

// SetBasePath sets the prefix stripped from source file paths. Already
// written lines are not affected.
func (l *Logger) SetBasePath(path string) {
	l.mu.Lock()
	l.basePath = path
	l.mu.Unlock()
}

// Initialized reports whether the file sink was opened.
func (l *Logger) Initialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.initialized
}

// FilePath returns the path of the log file, or "" before a successful
// Initialize.
func (l *Logger) FilePath() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filePath
}

// Degraded reports whether the file sink failed and was abandoned.
func (l *Logger) Degraded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.degraded
}

// SinkError returns the failure that degraded the file sink, if any.
func (l *Logger) SinkError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sinkErr
}

// Emit is the entry point every level method routes through. Records
// below the minimum severity are dropped before any formatting. src may
// be nil.
func (l *Logger) Emit(severity Severity, message string, src *Source) {
	if !l.Enabled(severity) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	r := record{
		severity: severity,
		message:  message,
		source:   src,
		time:     l.now(),
	}
	opts := formatOptions{
		timestamps: l.timestamps,
		sourceInfo: l.sourceInfo,
		basePath:   l.basePath,
	}

	plain := formatLine(r, opts, false)
	line := plain
	if l.colors {
		line = formatLine(r, opts, true)
	}
	if l.journal {
		line = syslogPrefixes[severity] + line
	}

	// Console failures have nowhere to be reported.
	_, _ = io.WriteString(l.console, line+"\n")

	if l.file == nil || l.degraded {
		return
	}
	if _, err := io.WriteString(l.file, plain+"\n"); err != nil {
		l.degradeLocked(err)
	}
}

// degradeLocked abandons the file sink after a write failure. l.mu must be
// held.
func (l *Logger) degradeLocked(err error) {
	werr := newWriteError(fmt.Sprintf("failed to write to log file %s", l.filePath), err)
	l.degraded = true
	l.sinkErr = werr
	_ = l.file.Close()
	l.file = nil
	fmt.Fprintf(l.errOut, "logger: %v; continuing with console output only\n", werr)
}

func firstSource(src []Source) *Source {
	if len(src) == 0 {
		return nil
	}
	s := src[0]
	return &s
}

// Debug logs msg at DEBUG. An optional Source annotates the line.
func (l *Logger) Debug(msg string, src ...Source) {
	l.Emit(DebugLevel, msg, firstSource(src))
}

// Info logs msg at INFO.
func (l *Logger) Info(msg string, src ...Source) {
	l.Emit(InfoLevel, msg, firstSource(src))
}

// Warning logs msg at WARNING.
func (l *Logger) Warning(msg string, src ...Source) {
	l.Emit(WarningLevel, msg, firstSource(src))
}

// Error logs msg at ERROR.
func (l *Logger) Error(msg string, src ...Source) {
	l.Emit(ErrorLevel, msg, firstSource(src))
}

// Fatal logs msg at FATAL and returns an error wrapping ErrUnrecoverable.
// It does not exit; that is up to the caller.
func (l *Logger) Fatal(msg string, src ...Source) error {
	l.Emit(FatalLevel, msg, firstSource(src))
	return fmt.Errorf("%w: %s", ErrUnrecoverable, msg)
}

// Todo logs msg at TODO.
func (l *Logger) Todo(msg string, src ...Source) {
	l.Emit(TodoLevel, msg, firstSource(src))
}

// Debugf logs a formatted message at DEBUG. Arguments are only formatted
// when DEBUG is enabled.
func (l *Logger) Debugf(format string, v ...any) {
	l.emitf(DebugLevel, nil, format, v...)
}

// Infof logs a formatted message at INFO.
func (l *Logger) Infof(format string, v ...any) {
	l.emitf(InfoLevel, nil, format, v...)
}

// Warningf logs a formatted message at WARNING.
func (l *Logger) Warningf(format string, v ...any) {
	l.emitf(WarningLevel, nil, format, v...)
}

// Errorf logs a formatted message at ERROR.
func (l *Logger) Errorf(format string, v ...any) {
	l.emitf(ErrorLevel, nil, format, v...)
}

// Fatalf logs a formatted message at FATAL; see Fatal.
func (l *Logger) Fatalf(format string, v ...any) error {
	msg := fmt.Sprintf(format, v...)
	l.Emit(FatalLevel, msg, nil)
	return fmt.Errorf("%w: %s", ErrUnrecoverable, msg)
}

// Todof logs a formatted message at TODO.
func (l *Logger) Todof(format string, v ...any) {
	l.emitf(TodoLevel, nil, format, v...)
}

func (l *Logger) emitf(severity Severity, src *Source, format string, v ...any) {
	if !l.Enabled(severity) {
		return
	}
	l.Emit(severity, fmt.Sprintf(format, v...), src)
}
