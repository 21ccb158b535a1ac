package logger

import (
	"io"
	"time"
)

// Option configures a Logger built by New.
type Option func(*Logger)

// WithConsole sets the console sink. Default: os.Stdout.
func WithConsole(w io.Writer) Option {
	return func(l *Logger) {
		if w != nil {
			l.console = w
		}
	}
}

// WithErrorOutput sets where the logger reports its own failures.
// Default: os.Stderr.
func WithErrorOutput(w io.Writer) Option {
	return func(l *Logger) {
		if w != nil {
			l.errOut = w
		}
	}
}

// WithLogDir sets the directory Initialize creates the log file in.
// Default: DefaultLogDir.
func WithLogDir(dir string) Option {
	return func(l *Logger) {
		if dir != "" {
			l.dir = dir
		}
	}
}

// WithFileNameTemplate sets the log file name. The tags {date}, {time} and
// {pid} are expanded at Initialize. Default: DefaultFileNameTemplate.
func WithFileNameTemplate(tmpl string) Option {
	return func(l *Logger) {
		if tmpl != "" {
			l.fileTemplate = tmpl
		}
	}
}

// WithClock replaces time.Now for timestamps and the file name.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithMinimumSeverity sets the initial filter threshold. Default: InfoLevel.
func WithMinimumSeverity(s Severity) Option {
	return func(l *Logger) {
		if s.Valid() {
			l.minLevel.Store(int32(s))
		}
	}
}

// WithColors sets whether the console severity tag is colored. Default: false.
func WithColors(enabled bool) Option {
	return func(l *Logger) { l.colors = enabled }
}

// WithTimestamps sets whether lines start with a timestamp. Default: true.
func WithTimestamps(enabled bool) Option {
	return func(l *Logger) { l.timestamps = enabled }
}

// WithSourceInfo sets whether the call site is shown. Default: true.
func WithSourceInfo(enabled bool) Option {
	return func(l *Logger) { l.sourceInfo = enabled }
}

// WithBasePath sets the prefix stripped from source file paths.
func WithBasePath(path string) Option {
	return func(l *Logger) { l.basePath = path }
}

// WithJournalPrefix prefixes console lines with their syslog priority
// (<7> for DEBUG ... <2> for FATAL) so journald can classify them.
// The file never carries the prefix.
func WithJournalPrefix(enabled bool) Option {
	return func(l *Logger) { l.journal = enabled }
}
