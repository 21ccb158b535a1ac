package logger

import (
	"strconv"
	"strings"
	"time"
)

// TimestampFormat is the layout of the timestamp field.
const TimestampFormat = "2006-01-02 15:04:05.000"

const colorReset = "\033[0m"

var severityColors = [...]string{
	DebugLevel:   "\033[36m",
	InfoLevel:    "\033[32m",
	WarningLevel: "\033[33m",
	ErrorLevel:   "\033[31m",
	FatalLevel:   "\033[1;35m",
	TodoLevel:    "\033[34m",
}

// journald priorities, see sd-daemon(3).
var syslogPrefixes = [...]string{
	DebugLevel:   "<7>",
	InfoLevel:    "<6>",
	WarningLevel: "<4>",
	ErrorLevel:   "<3>",
	FatalLevel:   "<2>",
	TodoLevel:    "<5>",
}

// Source is a call site.
type Source struct {
	File string
	Line int
}

// record is one emission. It lives only for the duration of Emit.
type record struct {
	severity Severity
	message  string
	source   *Source
	time     time.Time
}

// formatOptions is the configuration snapshot a record is formatted with.
type formatOptions struct {
	timestamps bool
	sourceInfo bool
	basePath   string
}

// formatLine renders r without a trailing newline. When colored is set the
// severity tag is wrapped in its ANSI color.
func formatLine(r record, opts formatOptions, colored bool) string {
	var b strings.Builder
	b.Grow(64 + len(r.message))

	if opts.timestamps {
		b.WriteByte('[')
		b.WriteString(r.time.Format(TimestampFormat))
		b.WriteString("] ")
	}

	if colored {
		b.WriteString(severityColors[r.severity])
	}
	b.WriteByte('[')
	b.WriteString(severityNames[r.severity])
	b.WriteByte(']')
	if colored {
		b.WriteString(colorReset)
	}

	if opts.sourceInfo && r.source != nil && r.source.File != "" {
		b.WriteString(" [")
		b.WriteString(stripBasePath(r.source.File, opts.basePath))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(r.source.Line))
		b.WriteByte(']')
	}

	b.WriteByte(' ')
	b.WriteString(r.message)
	return b.String()
}

func isPathSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

// stripBasePath removes base from the front of path when path lies under
// it. Paths outside base are returned unchanged.
func stripBasePath(path, base string) string {
	if base == "" {
		return path
	}
	prefix := strings.TrimRight(base, `/\`)
	if !strings.HasPrefix(path, prefix) {
		return path
	}
	rest := path[len(prefix):]
	if rest == "" || !isPathSeparator(rest[0]) {
		// "/a/bc/x.go" is not under "/a/b".
		return path
	}
	rest = strings.TrimLeft(rest, `/\`)
	if rest == "" {
		return path
	}
	return rest
}
