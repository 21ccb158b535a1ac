package logger

import (
	"fmt"
	"strings"
)

// Severity orders log records. A record is emitted only when its severity
// is at or above the logger's minimum.
type Severity int32

const (
	// DebugLevel is for diagnostic detail.
	DebugLevel Severity = iota
	// InfoLevel is for normal operational messages.
	InfoLevel
	// WarningLevel is for conditions worth a look.
	WarningLevel
	// ErrorLevel is for failed operations.
	ErrorLevel
	// FatalLevel marks conditions expected to be unrecoverable. The logger
	// never exits; see ErrUnrecoverable.
	FatalLevel
	// TodoLevel marks follow-up work. It has no special runtime behavior.
	TodoLevel
)

var severityNames = [...]string{
	DebugLevel:   "DEBUG",
	InfoLevel:    "INFO",
	WarningLevel: "WARNING",
	ErrorLevel:   "ERROR",
	FatalLevel:   "FATAL",
	TodoLevel:    "TODO",
}

// AllLevels returns every severity in ascending order.
func AllLevels() []Severity {
	return []Severity{
		DebugLevel,
		InfoLevel,
		WarningLevel,
		ErrorLevel,
		FatalLevel,
		TodoLevel,
	}
}

// Valid reports whether s is one of the defined severities.
func (s Severity) Valid() bool {
	return s >= DebugLevel && s <= TodoLevel
}

func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Severity(%d)", int32(s))
	}
	return severityNames[s]
}

// ParseSeverity parses a level name. Matching is case-insensitive and
// accepts a few common aliases.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG", "DBG":
		return DebugLevel, nil
	case "INFO", "INF":
		return InfoLevel, nil
	case "WARNING", "WARN", "WRN":
		return WarningLevel, nil
	case "ERROR", "ERR":
		return ErrorLevel, nil
	case "FATAL", "CRIT", "CRITICAL":
		return FatalLevel, nil
	case "TODO":
		return TodoLevel, nil
	}
	return InfoLevel, fmt.Errorf("unknown severity %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid severity %d", int32(s))
	}
	return []byte(strings.ToLower(severityNames[s])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SeverityForStatus maps an HTTP status code to a severity:
// 5xx -> ERROR, 4xx -> WARNING, everything else -> INFO.
func SeverityForStatus(code int) Severity {
	switch {
	case code >= 500:
		return ErrorLevel
	case code >= 400:
		return WarningLevel
	default:
		return InfoLevel
	}
}
