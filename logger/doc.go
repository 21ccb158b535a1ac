// Package logger provides a small leveled logger that writes every record
// to the console and, once initialized, to a per-run log file.
//
// # Output
//
// A line is built from the enabled fields, left to right:
//
//	[2026-10-14 09:30:00.123] [WARNING] [service/db.go:42] pool exhausted
//
// The timestamp and [file:line] fields can be switched off; the severity
// tag is always present. With colors enabled only the console tag is
// colored; the file never contains ANSI escapes.
//
// # Levels
//
// DEBUG < INFO < WARNING < ERROR < FATAL < TODO. Records below the minimum
// severity (INFO by default) cost one atomic load and nothing else.
// FATAL never exits the process: Fatal returns an error wrapping
// ErrUnrecoverable and the caller decides what to do.
//
// # Usage
//
// Build a Logger and pass it where it is needed:
//
//	log := logger.New(logger.WithMinimumSeverity(logger.DebugLevel))
//	if err := log.Initialize(); err != nil {
//	    // logs/ could not be written; console output still works
//	}
//	defer log.Close()
//	log.Info("ready", logger.Here())
//
// Or use the package-level functions, which capture the call site:
//
//	logger.Init()
//	defer logger.Close()
//	logger.Infof("listening on %s", addr)
//
// # Files
//
// Initialize creates the logs directory and opens a fresh file named after
// the current date and time, e.g. logs/2026-10-14_09-30-00.log. It runs
// once per Logger. A failed file write drops the file sink for the rest
// of the run; the console keeps working.
package logger
