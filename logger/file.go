package logger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasttemplate"
)

const (
	// DefaultLogDir is created relative to the working directory.
	DefaultLogDir = "logs"
	// DefaultFileNameTemplate yields names like 2026-10-14_09-30-00.log.
	DefaultFileNameTemplate = "{date}_{time}.log"

	fileDateFormat = "2006-01-02"
	fileTimeFormat = "15-04-05"

	// maxNameCollisions bounds the -N suffix search in openRunFile.
	maxNameCollisions = 1000
)

// renderFileName expands the {date}, {time} and {pid} tags of tmpl.
func renderFileName(tmpl string, now time.Time) string {
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}
	t := fasttemplate.New(tmpl, "{", "}")
	return t.ExecuteString(map[string]interface{}{
		"date": now.Format(fileDateFormat),
		"time": now.Format(fileTimeFormat),
		"pid":  strconv.Itoa(os.Getpid()),
	})
}

// openRunFile creates dir if needed and opens a new, previously absent file
// in it. If the rendered name is taken, -1, -2, ... is inserted before the
// extension.
func openRunFile(dir, tmpl string, now time.Time) (*os.File, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", newInitError(fmt.Sprintf("failed to create log directory %s", dir), err)
	}

	name := renderFileName(tmpl, now)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, "", newInitError(fmt.Sprintf("invalid log file name %q", name), nil)
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; i < maxNameCollisions; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", newInitError(fmt.Sprintf("failed to open log file %s", path), err)
		}
	}
	return nil, "", newInitError(fmt.Sprintf("no free log file name for %s in %s", name, dir), fs.ErrExist)
}
