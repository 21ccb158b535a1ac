package logger

import (
	"bytes"
	"errors"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"
)

var fixedTime = time.Date(2026, 10, 14, 9, 30, 5, 123_000_000, time.Local)

func fixedClock() time.Time { return fixedTime }

// newTestLogger returns a console-only logger writing into a buffer.
func newTestLogger(t *testing.T, opts ...Option) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	base := []Option{
		WithConsole(&buf),
		WithErrorOutput(&bytes.Buffer{}),
		WithClock(fixedClock),
		WithLogDir(t.TempDir()),
	}
	return New(append(base, opts...)...), &buf
}

func TestDefaults(t *testing.T) {
	l := New()
	if got := l.MinimumSeverity(); got != InfoLevel {
		t.Fatalf("default minimum severity = %v, want INFO", got)
	}
	if l.colors || !l.timestamps || !l.sourceInfo || l.basePath != "" {
		t.Fatalf("unexpected defaults: colors=%v timestamps=%v sourceInfo=%v basePath=%q",
			l.colors, l.timestamps, l.sourceInfo, l.basePath)
	}
	if l.Initialized() {
		t.Fatalf("New must not open the file sink")
	}
	if l.console != os.Stdout {
		t.Fatalf("console should default to os.Stdout")
	}
}

func TestFiltering_BelowMinimumWritesNothing(t *testing.T) {
	for _, minimum := range AllLevels() {
		l, buf := newTestLogger(t, WithMinimumSeverity(minimum))
		if err := l.Initialize(); err != nil {
			t.Fatalf("Initialize: %v", err)
		}
		for _, s := range AllLevels() {
			l.Emit(s, "msg-"+s.String(), nil)
		}
		l.Close()

		content, err := os.ReadFile(l.FilePath())
		if err != nil {
			t.Fatalf("read log file: %v", err)
		}
		for name, out := range map[string]string{"console": buf.String(), "file": string(content)} {
			lines := strings.Split(strings.TrimSpace(out), "\n")
			want := int(TodoLevel-minimum) + 1
			if len(lines) != want {
				t.Fatalf("minimum=%v %s: got %d lines, want %d: %q", minimum, name, len(lines), want, out)
			}
			for _, s := range AllLevels() {
				has := strings.Contains(out, "msg-"+s.String()+"\n")
				if s < minimum && has {
					t.Fatalf("minimum=%v %s: %v should be filtered, got %q", minimum, name, s, out)
				}
				if s >= minimum && !has {
					t.Fatalf("minimum=%v %s: %v missing, got %q", minimum, name, s, out)
				}
			}
		}
	}
}

func TestExactLine_ErrorBoom(t *testing.T) {
	l, buf := newTestLogger(t,
		WithMinimumSeverity(WarningLevel),
		WithTimestamps(false),
		WithSourceInfo(false),
	)
	if err := l.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	l.Info("hello")
	if buf.Len() != 0 {
		t.Fatalf("info below WARNING should produce no output, got %q", buf.String())
	}
	l.Error("boom")
	l.Close()

	if got := buf.String(); got != "[ERROR] boom\n" {
		t.Fatalf("console = %q, want %q", got, "[ERROR] boom\n")
	}
	content, err := os.ReadFile(l.FilePath())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if got := string(content); got != "[ERROR] boom\n" {
		t.Fatalf("file = %q, want %q", got, "[ERROR] boom\n")
	}
}

func TestTimestampToggle(t *testing.T) {
	l, buf := newTestLogger(t, WithSourceInfo(false))

	l.Info("first")
	l.EnableTimestamps(false)
	l.Info("second")
	l.EnableTimestamps(true)
	l.Info("third")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", buf.String())
	}
	want := []string{
		"[2026-10-14 09:30:05.123] [INFO] first",
		"[INFO] second",
		"[2026-10-14 09:30:05.123] [INFO] third",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestSourceInfo(t *testing.T) {
	l, buf := newTestLogger(t, WithTimestamps(false))

	l.Info("with src", Source{File: "/srv/app/main.go", Line: 12})
	l.Info("without src")
	l.EnableSourceInfo(false)
	l.Info("disabled", Source{File: "/srv/app/main.go", Line: 13})

	want := "[INFO] [/srv/app/main.go:12] with src\n" +
		"[INFO] without src\n" +
		"[INFO] disabled\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBasePath(t *testing.T) {
	l, buf := newTestLogger(t, WithTimestamps(false))
	l.SetBasePath("/a/b/")

	l.Info("x", Source{File: "/a/b/c/file.cpp", Line: 1})
	l.Info("y", Source{File: "/elsewhere/file.cpp", Line: 2})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "[INFO] [c/file.cpp:1] x" {
		t.Fatalf("stripped path line = %q", lines[0])
	}
	if lines[1] != "[INFO] [/elsewhere/file.cpp:2] y" {
		t.Fatalf("unrelated path line = %q", lines[1])
	}
}

func TestBasePath_ChangeIsNotRetroactive(t *testing.T) {
	l, buf := newTestLogger(t, WithTimestamps(false))
	src := Source{File: "/a/b/c.go", Line: 3}

	l.Info("before", src)
	l.SetBasePath("/a")
	l.Info("after", src)

	want := "[INFO] [/a/b/c.go:3] before\n[INFO] [b/c.go:3] after\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStripBasePath(t *testing.T) {
	cases := []struct {
		path, base, want string
	}{
		{"/a/b/c/file.cpp", "/a/b/", "c/file.cpp"},
		{"/a/b/c/file.cpp", "/a/b", "c/file.cpp"},
		{"/a/bc/file.cpp", "/a/b", "/a/bc/file.cpp"},
		{"/x/file.cpp", "/a/b/", "/x/file.cpp"},
		{"/a/b/c/file.cpp", "", "/a/b/c/file.cpp"},
		{"/a/b", "/a/b/", "/a/b"},
		{"/root/x.go", "/", "root/x.go"},
		{`C:\src\pkg\x.go`, `C:\src\`, `pkg\x.go`},
	}
	for _, c := range cases {
		if got := stripBasePath(c.path, c.base); got != c.want {
			t.Errorf("stripBasePath(%q, %q) = %q, want %q", c.path, c.base, got, c.want)
		}
	}
}

func TestColors_ConsoleOnly(t *testing.T) {
	l, buf := newTestLogger(t, WithColors(true), WithTimestamps(false), WithSourceInfo(false))
	if err := l.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	for _, s := range AllLevels() {
		l.Emit(s, "colored", nil)
	}
	l.Close()

	console := buf.String()
	if !strings.Contains(console, "\033[") {
		t.Fatalf("console should contain ANSI codes, got %q", console)
	}
	if !strings.Contains(console, "\033[32m[INFO]\033[0m colored\n") {
		t.Fatalf("INFO tag should be green, got %q", console)
	}
	if !strings.Contains(console, "\033[1;35m[FATAL]\033[0m colored\n") {
		t.Fatalf("FATAL tag should be bold magenta, got %q", console)
	}

	content, err := os.ReadFile(l.FilePath())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), "\033[") {
		t.Fatalf("file must not contain ANSI codes, got %q", content)
	}
	if !strings.Contains(string(content), "[FATAL] colored\n") {
		t.Fatalf("file missing plain FATAL line, got %q", content)
	}
}

func TestColorToggle(t *testing.T) {
	l, buf := newTestLogger(t, WithTimestamps(false))
	l.EnableColors(true)
	l.Info("on")
	l.EnableColors(false)
	l.Info("off")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.Contains(lines[0], "\033[") {
		t.Fatalf("first line should be colored, got %q", lines[0])
	}
	if lines[1] != "[INFO] off" {
		t.Fatalf("second line should be plain, got %q", lines[1])
	}
}

func TestJournalPrefix(t *testing.T) {
	l, buf := newTestLogger(t,
		WithJournalPrefix(true),
		WithTimestamps(false),
		WithMinimumSeverity(DebugLevel),
	)
	if err := l.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	l.Debug("dbg")
	l.Error("err")
	l.Close()

	want := "<7>[DEBUG] dbg\n<3>[ERROR] err\n"
	if got := buf.String(); got != want {
		t.Fatalf("console = %q, want %q", got, want)
	}
	content, _ := os.ReadFile(l.FilePath())
	if strings.Contains(string(content), "<7>") {
		t.Fatalf("file must not carry journald prefixes, got %q", content)
	}
}

func TestFormattedVariants(t *testing.T) {
	l, buf := newTestLogger(t, WithTimestamps(false), WithMinimumSeverity(DebugLevel))

	l.Debugf("d=%d", 1)
	l.Infof("i=%s", "two")
	l.Warningf("w=%v", true)
	l.Errorf("e=%q", "x")
	err := l.Fatalf("f=%d", 5)
	l.Todof("t=%d", 6)

	want := "[DEBUG] d=1\n[INFO] i=two\n[WARNING] w=true\n[ERROR] e=\"x\"\n[FATAL] f=5\n[TODO] t=6\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !errors.Is(err, ErrUnrecoverable) {
		t.Fatalf("Fatalf should return ErrUnrecoverable, got %v", err)
	}
}

func TestFatal_DoesNotExitAndSignals(t *testing.T) {
	l, buf := newTestLogger(t, WithTimestamps(false))
	err := l.Fatal("disk gone")
	if !errors.Is(err, ErrUnrecoverable) {
		t.Fatalf("expected ErrUnrecoverable, got %v", err)
	}
	if !strings.Contains(err.Error(), "disk gone") {
		t.Fatalf("error should carry the message, got %v", err)
	}
	l.Info("still running")
	if !strings.Contains(buf.String(), "[INFO] still running") {
		t.Fatalf("logger should keep working after FATAL, got %q", buf.String())
	}
}

func TestTodoFilteredLikeAnyLevel(t *testing.T) {
	l, buf := newTestLogger(t, WithTimestamps(false))
	l.Todo("revisit")
	if buf.String() != "[TODO] revisit\n" {
		t.Fatalf("got %q", buf.String())
	}

	l.SetMinimumSeverity(TodoLevel)
	buf.Reset()
	l.Fatal("hidden")
	l.Todo("shown")
	if buf.String() != "[TODO] shown\n" {
		t.Fatalf("only TODO should pass a TODO minimum, got %q", buf.String())
	}
}

func TestSetMinimumSeverity_IgnoresInvalid(t *testing.T) {
	l, _ := newTestLogger(t)
	l.SetMinimumSeverity(ErrorLevel)
	l.SetMinimumSeverity(Severity(42))
	if got := l.MinimumSeverity(); got != ErrorLevel {
		t.Fatalf("invalid severity should be ignored, got %v", got)
	}
}

func TestEmit_InvalidSeverityDropped(t *testing.T) {
	l, buf := newTestLogger(t)
	l.Emit(Severity(-1), "neg", nil)
	l.Emit(Severity(99), "big", nil)
	if buf.Len() != 0 {
		t.Fatalf("invalid severities should be dropped, got %q", buf.String())
	}
}

func TestTimestampFormat(t *testing.T) {
	l, buf := newTestLogger(t, WithClock(time.Now), WithSourceInfo(false))
	l.Warning("ts")
	pattern := regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3}\] \[WARNING\] ts\n$`)
	if !pattern.MatchString(buf.String()) {
		t.Fatalf("unexpected timestamp format: %q", buf.String())
	}
}

func TestStatusMapping(t *testing.T) {
	cases := map[int]Severity{
		100: InfoLevel,
		200: InfoLevel,
		301: InfoLevel,
		404: WarningLevel,
		499: WarningLevel,
		500: ErrorLevel,
		503: ErrorLevel,
	}
	for code, want := range cases {
		if got := SeverityForStatus(code); got != want {
			t.Errorf("SeverityForStatus(%d) = %v, want %v", code, got, want)
		}
	}
}
