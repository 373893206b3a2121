package proc

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newController(t *testing.T) Controller {
	t.Helper()
	dir := t.TempDir()
	return Controller{
		PIDFile: filepath.Join(dir, "app.pid"),
		LogFile: filepath.Join(dir, "app.log"),
	}
}

func TestStatusNoPIDFile(t *testing.T) {
	c := newController(t)
	if _, running := c.Status(); running {
		t.Error("Status() = running with no pid file, want not running")
	}
}

func TestStatusOwnPID(t *testing.T) {
	c := newController(t)
	// Our own process is definitely alive.
	if err := c.writePID(os.Getpid()); err != nil {
		t.Fatal(err)
	}
	pid, running := c.Status()
	if !running || pid != os.Getpid() {
		t.Errorf("Status() = %d, %v, want %d, true", pid, running, os.Getpid())
	}
}

func TestStatusDeadPID(t *testing.T) {
	c := newController(t)
	// PID numbers cap out well below this on a default Linux config.
	if err := c.writePID(1 << 22); err != nil {
		t.Fatal(err)
	}
	if _, running := c.Status(); running {
		t.Error("Status() = running for a nonexistent pid, want not running")
	}
}

func TestStatusMalformedPIDFile(t *testing.T) {
	c := newController(t)
	if err := os.WriteFile(c.PIDFile, []byte("not-a-pid\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, running := c.Status(); running {
		t.Error("Status() = running for malformed pid file, want not running")
	}
}

func TestStopWhenNotRunning(t *testing.T) {
	c := newController(t)
	stopped, err := c.Stop()
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if stopped {
		t.Error("Stop() = stopped with nothing running, want no-op")
	}
}

func TestStopRemovesStalePIDFile(t *testing.T) {
	c := newController(t)
	if err := c.writePID(1 << 22); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if _, err := os.Stat(c.PIDFile); !os.IsNotExist(err) {
		t.Error("Stop() left a stale pid file behind")
	}
}

func TestStartAndStop(t *testing.T) {
	c := newController(t)

	// A real long-running process we can signal.
	pid, alreadyRunning, err := c.Start("/bin/sleep", []string{"60"}, nil)
	if err != nil {
		t.Skipf("cannot start helper process: %v", err)
	}
	if alreadyRunning {
		t.Fatal("Start() reported already running on first start")
	}
	if pid <= 0 {
		t.Fatalf("Start() pid = %d", pid)
	}

	// Second start is a no-op reporting the live pid.
	pid2, alreadyRunning, err := c.Start("/bin/sleep", []string{"60"}, nil)
	if err != nil {
		t.Fatalf("second Start() error = %v", err)
	}
	if !alreadyRunning || pid2 != pid {
		t.Errorf("second Start() = %d, %v, want %d, true", pid2, alreadyRunning, pid)
	}

	stopped, err := c.Stop()
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if !stopped {
		t.Error("Stop() = not stopped, want stopped")
	}
}

func TestTail(t *testing.T) {
	c := newController(t)
	want := "line one\nline two\n"
	if err := os.WriteFile(c.LogFile, []byte(want), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := c.Tail(&buf); err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if buf.String() != want {
		t.Errorf("Tail() = %q, want %q", buf.String(), want)
	}
}

func TestTailMissingLogFile(t *testing.T) {
	c := newController(t)
	var buf bytes.Buffer
	if err := c.Tail(&buf); err == nil || !strings.Contains(err.Error(), "open log file") {
		t.Errorf("Tail() error = %v, want open log file error", err)
	}
}

func TestPIDFileRoundTrip(t *testing.T) {
	c := newController(t)
	if err := c.writePID(12345); err != nil {
		t.Fatalf("writePID() error = %v", err)
	}
	pid, err := c.readPID()
	if err != nil {
		t.Fatalf("readPID() error = %v", err)
	}
	if pid != 12345 {
		t.Errorf("readPID() = %d, want 12345", pid)
	}
}
