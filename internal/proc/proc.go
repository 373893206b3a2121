// Package proc manages the server process through a PID file: daemonized
// start, signal-based stop, liveness status, and log following.
package proc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// Controller drives one server process identified by a PID file.
type Controller struct {
	PIDFile string
	LogFile string
}

// Start launches the server binary detached from the terminal, with
// stdout and stderr appended to the log file, and records its PID.
// If the server is already running its PID is returned with running=true
// and nothing is started.
func (c Controller) Start(binary string, args, env []string) (pid int, alreadyRunning bool, err error) {
	if pid, ok := c.alivePID(); ok {
		return pid, true, nil
	}

	if err := os.MkdirAll(filepath.Dir(c.LogFile), 0o755); err != nil {
		return 0, false, fmt.Errorf("create log directory: %w", err)
	}
	logf, err := os.OpenFile(c.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return 0, false, fmt.Errorf("open log file: %w", err)
	}
	defer logf.Close()

	cmd := exec.Command(binary, args...)
	cmd.Stdout = logf
	cmd.Stderr = logf
	cmd.Env = append(os.Environ(), env...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return 0, false, fmt.Errorf("start %s: %w", binary, err)
	}
	pid = cmd.Process.Pid
	if err := c.writePID(pid); err != nil {
		_ = cmd.Process.Kill()
		return 0, false, err
	}
	_ = cmd.Process.Release()
	return pid, false, nil
}

// Stop sends SIGTERM to the recorded PID and removes the PID file.
// A stopped or never-started server is a no-op.
func (c Controller) Stop() (stopped bool, err error) {
	pid, ok := c.alivePID()
	if !ok {
		_ = os.Remove(c.PIDFile)
		return false, nil
	}
	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
		return false, fmt.Errorf("signal pid %d: %w", pid, err)
	}
	if err := os.Remove(c.PIDFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return true, fmt.Errorf("remove pid file: %w", err)
	}
	return true, nil
}

// Status reports the recorded PID and whether that process is alive.
func (c Controller) Status() (pid int, running bool) {
	return c.alivePID()
}

// Follow copies new log lines to w as they are appended, starting from
// the current end of the log. It polls until w's consumer is done; the
// stop channel ends the loop.
func (c Controller) Follow(w io.Writer, stop <-chan struct{}) error {
	f, err := os.Open(c.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seek log file: %w", err)
	}
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		if _, err := io.Copy(w, f); err != nil {
			return err
		}
		select {
		case <-stop:
			return nil
		case <-ticker.C:
		}
	}
}

// Tail writes the whole current log file to w.
func (c Controller) Tail(w io.Writer) error {
	f, err := os.Open(c.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

func (c Controller) writePID(pid int) error {
	if err := os.MkdirAll(filepath.Dir(c.PIDFile), 0o755); err != nil {
		return fmt.Errorf("create pid directory: %w", err)
	}
	if err := os.WriteFile(c.PIDFile, []byte(strconv.Itoa(pid)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	return nil
}

func (c Controller) readPID() (int, error) {
	data, err := os.ReadFile(c.PIDFile)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("malformed pid file %s", c.PIDFile)
	}
	return pid, nil
}

func (c Controller) alivePID() (int, bool) {
	pid, err := c.readPID()
	if err != nil {
		return 0, false
	}
	// Signal 0 probes existence without affecting the process. EPERM
	// still means the PID is alive, just not ours.
	err = syscall.Kill(pid, 0)
	if err == nil || errors.Is(err, syscall.EPERM) {
		return pid, true
	}
	return pid, false
}
