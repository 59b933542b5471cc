// Package proc wraps OS process enumeration, kill, and launch for the
// desktop tools whose config files this tool manages. Everything here is a
// best-effort side effect: a failed restart never rolls back a category
// switch.
package proc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// SettleDelay is the fixed wait inserted between kill and relaunch to allow
// OS process teardown. A deliberate, simple wait rather than a
// poll-until-exited loop.
const SettleDelay = 2 * time.Second

// Status reports whether a named process is currently running.
type Status struct {
	Name    string
	Running bool
}

// Controller shells out to the platform's process tooling.
type Controller struct {
	logger hclog.Logger
	goos   string
	// settle is overridable in tests.
	settle time.Duration
}

// NewController returns a controller for the current platform.
func NewController(logger hclog.Logger) *Controller {
	return &Controller{
		logger: logger.Named("proc"),
		goos:   runtime.GOOS,
		settle: SettleDelay,
	}
}

// Find reports whether a process with the given name is running.
func (c *Controller) Find(ctx context.Context, name string) (Status, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Status{}, fmt.Errorf("process name cannot be empty")
	}

	var cmd *exec.Cmd
	if c.goos == "windows" {
		cmd = exec.CommandContext(ctx, "tasklist", "/fi", fmt.Sprintf("imagename eq %s", name), "/fo", "csv", "/nh")
	} else {
		cmd = exec.CommandContext(ctx, "pgrep", "-f", name)
	}

	out, err := cmd.Output()
	if err != nil {
		// pgrep exits 1 when nothing matches; that's "not running", not a
		// failure.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return Status{Name: name, Running: false}, nil
		}

		return Status{}, fmt.Errorf("could not check process '%s': %w", name, err)
	}

	running := strings.Contains(string(out), name)
	return Status{Name: name, Running: running}, nil
}

// Kill terminates every process matching the given name.
func (c *Controller) Kill(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("process name cannot be empty")
	}

	var cmd *exec.Cmd
	if c.goos == "windows" {
		cmd = exec.CommandContext(ctx, "taskkill", "/im", name, "/f")
	} else {
		cmd = exec.CommandContext(ctx, "pkill", "-f", name)
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("could not kill process '%s': %w (%s)", name, err, strings.TrimSpace(string(out)))
	}

	c.logger.Info("process killed", "name", name)
	return nil
}

// Launch starts the application at path, detached from this process. The
// child is not waited on; its pid is returned for reporting only.
func (c *Controller) Launch(ctx context.Context, path string, args []string) (int, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, fmt.Errorf("application path cannot be empty")
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("could not launch '%s': %w", path, err)
	}

	pid := cmd.Process.Pid

	// Detach: reap the child in the background so it does not become a
	// zombie while this process is still alive.
	go func() {
		_ = cmd.Wait()
	}()

	c.logger.Info("application launched", "path", path, "pid", pid)
	return pid, nil
}

// Restart kills the named process, waits the fixed settling delay, and
// relaunches the application. A kill failure is logged and does not abort
// the relaunch, matching the behavior users expect when the app already
// exited on its own.
func (c *Controller) Restart(ctx context.Context, name, path string, args []string) (int, error) {
	if err := c.Kill(ctx, name); err != nil {
		c.logger.Warn("failed to kill process, continuing with launch", "name", name, "error", err)
	}

	select {
	case <-time.After(c.settle):
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	return c.Launch(ctx, path, args)
}
