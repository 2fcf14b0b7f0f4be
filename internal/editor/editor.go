// Copyright © 2026 The kconfedit Authors
// Interactive configurator launcher

package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger().WithField("component", "editor")

// killGracePeriod is how long a canceled editor gets to exit after SIGINT
// before it is killed.
const killGracePeriod = 5 * time.Second

// Targets are the upstream configurator make targets the launcher accepts.
var Targets = map[string]bool{
	"menuconfig": true,
	"nconfig":    true,
	"xconfig":    true,
	"gconfig":    true,
	"oldconfig":  true,
}

// Config holds launch options for the interactive configurator
type Config struct {
	TreePath string // extracted source tree; becomes the subprocess cwd
	Target   string // make target, e.g. "menuconfig"
}

// Launch runs `make <target>` inside the source tree with the terminal
// handed to the subprocess, and blocks until it exits. The run has no other
// work during this period. A non-zero exit, signal death, or start failure
// comes back as a *Failure; ctx cancellation interrupts the editor and is
// also reported as a *Failure so callers skip persistence.
func Launch(ctx context.Context, config *Config) error {
	if config == nil {
		return fmt.Errorf("editor config is nil")
	}
	if !Targets[config.Target] {
		return &Failure{Target: config.Target, ExitCode: -1, Err: fmt.Errorf("unknown editor target %q", config.Target)}
	}

	cmd := exec.Command("make", config.Target)
	cmd.Dir = config.TreePath
	// The editor owns the interactive session entirely while it runs
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Debugf("launching make %s in %s", config.Target, config.TreePath)

	if err := cmd.Start(); err != nil {
		return &Failure{Target: config.Target, ExitCode: -1, Err: fmt.Errorf("failed to start editor: %w", err)}
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return classify(config.Target, err)
	case <-ctx.Done():
		interruptThenKill(cmd, done)
		return &Failure{Target: config.Target, ExitCode: -1, Err: ctx.Err()}
	}
}

// interruptThenKill asks the editor to exit and kills it if it lingers
func interruptThenKill(cmd *exec.Cmd, done <-chan error) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Signal(os.Interrupt)
	select {
	case <-done:
	case <-time.After(killGracePeriod):
		_ = cmd.Process.Kill()
		<-done
	}
}

// classify converts a Wait error into the launcher's failure type
func classify(target string, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 when the editor died to a signal; external
		// kills are conservatively editor failure
		return &Failure{Target: target, ExitCode: exitErr.ExitCode(), Err: err}
	}
	return &Failure{Target: target, ExitCode: -1, Err: err}
}
