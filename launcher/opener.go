// Package launcher hands a file to the operating system's default "open"
// action without waiting for the spawned program.
package launcher

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/log"
)

// Opener starts the OS default action for path and returns once the
// process has been spawned.
type Opener interface {
	Open(path string) error
}

type _ExecCommandFunc func(string, ...string) *exec.Cmd

type systemOpener struct {
	goos            string
	execCommandFunc _ExecCommandFunc
}

// NewSystemOpener returns an Opener for the running platform.
func NewSystemOpener() Opener {
	return newSystemOpener(runtime.GOOS, exec.Command)
}

func newSystemOpener(goos string, execCommandFunc _ExecCommandFunc) *systemOpener {
	return &systemOpener{
		goos:            goos,
		execCommandFunc: execCommandFunc,
	}
}

// OpenCommand returns the program and arguments used to open path on goos.
func OpenCommand(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		// Same handler ShellExecute uses for a double click.
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

func (o *systemOpener) Open(path string) error {
	if path == "" {
		return fmt.Errorf("nothing to open: empty path")
	}

	name, args := OpenCommand(o.goos, path)
	cmd := o.execCommandFunc(name, args...)

	log.Debug("Opening file with the system handler", "command", name, "args", args)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}

	// The installer outlives us; drop the handle instead of waiting.
	if cmd.Process != nil {
		_ = cmd.Process.Release()
	}
	return nil
}
