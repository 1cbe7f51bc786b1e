//go:build !windows

package infrastructure

import (
	"os/exec"
	"syscall"
)

// setProcessGroup runs the engine in its own process group so cancellation
// also stops the ffmpeg children it spawns
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true, // Create new process group
		Pgid:    0,    // Use the new process's PID as PGID
	}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
