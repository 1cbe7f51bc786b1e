//go:build windows

package infrastructure

import "os/exec"

// setProcessGroup is a no-op on Windows; cancellation kills the process only
func setProcessGroup(cmd *exec.Cmd) {}
