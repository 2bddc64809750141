//go:build windows

package platform

import (
	"fmt"
	"os/exec"
)

// Notify shows a toast through PowerShell.
func Notify(title, body string, opts Options) error {
	cmd := exec.Command("powershell.exe", "-NoProfile", "-NonInteractive", "-Command", toastScript(title, body, opts))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("powershell toast: %w: %s", err, out)
	}
	return nil
}
