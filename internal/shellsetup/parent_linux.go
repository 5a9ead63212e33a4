//go:build linux

package shellsetup

import (
	"os"
	"strconv"
	"strings"
)

// DetectParentShellName returns the command name of the parent process.
func DetectParentShellName() string {
	ppid := os.Getppid()
	if ppid <= 1 {
		return ""
	}
	comm, err := os.ReadFile("/proc/" + strconv.Itoa(ppid) + "/comm")
	if err != nil {
		return ""
	}
	return NormalizeShellName(strings.TrimPrefix(strings.TrimSpace(string(comm)), "-"))
}
