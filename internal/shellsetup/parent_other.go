//go:build !linux && !windows

package shellsetup

// DetectParentShellName is unsupported here; $SHELL decides instead.
func DetectParentShellName() string { return "" }
