//go:build windows

package fs

import (
	"os"
	"syscall"
)

const (
	fileAttributeHidden       = 0x02
	fileAttributeSystem       = 0x04
	fileAttributeReparsePoint = 0x0400
)

// IsHidden checks the Windows hidden attribute, falling back to the dot-file
// convention when attributes cannot be read.
func IsHidden(fullPath string, name string) bool {
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return len(name) > 0 && name[0] == '.'
	}
	return attrs&fileAttributeHidden != 0
}

// ShouldHideFromListing reports whether an entry should never appear in listings,
// even when hidden files are shown (e.g., Windows compatibility junctions).
func ShouldHideFromListing(fullPath, name string) bool {
	if fullPath == "" && name == "" {
		return false
	}
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return false
	}
	const protectedMask = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&protectedMask == protectedMask
}

func fileAttributes(fullPath, name string) (uint32, error) {
	target := fullPath
	if target == "" {
		target = name
	}
	if target == "" {
		return 0, os.ErrInvalid
	}

	ptr, err := syscall.UTF16PtrFromString(target)
	if err != nil {
		return 0, err
	}
	attrs, err := syscall.GetFileAttributes(ptr)
	if err == nil {
		return attrs, nil
	}

	// Relative names are retried as given when the joined path is gone.
	if os.IsNotExist(err) && fullPath != "" && fullPath != name {
		if alt, convErr := syscall.UTF16PtrFromString(name); convErr == nil {
			if attrsAlt, errAlt := syscall.GetFileAttributes(alt); errAlt == nil {
				return attrsAlt, nil
			}
		}
	}
	return 0, err
}
