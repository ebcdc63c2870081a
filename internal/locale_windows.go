//go:build windows

package internal

import (
	"syscall"
	"unsafe"
)

var (
	kernel32                 = syscall.NewLazyDLL("kernel32.dll")
	procGetUserDefaultLocale = kernel32.NewProc("GetUserDefaultLocaleName")
)

// systemLocale returns the user's locale on Windows: the environment first
// (WSL and tests), then GetUserDefaultLocaleName.
func systemLocale() string {
	if locale := localeFromEnv(); locale != "" {
		return locale
	}

	const maxLen = 85 // LOCALE_NAME_MAX_LENGTH
	buf := make([]uint16, maxLen)
	ret, _, _ := procGetUserDefaultLocale.Call(uintptr(unsafe.Pointer(&buf[0])), uintptr(maxLen))
	if ret == 0 {
		return ""
	}
	return syscall.UTF16ToString(buf)
}
