//go:build darwin

package internal

import (
	"os/exec"
	"strings"
)

// systemLocale returns the user's locale on macOS. Terminal overrides in the
// environment win over the AppleLocale preference ("en_IN", "sv_SE").
func systemLocale() string {
	if locale := localeFromEnv(); locale != "" {
		return locale
	}
	out, err := exec.Command("defaults", "read", "-g", "AppleLocale").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
