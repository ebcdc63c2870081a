//go:build !windows && !darwin

package internal

// systemLocale returns the user's locale from the environment on Unix-like
// systems, or "" when none is set.
func systemLocale() string {
	return localeFromEnv()
}
