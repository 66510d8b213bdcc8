package config

// SetUserHomeDirForTest swaps the home directory resolver used to find the global
// config layer and returns a function restoring the original.
func SetUserHomeDirForTest(fn func() (string, error)) func() {
	orig := userHomeDir
	userHomeDir = fn
	return func() {
		userHomeDir = orig
	}
}
