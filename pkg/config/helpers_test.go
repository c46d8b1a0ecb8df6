package config_test

import (
	"os"
	"testing"
)

// unset removes keys for the rest of the test. t.Setenv must be called for
// each key beforehand so the original values are restored on cleanup.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unset %s: %v", k, err)
		}
	}
}
