package testutil

import (
	"log"
	"os"
	"testing"
)

// TestLogger returns a logger for injecting into components under test.
func TestLogger(t *testing.T) *log.Logger {
	t.Helper()
	return log.New(os.Stdout, "[sparkd-test] ", log.LstdFlags)
}
