package engine

import (
	"testing"

	"go.uber.org/goleak"
)

// The engine spawns worker goroutines for both passes; every run must leave
// nothing behind once Analyze returns.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
